// Package state holds the transaction list state and its pure transition
// function.
package state

import (
	"time"

	"github.com/pennywise/client/internal/models"
)

// Operation names a remote operation tracked by busy and error flags
type Operation string

const (
	OpLoadTransactions  Operation = "loadTransactions"
	OpLoadTransaction   Operation = "loadTransaction"
	OpCreateTransaction Operation = "createTransaction"
	OpUpdateTransaction Operation = "updateTransaction"
	OpDeleteTransaction Operation = "deleteTransaction"
)

// Operations lists every tracked operation.
var Operations = []Operation{
	OpLoadTransactions,
	OpLoadTransaction,
	OpCreateTransaction,
	OpUpdateTransaction,
	OpDeleteTransaction,
}

// LastAction marks the most recent successful operation so observers can
// react to it once.
type LastAction struct {
	Operation Operation
	At        time.Time
}

// Pagination is the server-reported position of the current page.
type Pagination struct {
	Page          int
	PageSize      int
	TotalElements int64
	TotalPages    int
}

// Query is everything that determines which page the server returns.
type Query struct {
	Filters  models.TransactionFilters
	Page     int
	PageSize int
	Sort     string
}

// ListState is the paged, filtered view of transactions
type ListState struct {
	Records  []models.Transaction
	Selected *models.Transaction
	Pagination
	Filters models.TransactionFilters
	Sort    string

	Loading bool
	Busy    map[Operation]bool
	Error   string
	Errors  map[Operation]string

	LastAction    *LastAction
	PendingDelete string

	// ListGeneration tags the newest list request; older responses are
	// discarded.
	ListGeneration uint64
}

// Initial returns the state for a fresh session.
func Initial(pageSize int, sort string) ListState {
	return ListState{
		Records:    []models.Transaction{},
		Pagination: Pagination{PageSize: pageSize},
		Sort:       sort,
		Busy:       map[Operation]bool{},
		Errors:     map[Operation]string{},
	}
}

// IsBusy reports whether op is in flight.
func (s ListState) IsBusy(op Operation) bool {
	return s.Busy[op]
}

// ErrorFor returns the message recorded for op's last failure.
func (s ListState) ErrorFor(op Operation) string {
	return s.Errors[op]
}

// Query returns the parameters of the current list request.
func (s ListState) Query() Query {
	return Query{Filters: s.Filters, Page: s.Page, PageSize: s.PageSize, Sort: s.Sort}
}

// HasNextPage reports whether NextPage would move.
func (s ListState) HasNextPage() bool {
	return s.Page < s.TotalPages-1
}

// HasPreviousPage reports whether PreviousPage would move.
func (s ListState) HasPreviousPage() bool {
	return s.Page > 0
}

// Find returns the record with id on the current page.
func (s ListState) Find(id string) (models.Transaction, bool) {
	for _, r := range s.Records {
		if r.ID == id {
			return r, true
		}
	}
	return models.Transaction{}, false
}

func (s ListState) clone() ListState {
	out := s
	out.Records = append([]models.Transaction{}, s.Records...)
	if s.Selected != nil {
		sel := *s.Selected
		out.Selected = &sel
	}
	if s.LastAction != nil {
		la := *s.LastAction
		out.LastAction = &la
	}
	out.Busy = make(map[Operation]bool, len(s.Busy))
	for k, v := range s.Busy {
		out.Busy[k] = v
	}
	out.Errors = make(map[Operation]string, len(s.Errors))
	for k, v := range s.Errors {
		out.Errors[k] = v
	}
	return out
}
