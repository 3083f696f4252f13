package state

import (
	"time"

	"github.com/pennywise/client/internal/models"
)

// Action is a named intent or the result of a remote call.
type Action interface {
	isAction()
}

type action struct{}

func (action) isAction() {}

// OperationStarted marks op as in flight. Use ListRequested for
// loadTransactions so the request gets a generation.
type OperationStarted struct {
	action
	Operation Operation
}

// OperationFailed records a failure of op. Generation is only consulted for
// loadTransactions.
type OperationFailed struct {
	action
	Operation  Operation
	Message    string
	Generation uint64
}

// ListRequested starts a list load and bumps ListGeneration.
type ListRequested struct{ action }

// ListLoaded carries the page returned for the request tagged Generation.
type ListLoaded struct {
	action
	Generation uint64
	Page       models.Page[models.Transaction]
	At         time.Time
}

// RecordLoaded carries a single record fetched for the detail view.
type RecordLoaded struct {
	action
	Record models.Transaction
	At     time.Time
}

// RecordCreated carries the server's copy of a new record.
type RecordCreated struct {
	action
	Record models.Transaction
	At     time.Time
}

// RecordUpdated carries the server's copy of an updated record.
type RecordUpdated struct {
	action
	Record models.Transaction
	At     time.Time
}

// RecordDeleted reports a confirmed server-side deletion.
type RecordDeleted struct {
	action
	ID string
	At time.Time
}

// SetFilters replaces the filter set.
type SetFilters struct {
	action
	Filters models.TransactionFilters
}

// FilterPatch changes the non-nil fields of the filter set; an empty value
// clears that filter.
type FilterPatch struct {
	WalletID        *string
	StartDate       *models.Date
	EndDate         *models.Date
	TransactionType *models.TransactionType
}

// UpdateFilter applies a FilterPatch.
type UpdateFilter struct {
	action
	Patch FilterPatch
}

// ClearFilters drops every filter.
type ClearFilters struct{ action }

// SetPageSize changes the page size.
type SetPageSize struct {
	action
	Size int
}

// NextPage moves one page forward.
type NextPage struct{ action }

// PreviousPage moves one page back.
type PreviousPage struct{ action }

// GoToPage jumps to Page.
type GoToPage struct {
	action
	Page int
}

// SetSort changes the sort expression, e.g. "amount,asc".
type SetSort struct {
	action
	Sort string
}

// Select makes Record the selected record.
type Select struct {
	action
	Record models.Transaction
}

// ClearSelection empties the selection.
type ClearSelection struct{ action }

// RequestDelete asks for confirmation before deleting ID.
type RequestDelete struct {
	action
	ID string
}

// CancelDelete withdraws a pending delete request.
type CancelDelete struct{ action }
