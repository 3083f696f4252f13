package state

import (
	"time"

	"github.com/pennywise/client/internal/models"
)

// Reduce returns the state that follows s after a. It never modifies s.
func Reduce(s ListState, a Action) ListState {
	next := s.clone()

	switch a := a.(type) {
	case OperationStarted:
		next.start(a.Operation)

	case ListRequested:
		next.ListGeneration++
		next.start(OpLoadTransactions)

	case OperationFailed:
		if a.Operation == OpLoadTransactions && a.Generation != next.ListGeneration {
			return s
		}
		next.Busy[a.Operation] = false
		next.Error = a.Message
		next.Errors[a.Operation] = a.Message

	case ListLoaded:
		if a.Generation != next.ListGeneration {
			return s
		}
		next.Records = append([]models.Transaction{}, a.Page.Content...)
		next.Pagination = Pagination{
			Page:          a.Page.Number,
			PageSize:      a.Page.Size,
			TotalElements: a.Page.TotalElements,
			TotalPages:    a.Page.TotalPages,
		}
		next.succeed(OpLoadTransactions, a.At)

	case RecordLoaded:
		rec := a.Record
		next.Selected = &rec
		next.succeed(OpLoadTransaction, a.At)

	case RecordCreated:
		next.Records = append([]models.Transaction{a.Record}, next.Records...)
		next.succeed(OpCreateTransaction, a.At)

	case RecordUpdated:
		for i := range next.Records {
			if next.Records[i].ID == a.Record.ID {
				next.Records[i] = a.Record
			}
		}
		if next.Selected != nil && next.Selected.ID == a.Record.ID {
			rec := a.Record
			next.Selected = &rec
		}
		next.succeed(OpUpdateTransaction, a.At)

	case RecordDeleted:
		kept := next.Records[:0]
		for _, r := range next.Records {
			if r.ID != a.ID {
				kept = append(kept, r)
			}
		}
		next.Records = kept
		if next.Selected != nil && next.Selected.ID == a.ID {
			next.Selected = nil
		}
		if next.PendingDelete == a.ID {
			next.PendingDelete = ""
		}
		next.succeed(OpDeleteTransaction, a.At)

	case SetFilters:
		next.Filters = a.Filters
		next.Page = 0

	case UpdateFilter:
		if a.Patch.WalletID != nil {
			next.Filters.WalletID = *a.Patch.WalletID
		}
		if a.Patch.StartDate != nil {
			next.Filters.StartDate = *a.Patch.StartDate
		}
		if a.Patch.EndDate != nil {
			next.Filters.EndDate = *a.Patch.EndDate
		}
		if a.Patch.TransactionType != nil {
			next.Filters.TransactionType = *a.Patch.TransactionType
		}
		next.Page = 0

	case ClearFilters:
		next.Filters = models.TransactionFilters{}
		next.Page = 0

	case SetPageSize:
		if a.Size <= 0 {
			return s
		}
		next.PageSize = a.Size
		next.Page = 0

	case NextPage:
		if !s.HasNextPage() {
			return s
		}
		next.Page++

	case PreviousPage:
		if !s.HasPreviousPage() {
			return s
		}
		next.Page--

	case GoToPage:
		if a.Page < 0 || a.Page == s.Page || (a.Page > 0 && a.Page >= s.TotalPages) {
			return s
		}
		next.Page = a.Page

	case SetSort:
		if a.Sort == s.Sort {
			return s
		}
		next.Sort = a.Sort

	case Select:
		rec := a.Record
		next.Selected = &rec

	case ClearSelection:
		next.Selected = nil

	case RequestDelete:
		next.PendingDelete = a.ID

	case CancelDelete:
		next.PendingDelete = ""

	default:
		return s
	}

	next.Loading = anyBusy(next.Busy)
	return next
}

func (s *ListState) start(op Operation) {
	s.Busy[op] = true
	s.Error = ""
	delete(s.Errors, op)
}

func (s *ListState) succeed(op Operation, at time.Time) {
	s.Busy[op] = false
	s.LastAction = &LastAction{Operation: op, At: at}
}

func anyBusy(busy map[Operation]bool) bool {
	for _, b := range busy {
		if b {
			return true
		}
	}
	return false
}
