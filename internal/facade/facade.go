// Package facade is the single entry point of the presentation layer. It
// combines state slices into views and forwards writes to the services.
package facade

import (
	"context"
	"errors"

	"github.com/pennywise/client/internal/models"
	"github.com/pennywise/client/internal/preferences"
	"github.com/pennywise/client/internal/services"
	"github.com/pennywise/client/internal/state"
	"github.com/rs/zerolog"
)

// Routes the facade navigates to after completed actions.
const (
	RouteList       = "/transactions"
	RouteDetailBase = "/transactions/"
)

// DetailRoute returns the route of one transaction.
func DetailRoute(id string) string {
	return RouteDetailBase + id
}

// Navigator moves the presentation to another screen.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Catalog resolves wallet and category ids to names.
type Catalog interface {
	WalletName(id string) (string, bool)
	CategoryName(id string) (string, bool)
}

// ListView is everything a list screen renders, in one value.
type ListView struct {
	Records     []models.Transaction
	Loading     bool
	Error       string
	Pagination  state.Pagination
	Filters     models.TransactionFilters
	Sort        string
	HasNext     bool
	HasPrevious bool
}

func viewOf(s state.ListState) ListView {
	return ListView{
		Records:     s.Records,
		Loading:     s.Loading,
		Error:       s.Error,
		Pagination:  s.Pagination,
		Filters:     s.Filters,
		Sort:        s.Sort,
		HasNext:     s.HasNextPage(),
		HasPrevious: s.HasPreviousPage(),
	}
}

// TransactionFacade is what the presentation layer depends on.
type TransactionFacade struct {
	service *services.TransactionService
	store   *state.Store
	catalog Catalog
	prefs   preferences.Store
	nav     Navigator
	log     zerolog.Logger
}

func New(service *services.TransactionService, catalog Catalog, prefs preferences.Store, nav Navigator, log zerolog.Logger) *TransactionFacade {
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	return &TransactionFacade{
		service: service,
		store:   service.Store(),
		catalog: catalog,
		prefs:   prefs,
		nav:     nav,
		log:     log,
	}
}

func (f *TransactionFacade) ListView() ListView {
	return viewOf(f.store.State())
}

func (f *TransactionFacade) Selected() (models.Transaction, bool) {
	s := f.store.State()
	if s.Selected == nil {
		return models.Transaction{}, false
	}
	return *s.Selected, true
}

func (f *TransactionFacade) IsBusy(op state.Operation) bool {
	return f.store.State().IsBusy(op)
}

func (f *TransactionFacade) ErrorFor(op state.Operation) string {
	return f.store.State().ErrorFor(op)
}

// LastAction returns the most recent successful operation, or nil.
func (f *TransactionFacade) LastAction() *state.LastAction {
	return f.store.State().LastAction
}

func (f *TransactionFacade) PendingDelete() string {
	return f.store.State().PendingDelete
}

// Subscribe calls fn with a fresh view after every state change.
func (f *TransactionFacade) Subscribe(fn func(ListView)) (unsubscribe func()) {
	return f.store.Subscribe(func(s state.ListState) { fn(viewOf(s)) })
}

func (f *TransactionFacade) Load(ctx context.Context) error {
	return f.service.LoadTransactions(ctx)
}

// Open loads one transaction and shows its detail screen.
func (f *TransactionFacade) Open(ctx context.Context, id string) (models.Transaction, error) {
	rec, err := f.service.LoadTransaction(ctx, id)
	if err != nil {
		return rec, err
	}
	f.nav.Navigate(DetailRoute(rec.ID))
	return rec, nil
}

// Create submits a new transaction and returns to the list.
func (f *TransactionFacade) Create(ctx context.Context, p models.TransactionPayload) (models.Transaction, error) {
	rec, err := f.service.CreateTransaction(ctx, p)
	if err != nil {
		return rec, err
	}
	f.nav.Navigate(RouteList)
	return rec, nil
}

// Update submits changes to id and returns to the list.
func (f *TransactionFacade) Update(ctx context.Context, id string, p models.TransactionPayload) (models.Transaction, error) {
	rec, err := f.service.UpdateTransaction(ctx, id, p)
	if err != nil {
		return rec, err
	}
	f.nav.Navigate(RouteList)
	return rec, nil
}

// Delete asks c to confirm, deletes id and leaves the detail screen when id
// was the one shown there.
func (f *TransactionFacade) Delete(ctx context.Context, id string, c services.Confirmer) error {
	wasSelected := false
	if sel, ok := f.Selected(); ok && sel.ID == id {
		wasSelected = true
	}

	err := f.service.DeleteWithConfirmation(ctx, id, c)
	if errors.Is(err, services.ErrOperationCancelled) {
		f.log.Debug().Str("transaction_id", id).Msg("Delete cancelled")
		return err
	}
	if err != nil {
		return err
	}
	if wasSelected {
		f.nav.Navigate(RouteList)
	}
	return nil
}

func (f *TransactionFacade) RequestDelete(id string) { f.service.RequestDelete(id) }

func (f *TransactionFacade) ConfirmDelete(ctx context.Context) error {
	return f.service.ConfirmDelete(ctx)
}

func (f *TransactionFacade) CancelDelete() error { return f.service.CancelDelete() }

func (f *TransactionFacade) SetFilters(ctx context.Context, filters models.TransactionFilters) error {
	return f.service.SetFilters(ctx, filters)
}

func (f *TransactionFacade) UpdateFilter(ctx context.Context, patch state.FilterPatch) error {
	return f.service.UpdateFilter(ctx, patch)
}

func (f *TransactionFacade) ClearFilters(ctx context.Context) error {
	return f.service.ClearFilters(ctx)
}

func (f *TransactionFacade) SetPageSize(ctx context.Context, size int) error {
	return f.service.SetPageSize(ctx, size)
}

func (f *TransactionFacade) NextPage(ctx context.Context) error { return f.service.NextPage(ctx) }

func (f *TransactionFacade) PreviousPage(ctx context.Context) error {
	return f.service.PreviousPage(ctx)
}

func (f *TransactionFacade) GoToPage(ctx context.Context, page int) error {
	return f.service.GoToPage(ctx, page)
}

func (f *TransactionFacade) SetSort(ctx context.Context, sort string) error {
	return f.service.SetSort(ctx, sort)
}

func (f *TransactionFacade) Select(rec models.Transaction) { f.service.Select(rec) }

func (f *TransactionFacade) ClearSelection() { f.service.ClearSelection() }
