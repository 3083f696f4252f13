package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pennywise/client/internal/models"
	"github.com/pennywise/client/internal/notify"
	"github.com/pennywise/client/internal/state"
	"github.com/rs/zerolog"
)

// TransactionAPI is the remote side of the transaction workflows.
// *apiclient.TransactionClient satisfies it.
type TransactionAPI interface {
	ListFiltered(ctx context.Context, filters models.TransactionFilters, page, size int, sort string) (models.Page[models.Transaction], error)
	Get(ctx context.Context, id string) (models.Transaction, error)
	Create(ctx context.Context, payload models.TransactionPayload) (models.Transaction, error)
	Update(ctx context.Context, id string, payload models.TransactionPayload) (models.Transaction, error)
	Delete(ctx context.Context, id string) error
}

// Confirmer asks the user to approve deleting a record.
type Confirmer interface {
	Confirm(ctx context.Context, id string) (bool, error)
}

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(ctx context.Context, id string) (bool, error)

func (f ConfirmerFunc) Confirm(ctx context.Context, id string) (bool, error) { return f(ctx, id) }

// Option configures a service.
type Option func(*options)

type options struct {
	notifier notify.Notifier
	session  SessionHandler
	log      zerolog.Logger
	now      func() time.Time
}

func WithNotifier(n notify.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

func WithSession(s SessionHandler) Option {
	return func(o *options) { o.session = s }
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithClock overrides the time source used to stamp LastAction.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{log: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.notifier == nil {
		o.notifier = notify.NewLogNotifier(o.log)
	}
	return o
}

// TransactionService sequences user intents into remote calls and store
// updates. Methods block for the duration of the remote calls they make.
type TransactionService struct {
	api       TransactionAPI
	store     *state.Store
	validator *ValidationHelper
	report    reporter
	now       func() time.Time
	log       zerolog.Logger
}

func NewTransactionService(api TransactionAPI, store *state.Store, opts ...Option) *TransactionService {
	o := buildOptions(opts)
	return &TransactionService{
		api:       api,
		store:     store,
		validator: NewValidationHelper(),
		report:    reporter{notifier: o.notifier, session: o.session, log: o.log},
		now:       o.now,
		log:       o.log,
	}
}

// Store returns the state container the service writes to.
func (ts *TransactionService) Store() *state.Store {
	return ts.store
}

// LoadTransactions fetches the page described by the current query.
func (ts *TransactionService) LoadTransactions(ctx context.Context) error {
	s := ts.store.Dispatch(state.ListRequested{})
	gen := s.ListGeneration
	q := s.Query()

	ts.log.Debug().
		Uint64("generation", gen).
		Int("page", q.Page).
		Int("size", q.PageSize).
		Str("sort", q.Sort).
		Msg("Loading transactions")

	page, err := ts.api.ListFiltered(ctx, q.Filters, q.Page, q.PageSize, q.Sort)
	if err != nil {
		return ts.failList(ctx, gen, err)
	}

	after := ts.store.Dispatch(state.ListLoaded{Generation: gen, Page: page, At: ts.now()})
	if after.ListGeneration != gen {
		ts.log.Debug().Uint64("generation", gen).Msg("Discarded stale transaction page")
	}
	return nil
}

func (ts *TransactionService) failList(ctx context.Context, gen uint64, err error) error {
	op := state.OpLoadTransactions
	after := ts.store.Dispatch(state.OperationFailed{Operation: op, Message: MessageFor(op, err), Generation: gen})
	if after.ListGeneration != gen {
		ts.log.Debug().Err(err).Uint64("generation", gen).Msg("Discarded stale transaction failure")
		return fmt.Errorf("%s: %w", op, err)
	}
	ts.report.failure(ctx, op, err)
	return fmt.Errorf("%s: %w", op, err)
}

func (ts *TransactionService) fail(ctx context.Context, op state.Operation, err error) error {
	ts.store.Dispatch(state.OperationFailed{Operation: op, Message: MessageFor(op, err)})
	ts.report.failure(ctx, op, err)
	return fmt.Errorf("%s: %w", op, err)
}

// reload refreshes the list after a successful mutation. Its failure is
// reported on its own; the mutation stays successful.
func (ts *TransactionService) reload(ctx context.Context) {
	if err := ts.LoadTransactions(ctx); err != nil {
		ts.log.Warn().Err(err).Msg("Reload after mutation failed")
	}
}

// LoadTransaction fetches one record and makes it the selection.
func (ts *TransactionService) LoadTransaction(ctx context.Context, id string) (models.Transaction, error) {
	ts.store.Dispatch(state.OperationStarted{Operation: state.OpLoadTransaction})

	rec, err := ts.api.Get(ctx, id)
	if err != nil {
		return models.Transaction{}, ts.fail(ctx, state.OpLoadTransaction, err)
	}

	ts.store.Dispatch(state.RecordLoaded{Record: rec, At: ts.now()})
	return rec, nil
}

// CreateTransaction validates and submits payload, then reloads the list.
func (ts *TransactionService) CreateTransaction(ctx context.Context, payload models.TransactionPayload) (models.Transaction, error) {
	op := state.OpCreateTransaction
	ts.store.Dispatch(state.OperationStarted{Operation: op})

	if err := ts.validator.ValidateTransaction(payload); err != nil {
		return models.Transaction{}, ts.fail(ctx, op, invalidPayload(err))
	}

	created, err := ts.api.Create(ctx, payload)
	if err != nil {
		return models.Transaction{}, ts.fail(ctx, op, err)
	}

	ts.store.Dispatch(state.RecordCreated{Record: created, At: ts.now()})
	ts.log.Info().Str("transaction_id", created.ID).Msg("Transaction created")
	ts.report.success("toast.transaction.created")
	ts.reload(ctx)
	return created, nil
}

// UpdateTransaction validates and submits payload for id, then reloads the
// list.
func (ts *TransactionService) UpdateTransaction(ctx context.Context, id string, payload models.TransactionPayload) (models.Transaction, error) {
	op := state.OpUpdateTransaction
	ts.store.Dispatch(state.OperationStarted{Operation: op})

	if err := ts.validator.ValidateTransaction(payload); err != nil {
		return models.Transaction{}, ts.fail(ctx, op, invalidPayload(err))
	}

	updated, err := ts.api.Update(ctx, id, payload)
	if err != nil {
		return models.Transaction{}, ts.fail(ctx, op, err)
	}

	ts.store.Dispatch(state.RecordUpdated{Record: updated, At: ts.now()})
	ts.log.Info().Str("transaction_id", id).Msg("Transaction updated")
	ts.report.success("toast.transaction.updated")
	ts.reload(ctx)
	return updated, nil
}

// RequestDelete marks id as awaiting confirmation. Nothing is sent yet.
func (ts *TransactionService) RequestDelete(id string) {
	ts.store.Dispatch(state.RequestDelete{ID: id})
}

// CancelDelete withdraws the pending request.
func (ts *TransactionService) CancelDelete() error {
	ts.store.Dispatch(state.CancelDelete{})
	return ErrOperationCancelled
}

// ConfirmDelete deletes the record awaiting confirmation, then reloads the
// list.
func (ts *TransactionService) ConfirmDelete(ctx context.Context) error {
	id := ts.store.State().PendingDelete
	if id == "" {
		return ErrNoPendingDelete
	}

	op := state.OpDeleteTransaction
	ts.store.Dispatch(state.OperationStarted{Operation: op})

	if err := ts.api.Delete(ctx, id); err != nil {
		ts.store.Dispatch(state.CancelDelete{})
		return ts.fail(ctx, op, err)
	}

	ts.store.Dispatch(state.RecordDeleted{ID: id, At: ts.now()})
	ts.log.Info().Str("transaction_id", id).Msg("Transaction deleted")
	ts.report.success("toast.transaction.deleted")
	ts.reload(ctx)
	return nil
}

// DeleteWithConfirmation runs the whole delete flow, asking c before any
// request is made.
func (ts *TransactionService) DeleteWithConfirmation(ctx context.Context, id string, c Confirmer) error {
	ts.RequestDelete(id)

	ok, err := c.Confirm(ctx, id)
	if err != nil {
		ts.store.Dispatch(state.CancelDelete{})
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return ts.CancelDelete()
	}
	return ts.ConfirmDelete(ctx)
}

// SetFilters replaces the filters and reloads from the first page.
func (ts *TransactionService) SetFilters(ctx context.Context, f models.TransactionFilters) error {
	ts.store.Dispatch(state.SetFilters{Filters: f})
	return ts.LoadTransactions(ctx)
}

// UpdateFilter changes some filters and reloads from the first page.
func (ts *TransactionService) UpdateFilter(ctx context.Context, patch state.FilterPatch) error {
	ts.store.Dispatch(state.UpdateFilter{Patch: patch})
	return ts.LoadTransactions(ctx)
}

// ClearFilters drops every filter and reloads from the first page.
func (ts *TransactionService) ClearFilters(ctx context.Context) error {
	ts.store.Dispatch(state.ClearFilters{})
	return ts.LoadTransactions(ctx)
}

func (ts *TransactionService) SetPageSize(ctx context.Context, size int) error {
	return ts.move(ctx, state.SetPageSize{Size: size})
}

func (ts *TransactionService) NextPage(ctx context.Context) error {
	return ts.move(ctx, state.NextPage{})
}

func (ts *TransactionService) PreviousPage(ctx context.Context) error {
	return ts.move(ctx, state.PreviousPage{})
}

func (ts *TransactionService) GoToPage(ctx context.Context, page int) error {
	return ts.move(ctx, state.GoToPage{Page: page})
}

func (ts *TransactionService) SetSort(ctx context.Context, sort string) error {
	return ts.move(ctx, state.SetSort{Sort: sort})
}

// move applies a paging action and reloads only when the query changed.
func (ts *TransactionService) move(ctx context.Context, a state.Action) error {
	before, after := ts.store.Transition(a)
	if before.Query() == after.Query() {
		return nil
	}
	return ts.LoadTransactions(ctx)
}

func (ts *TransactionService) Select(rec models.Transaction) {
	ts.store.Dispatch(state.Select{Record: rec})
}

func (ts *TransactionService) ClearSelection() {
	ts.store.Dispatch(state.ClearSelection{})
}
