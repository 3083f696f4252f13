package facade

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/pennywise/client/internal/apiclient"
	"github.com/pennywise/client/internal/models"
	"github.com/pennywise/client/internal/notify"
	"github.com/pennywise/client/internal/preferences"
	"github.com/pennywise/client/internal/services"
	"github.com/pennywise/client/internal/state"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves transactions from a slice, newest first.
type fakeAPI struct {
	mu      sync.Mutex
	records []models.Transaction
	nextID  int
	deletes []string
}

func (a *fakeAPI) ListFiltered(_ context.Context, filters models.TransactionFilters, page, size int, _ string) (models.Page[models.Transaction], error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var matched []models.Transaction
	for _, r := range a.records {
		if filters.Matches(r) {
			matched = append(matched, r)
		}
	}
	return models.Paginate(matched, page, size), nil
}

func (a *fakeAPI) Get(_ context.Context, id string) (models.Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range a.records {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Transaction{}, &apiclient.RemoteError{Kind: apiclient.KindNotFound, Status: 404}
}

func (a *fakeAPI) Create(_ context.Context, p models.TransactionPayload) (models.Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextID++
	rec := p.ToTransaction(string(rune('a' + a.nextID - 1)))
	a.records = append([]models.Transaction{rec}, a.records...)
	return rec, nil
}

func (a *fakeAPI) Update(_ context.Context, id string, p models.TransactionPayload) (models.Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, r := range a.records {
		if r.ID == id {
			a.records[i] = p.ToTransaction(id)
			return a.records[i], nil
		}
	}
	return models.Transaction{}, &apiclient.RemoteError{Kind: apiclient.KindNotFound, Status: 404}
}

func (a *fakeAPI) Delete(_ context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deletes = append(a.deletes, id)
	for i, r := range a.records {
		if r.ID == id {
			a.records = append(a.records[:i], a.records[i+1:]...)
			return nil
		}
	}
	return &apiclient.RemoteError{Kind: apiclient.KindNotFound, Status: 404}
}

type fakeCatalog map[string]string

func (c fakeCatalog) WalletName(id string) (string, bool) {
	n, ok := c["wallet:"+id]
	return n, ok
}

func (c fakeCatalog) CategoryName(id string) (string, bool) {
	n, ok := c["category:"+id]
	return n, ok
}

type harness struct {
	api    *fakeAPI
	toasts *notify.Recorder
	routes []string
	facade *TransactionFacade
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{api: &fakeAPI{}, toasts: &notify.Recorder{}}
	store := state.NewStore(state.Initial(2, "effectiveDate,desc"))
	svc := services.NewTransactionService(h.api, store, services.WithNotifier(h.toasts))
	catalog := fakeCatalog{"wallet:w1": "Cash", "category:c1": "Groceries"}
	h.facade = New(svc, catalog, preferences.NewMemoryStore("pennywise"), NavigatorFunc(func(r string) {
		h.routes = append(h.routes, r)
	}), zerolog.Nop())
	return h
}

func expense(amount string) models.TransactionPayload {
	return models.TransactionPayload{
		TransactionType: models.TransactionTypeExpense,
		WalletFromID:    models.StringRef("w1"),
		Amount:          decimal.RequireFromString(amount),
		EffectiveDate:   models.NewDate(2024, 3, 5),
		CategoryID:      models.StringRef("c1"),
	}
}

func TestTransactionFacade_CreateNavigatesToList(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	var views []ListView
	unsubscribe := h.facade.Subscribe(func(v ListView) { views = append(views, v) })
	defer unsubscribe()

	rec, err := h.facade.Create(ctx, expense("9.99"))
	require.NoError(t, err)

	assert.Equal(t, []string{RouteList}, h.routes)
	view := h.facade.ListView()
	require.Len(t, view.Records, 1)
	assert.Equal(t, rec.ID, view.Records[0].ID)
	assert.Equal(t, int64(1), view.Pagination.TotalElements)
	assert.False(t, view.Loading)
	assert.NotEmpty(t, views)
	require.NotNil(t, h.facade.LastAction())
	assert.Equal(t, state.OpLoadTransactions, h.facade.LastAction().Operation)
}

func TestTransactionFacade_InvalidCreateStays(t *testing.T) {
	h := newHarness(t)

	_, err := h.facade.Create(context.Background(), expense("0"))
	require.Error(t, err)

	assert.Empty(t, h.routes)
	assert.NotEmpty(t, h.facade.ErrorFor(state.OpCreateTransaction))
	assert.False(t, h.facade.IsBusy(state.OpCreateTransaction))
}

func TestTransactionFacade_OpenAndDelete(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	rec, err := h.facade.Create(ctx, expense("5"))
	require.NoError(t, err)
	h.routes = nil

	_, err = h.facade.Open(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{DetailRoute(rec.ID)}, h.routes)
	sel, ok := h.facade.Selected()
	require.True(t, ok)
	assert.Equal(t, rec.ID, sel.ID)

	t.Run("declined", func(t *testing.T) {
		err := h.facade.Delete(ctx, rec.ID, services.ConfirmerFunc(func(context.Context, string) (bool, error) {
			assert.Equal(t, rec.ID, h.facade.PendingDelete())
			return false, nil
		}))
		assert.ErrorIs(t, err, services.ErrOperationCancelled)
		assert.Empty(t, h.api.deletes)
		assert.Empty(t, h.toasts.Keys()[1:])
	})

	t.Run("confirmed", func(t *testing.T) {
		err := h.facade.Delete(ctx, rec.ID, services.ConfirmerFunc(func(context.Context, string) (bool, error) {
			return true, nil
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{rec.ID}, h.api.deletes)
		assert.Equal(t, RouteList, h.routes[len(h.routes)-1])
		_, ok := h.facade.Selected()
		assert.False(t, ok)
		assert.Empty(t, h.facade.ListView().Records)
	})
}

func TestTransactionFacade_Paging(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	for _, amt := range []string{"1", "2", "3", "4", "5"} {
		_, err := h.facade.Create(ctx, expense(amt))
		require.NoError(t, err)
	}

	view := h.facade.ListView()
	assert.Equal(t, 3, view.Pagination.TotalPages)
	assert.True(t, view.HasNext)
	assert.False(t, view.HasPrevious)

	require.NoError(t, h.facade.GoToPage(ctx, 2))
	view = h.facade.ListView()
	assert.Equal(t, 2, view.Pagination.Page)
	assert.Len(t, view.Records, 1)
	assert.False(t, view.HasNext)

	require.NoError(t, h.facade.SetFilters(ctx, models.TransactionFilters{TransactionType: models.TransactionTypeIncome}))
	view = h.facade.ListView()
	assert.Equal(t, 0, view.Pagination.Page)
	assert.Empty(t, view.Records)
	assert.Equal(t, int64(0), view.Pagination.TotalElements)
}

func TestFormatting(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "#e53935", TypeColor(models.TransactionTypeExpense))
	assert.Equal(t, "#43a047", TypeColor(models.TransactionTypeIncome))
	assert.Equal(t, "#1e88e5", TypeColor(models.TransactionTypeTransfer))
	assert.Equal(t, "transaction.type.income", TypeLabel(models.TransactionTypeIncome))
	assert.Equal(t, "transaction.type.unknown", TypeLabel("REFUND"))

	rec := expense("12.5").ToTransaction("x")
	assert.Equal(t, "-12.50", FormatAmount(rec))
	rec.TransactionType = models.TransactionTypeIncome
	assert.Equal(t, "+12.50", FormatAmount(rec))
	rec.TransactionType = models.TransactionTypeTransfer
	assert.Equal(t, "12.50", FormatAmount(rec))

	assert.Equal(t, "Cash", h.facade.WalletName(models.StringRef("w1")))
	assert.Equal(t, "w9", h.facade.WalletName(models.StringRef("w9")))
	assert.Equal(t, "", h.facade.WalletName(nil))
	assert.Equal(t, "Groceries", h.facade.CategoryName(models.StringRef("c1")))
}

type failingPrefs struct{ preferences.Store }

func (failingPrefs) DisplayMode(context.Context) (preferences.DisplayMode, error) {
	return "", errors.New("redis down")
}

func TestTransactionFacade_DisplayPreferences(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	assert.Equal(t, preferences.DisplayList, h.facade.DisplayMode(ctx))
	mode, err := h.facade.ToggleDisplayMode(ctx)
	require.NoError(t, err)
	assert.Equal(t, preferences.DisplayCards, mode)
	assert.Equal(t, preferences.DisplayCards, h.facade.DisplayMode(ctx))

	assert.Equal(t, preferences.DefaultLanguage, h.facade.Language(ctx))
	require.NoError(t, h.facade.SetLanguage(ctx, "pl"))
	assert.Equal(t, "pl", h.facade.Language(ctx))
	assert.Error(t, h.facade.SetLanguage(ctx, "??"))

	h.facade.prefs = failingPrefs{Store: preferences.NewMemoryStore("pennywise")}
	assert.Equal(t, preferences.DisplayList, h.facade.DisplayMode(ctx))
}
