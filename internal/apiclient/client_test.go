package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pennywise/client/internal/auth"
	"github.com/pennywise/client/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(server.URL+"/api", auth.StaticToken("test-token"))
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestNew(t *testing.T) {
	_, err := New("not a url", auth.StaticToken("x"))
	assert.Error(t, err)

	c, err := New("http://localhost:8080/api/", auth.StaticToken("x"), WithTimeout(5*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "/api", c.baseURL.Path)
	assert.Equal(t, 5*time.Second, c.http.Timeout)
}

func TestNew_HTTPClientOptions(t *testing.T) {
	t.Run("default timeout", func(t *testing.T) {
		c, err := New("http://localhost:8080/api", auth.StaticToken("x"))
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, c.http.Timeout)
	})

	t.Run("injected client is not modified", func(t *testing.T) {
		shared := &http.Client{Timeout: time.Minute}
		for _, opts := range [][]Option{
			{WithHTTPClient(shared), WithTimeout(5 * time.Second)},
			{WithTimeout(5 * time.Second), WithHTTPClient(shared)},
		} {
			c, err := New("http://localhost:8080/api", auth.StaticToken("x"), opts...)
			require.NoError(t, err)
			assert.Equal(t, 5*time.Second, c.http.Timeout)
			assert.NotSame(t, shared, c.http)
		}
		assert.Equal(t, time.Minute, shared.Timeout)
	})

	t.Run("injected client keeps its timeout", func(t *testing.T) {
		c, err := New("http://localhost:8080/api", auth.StaticToken("x"), WithHTTPClient(&http.Client{Timeout: time.Second}))
		require.NoError(t, err)
		assert.Equal(t, time.Second, c.http.Timeout)
	})

	t.Run("nil client falls back to default", func(t *testing.T) {
		c, err := New("http://localhost:8080/api", auth.StaticToken("x"), WithHTTPClient(nil), WithTimeout(2*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, c.http.Timeout)
	})
}

func TestTransactionClient_ListFiltered(t *testing.T) {
	var got *http.Request
	r := chi.NewRouter()
	r.Get("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		got = r
		writeJSON(w, http.StatusOK, models.Page[models.Transaction]{
			Content: []models.Transaction{
				{ID: "a", TransactionType: models.TransactionTypeExpense, Amount: decimal.NewFromInt(12), EffectiveDate: models.NewDate(2024, 3, 5)},
				{ID: "b", TransactionType: models.TransactionTypeIncome, Amount: decimal.NewFromInt(40), EffectiveDate: models.NewDate(2024, 3, 4)},
			},
			TotalElements: 2,
			TotalPages:    1,
			Number:        0,
			Size:          10,
			First:         true,
			Last:          true,
		})
	})

	tc := NewTransactionClient(newTestClient(t, r))
	filters := models.TransactionFilters{
		WalletID:        "w1",
		StartDate:       models.NewDate(2024, 3, 1),
		EndDate:         models.NewDate(2024, 3, 31),
		TransactionType: models.TransactionTypeExpense,
	}

	page, err := tc.ListFiltered(context.Background(), filters, 0, 10, "effectiveDate,desc")
	require.NoError(t, err)

	assert.Len(t, page.Content, 2)
	assert.Equal(t, "a", page.Content[0].ID)
	assert.Equal(t, models.NewDate(2024, 3, 5), page.Content[0].EffectiveDate)
	assert.Equal(t, int64(2), page.TotalElements)

	require.NotNil(t, got)
	q := got.URL.Query()
	assert.Equal(t, "w1", q.Get("walletId"))
	assert.Equal(t, "2024-03-01", q.Get("startDate"))
	assert.Equal(t, "2024-03-31", q.Get("endDate"))
	assert.Equal(t, "EXPENSE", q.Get("transactionType"))
	assert.Equal(t, "0", q.Get("page"))
	assert.Equal(t, "10", q.Get("size"))
	assert.Equal(t, "effectiveDate,desc", q.Get("sort"))
	assert.Equal(t, "Bearer test-token", got.Header.Get("Authorization"))
	assert.NotEmpty(t, got.Header.Get(CorrelationHeader))
}

func TestResource_InvalidPagination(t *testing.T) {
	called := false
	tc := NewTransactionClient(newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	_, err := tc.ListFiltered(context.Background(), models.TransactionFilters{}, -1, 10, "")
	assert.ErrorIs(t, err, ErrInvalidPagination)

	_, err = tc.ListFiltered(context.Background(), models.TransactionFilters{}, 0, 0, "")
	assert.ErrorIs(t, err, ErrInvalidPagination)
	assert.False(t, called)
}

func TestResource_CRUD(t *testing.T) {
	var createdBody models.TransactionPayload
	correlationIDs := map[string]bool{}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			correlationIDs[r.Header.Get(CorrelationHeader)] = true
			next.ServeHTTP(w, r)
		})
	})
	r.Post("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&createdBody)
		writeJSON(w, http.StatusCreated, createdBody.ToTransaction("new-id"))
	})
	r.Get("/api/transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") != "new-id" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found", "message": "transaction not found"})
			return
		}
		writeJSON(w, http.StatusOK, models.Transaction{ID: "new-id"})
	})
	r.Put("/api/transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		var p models.TransactionPayload
		json.NewDecoder(r.Body).Decode(&p)
		writeJSON(w, http.StatusOK, p.ToTransaction(chi.URLParam(r, "id")))
	})
	r.Delete("/api/transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tc := NewTransactionClient(newTestClient(t, r))
	ctx := context.Background()
	rate := decimal.RequireFromString("1.5")
	payload := models.TransactionPayload{
		TransactionType: models.TransactionTypeTransfer,
		WalletFromID:    models.StringRef("w1"),
		WalletToID:      models.StringRef("w2"),
		Amount:          decimal.RequireFromString("10.00"),
		ExchangeRate:    &rate,
		EffectiveDate:   models.NewDate(2024, 3, 5),
	}

	t.Run("create", func(t *testing.T) {
		created, err := tc.Create(ctx, payload)
		require.NoError(t, err)
		assert.Equal(t, "new-id", created.ID)
		require.NotNil(t, created.DestinationAmount)
		assert.True(t, decimal.NewFromInt(15).Equal(*created.DestinationAmount))
		assert.Equal(t, models.NewDate(2024, 3, 5), createdBody.EffectiveDate)
	})

	t.Run("get", func(t *testing.T) {
		got, err := tc.Get(ctx, "new-id")
		require.NoError(t, err)
		assert.Equal(t, "new-id", got.ID)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := tc.Get(ctx, "missing")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		re, ok := AsRemoteError(err)
		require.True(t, ok)
		assert.Equal(t, "transaction not found", re.Message)
	})

	t.Run("update", func(t *testing.T) {
		updated, err := tc.Update(ctx, "new-id", payload)
		require.NoError(t, err)
		assert.Equal(t, "new-id", updated.ID)
	})

	t.Run("delete", func(t *testing.T) {
		assert.NoError(t, tc.Delete(ctx, "new-id"))
	})

	assert.Len(t, correlationIDs, 5)
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		kind    Kind
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, nil, KindUnauthorized, ""},
		{"forbidden", http.StatusForbidden, map[string]string{"error": "Forbidden"}, KindForbidden, ""},
		{"not found", http.StatusNotFound, map[string]string{"message": "gone"}, KindNotFound, "gone"},
		{"conflict", http.StatusConflict, map[string]string{"error": "duplicate wallet name"}, KindClient, "duplicate wallet name"},
		{"server", http.StatusBadGateway, nil, KindServer, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			}))

			_, err := NewWalletClient(c).Get(context.Background(), "w1")
			re, ok := AsRemoteError(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, re.Kind)
			assert.Equal(t, tt.status, re.Status)
			assert.Equal(t, tt.message, re.Message)
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	c, err := New(server.URL, auth.StaticToken("x"))
	require.NoError(t, err)

	_, err = NewCategoryClient(c).Get(context.Background(), "c1")
	re, ok := AsRemoteError(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, re.Kind)
	assert.Zero(t, re.Status)
}

func TestClient_MissingToken(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c, err := New(server.URL, auth.StaticToken(""))
	require.NoError(t, err)

	err = NewTransactionClient(c).Delete(context.Background(), "t1")
	assert.True(t, IsUnauthorized(err))
	assert.ErrorIs(t, err, auth.ErrNoToken)
	assert.False(t, called)
}

func TestFilterQuery_RoundTrip(t *testing.T) {
	filters := models.TransactionFilters{
		WalletID:        "w9",
		StartDate:       models.NewDate(2023, 12, 31),
		TransactionType: models.TransactionTypeTransfer,
	}

	parsed, err := ParseFilterQuery(FilterQuery(filters))
	require.NoError(t, err)
	assert.Equal(t, filters, parsed)

	assert.Empty(t, FilterQuery(models.TransactionFilters{}))
}
