package apiclient

import (
	"context"
	"net/url"

	"github.com/pennywise/client/internal/models"
)

// TransactionClient talks to /transactions
type TransactionClient struct {
	*Resource[models.Transaction, models.TransactionPayload]
}

// NewTransactionClient creates the transaction resource client.
func NewTransactionClient(c *Client) *TransactionClient {
	return &TransactionClient{Resource: NewResource[models.Transaction, models.TransactionPayload](c, "/transactions")}
}

// ListFiltered fetches one page of transactions matching filters.
func (tc *TransactionClient) ListFiltered(ctx context.Context, filters models.TransactionFilters, page, size int, sort string) (models.Page[models.Transaction], error) {
	return tc.Resource.List(ctx, FilterQuery(filters), page, size, sort)
}

// FilterQuery encodes the set filters as query parameters.
func FilterQuery(f models.TransactionFilters) url.Values {
	q := url.Values{}
	if f.WalletID != "" {
		q.Set("walletId", f.WalletID)
	}
	if !f.StartDate.IsZero() {
		q.Set("startDate", f.StartDate.String())
	}
	if !f.EndDate.IsZero() {
		q.Set("endDate", f.EndDate.String())
	}
	if f.TransactionType != "" {
		q.Set("transactionType", string(f.TransactionType))
	}
	return q
}

// ParseFilterQuery is the inverse of FilterQuery.
func ParseFilterQuery(q url.Values) (models.TransactionFilters, error) {
	f := models.TransactionFilters{
		WalletID:        q.Get("walletId"),
		TransactionType: models.TransactionType(q.Get("transactionType")),
	}
	if s := q.Get("startDate"); s != "" {
		d, err := models.ParseDate(s)
		if err != nil {
			return f, err
		}
		f.StartDate = d
	}
	if s := q.Get("endDate"); s != "" {
		d, err := models.ParseDate(s)
		if err != nil {
			return f, err
		}
		f.EndDate = d
	}
	return f, nil
}

// NewWalletClient creates the wallet resource client.
func NewWalletClient(c *Client) *Resource[models.Wallet, models.Wallet] {
	return NewResource[models.Wallet, models.Wallet](c, "/wallets")
}

// NewCategoryClient creates the category resource client.
func NewCategoryClient(c *Client) *Resource[models.Category, models.Category] {
	return NewResource[models.Category, models.Category](c, "/categories")
}
