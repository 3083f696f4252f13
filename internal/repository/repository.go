// Package repository stores the records served by the development API.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pennywise/client/internal/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidSort = errors.New("invalid sort")
)

// TransactionRepository persists transactions.
type TransactionRepository interface {
	List(ctx context.Context, filters models.TransactionFilters, page, size int, sort Sort) (models.Page[models.Transaction], error)
	Get(ctx context.Context, id string) (models.Transaction, error)
	// Create assigns an id when t has none.
	Create(ctx context.Context, t models.Transaction) (models.Transaction, error)
	Update(ctx context.Context, t models.Transaction) (models.Transaction, error)
	Delete(ctx context.Context, id string) error
}

// Sort orders a transaction list by one field.
type Sort struct {
	Field string
	Desc  bool
}

// DefaultSort lists the newest transactions first.
var DefaultSort = Sort{Field: "effectiveDate", Desc: true}

// sortColumns maps sortable fields to their column.
var sortColumns = map[string]string{
	"effectiveDate":   "effective_date",
	"amount":          "amount",
	"transactionType": "transaction_type",
	"note":            "note",
	"id":              "id",
}

// ParseSort reads "field" or "field,asc|desc". Empty input yields
// DefaultSort.
func ParseSort(s string) (Sort, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultSort, nil
	}

	field, dir, _ := strings.Cut(s, ",")
	if _, ok := sortColumns[field]; !ok {
		return Sort{}, fmt.Errorf("%w: unknown field %q", ErrInvalidSort, field)
	}

	switch strings.ToLower(dir) {
	case "", "asc":
		return Sort{Field: field}, nil
	case "desc":
		return Sort{Field: field, Desc: true}, nil
	}
	return Sort{}, fmt.Errorf("%w: unknown direction %q", ErrInvalidSort, dir)
}

func (s Sort) String() string {
	if s.Desc {
		return s.Field + ",desc"
	}
	return s.Field + ",asc"
}
