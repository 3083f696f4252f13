package models

import (
	"github.com/shopspring/decimal"
)

// TransactionType is the kind of a financial movement
type TransactionType string

const (
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Valid reports whether t is one of the known kinds.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeExpense, TransactionTypeIncome, TransactionTypeTransfer:
		return true
	}
	return false
}

// AllowsCategory reports whether a category reference is meaningful for t.
func (t TransactionType) AllowsCategory() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// MaxNoteLength bounds the free-text note of a transaction.
const MaxNoteLength = 500

// Transaction is one financial movement as returned by the API.
// Amount is expressed in the source wallet currency; DestinationAmount is
// computed by the server from Amount and ExchangeRate.
type Transaction struct {
	ID                string           `json:"id,omitempty"`
	TransactionType   TransactionType  `json:"transactionType"`
	WalletFromID      *string          `json:"walletFromId,omitempty"`
	WalletToID        *string          `json:"walletToId,omitempty"`
	Amount            decimal.Decimal  `json:"amount"`
	ExchangeRate      decimal.Decimal  `json:"exchangeRate"`
	DestinationAmount *decimal.Decimal `json:"destinationAmount,omitempty"`
	Note              string           `json:"note,omitempty"`
	EffectiveDate     Date             `json:"effectiveDate"`
	CategoryID        *string          `json:"categoryId,omitempty"`
}

// TransactionPayload is the request body for create and update calls.
type TransactionPayload struct {
	TransactionType TransactionType  `json:"transactionType" validate:"required,oneof=EXPENSE INCOME TRANSFER"`
	WalletFromID    *string          `json:"walletFromId,omitempty" validate:"omitempty,min=1"`
	WalletToID      *string          `json:"walletToId,omitempty" validate:"omitempty,min=1"`
	Amount          decimal.Decimal  `json:"amount" validate:"dpositive"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate,omitempty" validate:"omitempty,dpositive"`
	Note            string           `json:"note,omitempty" validate:"max=500"`
	EffectiveDate   Date             `json:"effectiveDate" validate:"dateset"`
	CategoryID      *string          `json:"categoryId,omitempty" validate:"omitempty,min=1"`
}

// Rate returns the exchange rate of the payload, defaulting to 1.
func (p TransactionPayload) Rate() decimal.Decimal {
	if p.ExchangeRate == nil {
		return decimal.NewFromInt(1)
	}
	return *p.ExchangeRate
}

// ToTransaction builds the record the server would persist for p.
func (p TransactionPayload) ToTransaction(id string) Transaction {
	rate := p.Rate()
	dest := p.Amount.Mul(rate)
	return Transaction{
		ID:                id,
		TransactionType:   p.TransactionType,
		WalletFromID:      p.WalletFromID,
		WalletToID:        p.WalletToID,
		Amount:            p.Amount,
		ExchangeRate:      rate,
		DestinationAmount: &dest,
		Note:              p.Note,
		EffectiveDate:     p.EffectiveDate,
		CategoryID:        p.CategoryID,
	}
}

// PayloadFrom copies the editable fields of t into a payload.
func PayloadFrom(t Transaction) TransactionPayload {
	rate := t.ExchangeRate
	return TransactionPayload{
		TransactionType: t.TransactionType,
		WalletFromID:    t.WalletFromID,
		WalletToID:      t.WalletToID,
		Amount:          t.Amount,
		ExchangeRate:    &rate,
		Note:            t.Note,
		EffectiveDate:   t.EffectiveDate,
		CategoryID:      t.CategoryID,
	}
}

// TransactionFilters narrows a transaction list query. The zero value is
// unconstrained.
type TransactionFilters struct {
	WalletID        string
	StartDate       Date
	EndDate         Date
	TransactionType TransactionType
}

// IsZero reports whether no filter is set.
func (f TransactionFilters) IsZero() bool {
	return f == TransactionFilters{}
}

// Matches reports whether t satisfies every filter that is set.
func (f TransactionFilters) Matches(t Transaction) bool {
	if f.TransactionType != "" && t.TransactionType != f.TransactionType {
		return false
	}
	if f.WalletID != "" && !refEquals(t.WalletFromID, f.WalletID) && !refEquals(t.WalletToID, f.WalletID) {
		return false
	}
	if !f.StartDate.IsZero() && t.EffectiveDate.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && f.EndDate.Before(t.EffectiveDate) {
		return false
	}
	return true
}

func refEquals(ref *string, id string) bool {
	return ref != nil && *ref == id
}

// StringRef returns a pointer to s, or nil when s is empty.
func StringRef(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
