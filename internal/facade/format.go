package facade

import (
	"github.com/pennywise/client/internal/models"
)

// TypeColor returns the accent color used for a transaction kind.
func TypeColor(t models.TransactionType) string {
	switch t {
	case models.TransactionTypeExpense:
		return "#e53935"
	case models.TransactionTypeIncome:
		return "#43a047"
	case models.TransactionTypeTransfer:
		return "#1e88e5"
	}
	return "#757575"
}

// TypeLabel returns the message key naming a transaction kind.
func TypeLabel(t models.TransactionType) string {
	switch t {
	case models.TransactionTypeExpense:
		return "transaction.type.expense"
	case models.TransactionTypeIncome:
		return "transaction.type.income"
	case models.TransactionTypeTransfer:
		return "transaction.type.transfer"
	}
	return "transaction.type.unknown"
}

// TypeSign is the sign shown in front of an amount.
func TypeSign(t models.TransactionType) string {
	switch t {
	case models.TransactionTypeExpense:
		return "-"
	case models.TransactionTypeIncome:
		return "+"
	}
	return ""
}

// FormatAmount renders the amount with two decimals and the kind's sign.
func FormatAmount(t models.Transaction) string {
	return TypeSign(t.TransactionType) + t.Amount.Abs().StringFixed(2)
}

// WalletName resolves a wallet reference. An unset reference is outside the
// tracked wallets and renders empty; an unknown id renders as itself.
func (f *TransactionFacade) WalletName(id *string) string {
	if id == nil {
		return ""
	}
	if f.catalog != nil {
		if name, ok := f.catalog.WalletName(*id); ok {
			return name
		}
	}
	return *id
}

// CategoryName resolves a category reference like WalletName.
func (f *TransactionFacade) CategoryName(id *string) string {
	if id == nil {
		return ""
	}
	if f.catalog != nil {
		if name, ok := f.catalog.CategoryName(*id); ok {
			return name
		}
	}
	return *id
}
