package models

import "github.com/shopspring/decimal"

// WalletType classifies where the money of a wallet lives
type WalletType string

const (
	WalletTypeCash       WalletType = "CASH"
	WalletTypeBank       WalletType = "BANK"
	WalletTypeCard       WalletType = "CARD"
	WalletTypeSavings    WalletType = "SAVINGS"
	WalletTypeInvestment WalletType = "INVESTMENT"
)

// Wallet represents a tracked pool of funds in a single currency
type Wallet struct {
	ID             string           `json:"id,omitempty"`
	Name           string           `json:"name" validate:"required,max=100"`
	Currency       string           `json:"currency" validate:"required,len=3,uppercase"`
	Type           WalletType       `json:"type" validate:"required,oneof=CASH BANK CARD SAVINGS INVESTMENT"`
	InitialBalance decimal.Decimal  `json:"initialBalance"`
	GoalAmount     *decimal.Decimal `json:"goalAmount,omitempty"`
	Icon           string           `json:"icon,omitempty" validate:"max=50"`
	IsDefault      bool             `json:"isDefault"`
	DisplayOrder   int              `json:"displayOrder" validate:"gte=0"`
}

// GetID returns the wallet identifier.
func (w Wallet) GetID() string { return w.ID }

// WithID returns a copy of w carrying id.
func (w Wallet) WithID(id string) Wallet {
	w.ID = id
	return w
}
