package main

import (
	"testing"

	"github.com/pennywise/client/internal/models"
	"github.com/pennywise/client/internal/notify"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommand(t *testing.T) {
	cmd, args := splitCommand("ADD expense 12.50 from=w1 note=weekly shop run")
	assert.Equal(t, "add", cmd)
	assert.Equal(t, []string{"expense", "12.50", "from=w1", "note=weekly shop run"}, args)

	cmd, args = splitCommand("   ")
	assert.Empty(t, cmd)
	assert.Nil(t, args)
}

func TestParseFilterPatch(t *testing.T) {
	patch, err := parseFilterPatch([]string{"type=expense", "wallet=w1", "from=2024-03-01", "to="})
	require.NoError(t, err)

	require.NotNil(t, patch.TransactionType)
	assert.Equal(t, models.TransactionTypeExpense, *patch.TransactionType)
	require.NotNil(t, patch.WalletID)
	assert.Equal(t, "w1", *patch.WalletID)
	require.NotNil(t, patch.StartDate)
	assert.Equal(t, models.NewDate(2024, 3, 1), *patch.StartDate)
	require.NotNil(t, patch.EndDate)
	assert.True(t, patch.EndDate.IsZero())

	_, err = parseFilterPatch([]string{"type=refund"})
	assert.Error(t, err)
	_, err = parseFilterPatch([]string{"colour=red"})
	assert.Error(t, err)
	_, err = parseFilterPatch([]string{"wallet"})
	assert.Error(t, err)
}

func TestParsePayload(t *testing.T) {
	p, err := parsePayload([]string{"transfer", "100", "from=w1", "to=w2", "rate=0.9", "date=2024-03-05"})
	require.NoError(t, err)

	assert.Equal(t, models.TransactionTypeTransfer, p.TransactionType)
	assert.True(t, decimal.NewFromInt(100).Equal(p.Amount))
	assert.Equal(t, "w1", *p.WalletFromID)
	assert.Equal(t, "w2", *p.WalletToID)
	assert.Equal(t, "0.9", p.Rate().String())
	assert.Equal(t, models.NewDate(2024, 3, 5), p.EffectiveDate)

	t.Run("date defaults to today", func(t *testing.T) {
		p, err := parsePayload([]string{"income", "5", "to=w1"})
		require.NoError(t, err)
		assert.Equal(t, models.Today(), p.EffectiveDate)
	})

	t.Run("bad input", func(t *testing.T) {
		_, err := parsePayload([]string{"expense"})
		assert.Error(t, err)
		_, err = parsePayload([]string{"expense", "ten"})
		assert.Error(t, err)
		_, err = parsePayload([]string{"expense", "10", "date=05/03/2024"})
		assert.ErrorIs(t, err, models.ErrInvalidDate)
	})
}

func TestApplyEdits(t *testing.T) {
	base := models.TransactionPayload{
		TransactionType: models.TransactionTypeExpense,
		WalletFromID:    models.StringRef("w1"),
		Amount:          decimal.NewFromInt(10),
		EffectiveDate:   models.NewDate(2024, 3, 5),
	}

	p, err := applyEdits(base, []string{"amount=12", "category=c1", "note=lunch"})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(12).Equal(p.Amount))
	assert.Equal(t, "c1", *p.CategoryID)
	assert.Equal(t, "lunch", p.Note)
	assert.Equal(t, "w1", *p.WalletFromID)

	p, err = applyEdits(base, []string{"from="})
	require.NoError(t, err)
	assert.Nil(t, p.WalletFromID)
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, "Transaction created", translate(notify.Toast{Key: "toast.transaction.created"}))
	assert.Equal(t, "Server error (503)", translate(notify.Toast{Key: "errors.server", Params: map[string]any{"status": 503}}))
	assert.Equal(t, "custom.key", translate(notify.Toast{Key: "custom.key"}))
}
