package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/pennywise/client/internal/models"
	"github.com/shopspring/decimal"
)

// Schema creates the transactions table.
const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id                 TEXT PRIMARY KEY,
	transaction_type   TEXT NOT NULL,
	wallet_from_id     TEXT,
	wallet_to_id       TEXT,
	amount             NUMERIC(19,4) NOT NULL,
	exchange_rate      NUMERIC(19,8) NOT NULL DEFAULT 1,
	destination_amount NUMERIC(19,4),
	note               TEXT NOT NULL DEFAULT '',
	effective_date     DATE NOT NULL,
	category_id        TEXT
)`

const transactionColumns = `id, transaction_type, wallet_from_id, wallet_to_id, amount, exchange_rate, destination_amount, note, effective_date, category_id`

// PostgresTransactions stores transactions in PostgreSQL.
type PostgresTransactions struct {
	db *sql.DB
}

func NewPostgresTransactions(db *sql.DB) *PostgresTransactions {
	return &PostgresTransactions{db: db}
}

// Migrate creates the schema if it does not exist.
func (p *PostgresTransactions) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create transactions table: %w", err)
	}
	return nil
}

func whereClause(f models.TransactionFilters) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.WalletID != "" {
		ph := next(f.WalletID)
		conds = append(conds, "(wallet_from_id = "+ph+" OR wallet_to_id = "+ph+")")
	}
	if !f.StartDate.IsZero() {
		conds = append(conds, "effective_date >= "+next(f.StartDate))
	}
	if !f.EndDate.IsZero() {
		conds = append(conds, "effective_date <= "+next(f.EndDate))
	}
	if f.TransactionType != "" {
		conds = append(conds, "transaction_type = "+next(string(f.TransactionType)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (p *PostgresTransactions) List(ctx context.Context, filters models.TransactionFilters, page, size int, s Sort) (models.Page[models.Transaction], error) {
	where, args := whereClause(filters)

	var total int64
	if err := p.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions"+where, args...).Scan(&total); err != nil {
		return models.Page[models.Transaction]{}, fmt.Errorf("count transactions: %w", err)
	}

	if size <= 0 || page < 0 || int64(page) > math.MaxInt64/int64(size) {
		return models.NewPage[models.Transaction](nil, total, page, size), nil
	}

	column, ok := sortColumns[s.Field]
	if !ok {
		column = sortColumns[DefaultSort.Field]
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}

	query := fmt.Sprintf("SELECT %s FROM transactions%s ORDER BY %s %s, id LIMIT $%d OFFSET $%d",
		transactionColumns, where, column, dir, len(args)+1, len(args)+2)
	args = append(args, size, int64(page)*int64(size))

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return models.Page[models.Transaction]{}, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	content := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return models.Page[models.Transaction]{}, err
		}
		content = append(content, t)
	}
	if err := rows.Err(); err != nil {
		return models.Page[models.Transaction]{}, fmt.Errorf("list transactions: %w", err)
	}

	return models.NewPage(content, total, page, size), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (models.Transaction, error) {
	var (
		t                    models.Transaction
		walletFrom, walletTo sql.NullString
		category             sql.NullString
		dest                 decimal.NullDecimal
		txType               string
	)
	err := row.Scan(&t.ID, &txType, &walletFrom, &walletTo, &t.Amount, &t.ExchangeRate, &dest, &t.Note, &t.EffectiveDate, &category)
	if err != nil {
		return t, err
	}

	t.TransactionType = models.TransactionType(txType)
	t.WalletFromID = nullString(walletFrom)
	t.WalletToID = nullString(walletTo)
	t.CategoryID = nullString(category)
	if dest.Valid {
		d := dest.Decimal
		t.DestinationAmount = &d
	}
	return t, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func (p *PostgresTransactions) Get(ctx context.Context, id string) (models.Transaction, error) {
	row := p.db.QueryRowContext(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE id = $1", id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, ErrNotFound
	}
	if err != nil {
		return models.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (p *PostgresTransactions) Create(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, string(t.TransactionType), t.WalletFromID, t.WalletToID, t.Amount, t.ExchangeRate,
		nullDecimal(t.DestinationAmount), t.Note, t.EffectiveDate, t.CategoryID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return t, nil
}

func (p *PostgresTransactions) Update(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	res, err := p.db.ExecContext(ctx, `
		UPDATE transactions SET transaction_type = $1, wallet_from_id = $2, wallet_to_id = $3, amount = $4,
			exchange_rate = $5, destination_amount = $6, note = $7, effective_date = $8, category_id = $9
		WHERE id = $10`,
		string(t.TransactionType), t.WalletFromID, t.WalletToID, t.Amount, t.ExchangeRate,
		nullDecimal(t.DestinationAmount), t.Note, t.EffectiveDate, t.CategoryID, t.ID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return models.Transaction{}, err
	}
	return t, nil
}

func (p *PostgresTransactions) Delete(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
