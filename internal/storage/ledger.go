package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"expensetracker/internal/core"
)

// LedgerStore persists the flat income/expense ledger. Its category column is
// free text, deliberately unrelated to the categories table.
type LedgerStore struct {
	db *DB
}

func NewLedgerStore(db *DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// Add appends a ledger entry and returns it with the generated id.
func (s *LedgerStore) Add(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (date, type, category, amount, description)
		VALUES (?, ?, ?, ?, ?)`,
		t.Date.String(), string(t.Type), t.Category, t.Amount, nullable(t.Description))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	t.ID, err = res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction added",
		"id", t.ID,
		"type", string(t.Type),
		"category", t.Category,
		"amount", t.Amount)
	return t, nil
}

// List returns all ledger entries, newest first.
func (s *LedgerStore) List(ctx context.Context) ([]core.Transaction, error) {
	return s.query(ctx, `
		SELECT id, date, type, category, amount, description
		FROM transactions
		ORDER BY date DESC`)
}

// ListByDateRange returns entries with start <= date <= end, newest first.
func (s *LedgerStore) ListByDateRange(ctx context.Context, start, end core.Date) ([]core.Transaction, error) {
	return s.query(ctx, `
		SELECT id, date, type, category, amount, description
		FROM transactions
		WHERE date BETWEEN ? AND ?
		ORDER BY date DESC`,
		start.String(), end.String())
}

func (s *LedgerStore) GetByID(ctx context.Context, id int64) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, type, category, amount, description
		FROM transactions
		WHERE id = ?`, id)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return t, nil
}

// Update rewrites a ledger entry. Returns false when no row has that id.
func (s *LedgerStore) Update(ctx context.Context, t core.Transaction) (bool, error) {
	if err := t.Validate(); err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET date = ?, type = ?, category = ?, amount = ?, description = ?
		WHERE id = ?`,
		t.Date.String(), string(t.Type), t.Category, t.Amount, nullable(t.Description), t.ID)
	if err != nil {
		return false, fmt.Errorf("update transaction %d: %w", t.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update transaction %d: rows affected: %w", t.ID, err)
	}
	return affected > 0, nil
}

func (s *LedgerStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete transaction %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete transaction %d: rows affected: %w", id, err)
	}
	if affected > 0 {
		slog.InfoContext(ctx, "Transaction deleted", "id", id)
	}
	return affected > 0, nil
}

func (s *LedgerStore) query(ctx context.Context, q string, args ...any) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func scanTransaction(row interface{ Scan(...any) error }) (core.Transaction, error) {
	var (
		t    core.Transaction
		typ  string
		desc sql.NullString
		date string
	)
	if err := row.Scan(&t.ID, &date, &typ, &t.Category, &t.Amount, &desc); err != nil {
		return core.Transaction{}, err
	}
	t.Type = core.TransactionType(typ)
	t.Description = desc.String

	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	t.Date = d
	return t, nil
}
