package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"expensetracker/internal/core"
)

// ExpenseStore persists expenses. Every row references a category; reads join
// the category name in. Amounts stay in cents end-to-end.
type ExpenseStore struct {
	db *DB
}

func NewExpenseStore(db *DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

const expenseColumns = `e.id, e.name, e.category_id, c.name, e.amount_cents, e.description, e.date`

func scanExpense(row interface{ Scan(...any) error }) (core.Expense, error) {
	var (
		e    core.Expense
		desc sql.NullString
		date string
	)
	if err := row.Scan(&e.ID, &e.Name, &e.CategoryID, &e.CategoryName, &e.Amount.Cents, &desc, &date); err != nil {
		return core.Expense{}, err
	}
	e.Description = desc.String

	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	e.Date = d
	return e, nil
}

// List returns all expenses joined with their category name, newest first.
func (s *ExpenseStore) List(ctx context.Context) ([]core.Expense, error) {
	return s.query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		ORDER BY e.date DESC`)
}

// ListByDateRange returns expenses with start <= date <= end, newest first,
// id descending within the same day.
func (s *ExpenseStore) ListByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	return s.query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.date BETWEEN ? AND ?
		ORDER BY e.date DESC, e.id DESC`,
		start.String(), end.String())
}

func (s *ExpenseStore) query(ctx context.Context, q string, args ...any) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *ExpenseStore) GetByID(ctx context.Context, id int64) (core.Expense, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.id = ?`, id)

	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

// Add persists an expense and returns it with the generated id. A category id
// that does not exist fails with ErrForeignKey; nothing is persisted.
func (s *ExpenseStore) Add(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (name, category_id, amount_cents, description, date)
		VALUES (?, ?, ?, ?, ?)`,
		e.Name, e.CategoryID, e.Amount.Cents, nullable(e.Description), e.Date.String())
	if err != nil {
		return core.Expense{}, fmt.Errorf("add expense: %w", constraintError(err))
	}

	e.ID, err = res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("add expense: last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense added",
		"id", e.ID,
		"name", e.Name,
		"amount_cents", e.Amount.Cents,
		"category_id", e.CategoryID)
	return e, nil
}

// Update rewrites an expense. Returns false when no row has that id; a
// missing category fails with ErrForeignKey.
func (s *ExpenseStore) Update(ctx context.Context, e core.Expense) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE expenses
		SET name = ?, category_id = ?, amount_cents = ?, description = ?, date = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		e.Name, e.CategoryID, e.Amount.Cents, nullable(e.Description), e.Date.String(), e.ID)
	if err != nil {
		return false, fmt.Errorf("update expense %d: %w", e.ID, constraintError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update expense %d: rows affected: %w", e.ID, err)
	}
	return affected > 0, nil
}

func (s *ExpenseStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete expense %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete expense %d: rows affected: %w", id, err)
	}
	if affected > 0 {
		slog.InfoContext(ctx, "Expense deleted", "id", id)
	}
	return affected > 0, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
