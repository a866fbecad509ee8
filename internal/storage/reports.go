package storage

import (
	"context"
	"fmt"

	"expensetracker/internal/core"
)

// Reports runs the aggregation queries over both subsystems. It holds no
// state of its own; every call is a single query against the pool.
type Reports struct {
	db *DB
}

func NewReports(db *DB) *Reports {
	return &Reports{db: db}
}

// TotalByType sums ledger amounts of the given type; 0 when there are no rows.
func (r *Reports) TotalByType(ctx context.Context, t core.TransactionType) (float64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}

	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE type = ?`,
		string(t)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total for type %s: %w", t, err)
	}
	return total, nil
}

func (r *Reports) TotalIncome(ctx context.Context) (float64, error) {
	return r.TotalByType(ctx, core.TypeIncome)
}

func (r *Reports) TotalExpenses(ctx context.Context) (float64, error) {
	return r.TotalByType(ctx, core.TypeExpense)
}

// Balance is total income minus total ledger expenses.
func (r *Reports) Balance(ctx context.Context) (float64, error) {
	income, err := r.TotalIncome(ctx)
	if err != nil {
		return 0, err
	}
	expenses, err := r.TotalExpenses(ctx)
	if err != nil {
		return 0, err
	}
	return income - expenses, nil
}

// CategoryWiseSummary groups the ledger by (type, category), ordered by type
// then total descending.
func (r *Reports) CategoryWiseSummary(ctx context.Context) ([]core.TypeCategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT type, category, SUM(amount) AS total
		FROM transactions
		GROUP BY type, category
		ORDER BY type, total DESC`)
	if err != nil {
		return nil, fmt.Errorf("category-wise summary: %w", err)
	}
	defer rows.Close()

	var summary []core.TypeCategoryTotal
	for rows.Next() {
		var (
			row core.TypeCategoryTotal
			typ string
		)
		if err := rows.Scan(&typ, &row.Category, &row.Total); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		row.Type = core.TransactionType(typ)
		summary = append(summary, row)
	}
	return summary, rows.Err()
}

// ExpensesByCategory sums expense amounts per category name over an inclusive
// date range, ordered by total descending. Totals stay in cents.
func (r *Reports) ExpensesByCategory(ctx context.Context, start, end core.Date) ([]core.CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.name, SUM(e.amount_cents) AS total
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.date BETWEEN ? AND ?
		GROUP BY c.name
		ORDER BY total DESC`,
		start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("expenses by category: %w", err)
	}
	defer rows.Close()

	var totals []core.CategoryTotal
	for rows.Next() {
		var ct core.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total.Cents); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}
