package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"expensetracker/internal/core"
)

// recentTransactionsLimit bounds the ledger slice included in the overview.
const recentTransactionsLimit = 10

// Overview gathers the numbers the main screen renders on load. The four
// reads are independent queries, so they fan out concurrently; the pool
// serializes access as needed.
func (t *Tracker) Overview(ctx context.Context) (core.Overview, error) {
	var (
		overview core.Overview
		recent   []core.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		income, err := t.reports.TotalIncome(gctx)
		overview.TotalIncome = income
		return err
	})
	g.Go(func() error {
		expenses, err := t.reports.TotalExpenses(gctx)
		overview.TotalExpenses = expenses
		return err
	})
	g.Go(func() error {
		summary, err := t.reports.CategoryWiseSummary(gctx)
		overview.ByTypeAndCategory = summary
		return err
	})
	g.Go(func() error {
		transactions, err := t.ledger.List(gctx)
		recent = transactions
		return err
	})

	if err := g.Wait(); err != nil {
		return core.Overview{}, err
	}

	overview.Balance = overview.TotalIncome - overview.TotalExpenses
	if len(recent) > recentTransactionsLimit {
		recent = recent[:recentTransactionsLimit]
	}
	overview.RecentTransactions = recent

	return overview, nil
}
