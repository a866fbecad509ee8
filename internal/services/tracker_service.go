// Package services wires the stores together for the UI layer and fans out
// record-change events after successful writes.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"expensetracker/internal/core"
	"expensetracker/internal/events"
	"expensetracker/internal/storage"
)

// Tracker is the single entry point the UI layer calls. Reads go straight to
// the stores; writes additionally publish a record event. Event publishing is
// best-effort: a failed publish is logged, never surfaced, because the row is
// already persisted.
type Tracker struct {
	categories *storage.CategoryStore
	expenses   *storage.ExpenseStore
	ledger     *storage.LedgerStore
	reports    *storage.Reports
	db         *storage.DB
	events     *events.Client
}

func NewTracker(db *storage.DB, ev *events.Client) *Tracker {
	return &Tracker{
		categories: storage.NewCategoryStore(db),
		expenses:   storage.NewExpenseStore(db),
		ledger:     storage.NewLedgerStore(db),
		reports:    storage.NewReports(db),
		db:         db,
		events:     ev,
	}
}

// Categories exposes read operations on the category store.
func (t *Tracker) Categories() *storage.CategoryStore { return t.categories }

// Expenses exposes read operations on the expense store.
func (t *Tracker) Expenses() *storage.ExpenseStore { return t.expenses }

// Ledger exposes read operations on the ledger store.
func (t *Tracker) Ledger() *storage.LedgerStore { return t.ledger }

// Reports exposes the aggregation queries.
func (t *Tracker) Reports() *storage.Reports { return t.reports }

func (t *Tracker) AddCategory(ctx context.Context, name string) (core.Category, error) {
	c, err := t.categories.Add(ctx, name)
	if err != nil {
		return core.Category{}, err
	}
	t.publish(ctx, events.EntityCategory, events.ActionCreated, c.ID)
	return c, nil
}

func (t *Tracker) UpdateCategory(ctx context.Context, id int64, newName string) (bool, error) {
	ok, err := t.categories.Update(ctx, id, newName)
	if err != nil || !ok {
		return ok, err
	}
	t.publish(ctx, events.EntityCategory, events.ActionUpdated, id)
	return true, nil
}

func (t *Tracker) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	ok, err := t.categories.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	t.publish(ctx, events.EntityCategory, events.ActionDeleted, id)
	return true, nil
}

func (t *Tracker) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	saved, err := t.expenses.Add(ctx, e)
	if err != nil {
		return core.Expense{}, err
	}
	t.publish(ctx, events.EntityExpense, events.ActionCreated, saved.ID)
	return saved, nil
}

func (t *Tracker) UpdateExpense(ctx context.Context, e core.Expense) (bool, error) {
	ok, err := t.expenses.Update(ctx, e)
	if err != nil || !ok {
		return ok, err
	}
	t.publish(ctx, events.EntityExpense, events.ActionUpdated, e.ID)
	return true, nil
}

func (t *Tracker) DeleteExpense(ctx context.Context, id int64) (bool, error) {
	ok, err := t.expenses.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	t.publish(ctx, events.EntityExpense, events.ActionDeleted, id)
	return true, nil
}

func (t *Tracker) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	saved, err := t.ledger.Add(ctx, tx)
	if err != nil {
		return core.Transaction{}, err
	}
	t.publish(ctx, events.EntityTransaction, events.ActionCreated, saved.ID)
	return saved, nil
}

func (t *Tracker) UpdateTransaction(ctx context.Context, tx core.Transaction) (bool, error) {
	ok, err := t.ledger.Update(ctx, tx)
	if err != nil || !ok {
		return ok, err
	}
	t.publish(ctx, events.EntityTransaction, events.ActionUpdated, tx.ID)
	return true, nil
}

func (t *Tracker) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	ok, err := t.ledger.Delete(ctx, id)
	if err != nil || !ok {
		return ok, err
	}
	t.publish(ctx, events.EntityTransaction, events.ActionDeleted, id)
	return true, nil
}

func (t *Tracker) publish(ctx context.Context, entity, action string, id int64) {
	if err := t.events.Publish(ctx, events.NewRecordEvent(entity, action, id)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record event",
			"entity", entity, "action", action, "id", id, "error", err)
	}
}

// Close releases the event stream and the database pool.
func (t *Tracker) Close() error {
	var errs []error

	if err := t.events.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: %w", err))
	}
	if t.db != nil {
		if err := t.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close tracker: %v", errs)
	}
	return nil
}
