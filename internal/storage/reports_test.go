package storage

import (
	"context"
	"math"
	"testing"

	"expensetracker/internal/core"
)

func addTransaction(t *testing.T, db *DB, tt core.TransactionType, category string, amount float64, date core.Date) core.Transaction {
	t.Helper()
	tx, err := NewLedgerStore(db).Add(context.Background(), core.Transaction{
		Date: date, Type: tt, Category: category, Amount: amount,
	})
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	return tx
}

func TestTotalsAndBalance(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reports := NewReports(db)

	addTransaction(t, db, core.TypeIncome, "Salary", 1000.00, core.NewDate(2024, 1, 1))
	addTransaction(t, db, core.TypeExpense, "Rent", 250.00, core.NewDate(2024, 1, 2))

	income, err := reports.TotalIncome(ctx)
	if err != nil {
		t.Fatalf("total income: %v", err)
	}
	if income != 1000.00 {
		t.Errorf("expected income 1000.00, got %v", income)
	}

	expenses, err := reports.TotalExpenses(ctx)
	if err != nil {
		t.Fatalf("total expenses: %v", err)
	}
	if expenses != 250.00 {
		t.Errorf("expected expenses 250.00, got %v", expenses)
	}

	balance, err := reports.Balance(ctx)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 750.00 {
		t.Errorf("expected balance 750.00, got %v", balance)
	}
}

func TestTotalByTypeEmptyLedger(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reports := NewReports(db)

	total, err := reports.TotalByType(ctx, core.TypeIncome)
	if err != nil {
		t.Fatalf("total by type: %v", err)
	}
	if total != 0 {
		t.Errorf("expected 0 for empty ledger, got %v", total)
	}

	if _, err := reports.TotalByType(ctx, "TRANSFER"); err == nil {
		t.Fatal("expected error for invalid type")
	}
}

func TestBalanceInvariantAcrossMutations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reports := NewReports(db)
	ledger := NewLedgerStore(db)

	addTransaction(t, db, core.TypeIncome, "Salary", 2500.00, core.NewDate(2024, 1, 1))
	victim := addTransaction(t, db, core.TypeExpense, "Rent", 800.00, core.NewDate(2024, 1, 2))
	addTransaction(t, db, core.TypeExpense, "Food", 120.50, core.NewDate(2024, 1, 3))
	if _, err := ledger.Delete(ctx, victim.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	income, err := reports.TotalIncome(ctx)
	if err != nil {
		t.Fatalf("income: %v", err)
	}
	expenses, err := reports.TotalExpenses(ctx)
	if err != nil {
		t.Fatalf("expenses: %v", err)
	}
	balance, err := reports.Balance(ctx)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if math.Abs(balance-(income-expenses)) > 1e-9 {
		t.Errorf("balance %v != income %v - expenses %v", balance, income, expenses)
	}
}

func TestCategoryWiseSummary(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reports := NewReports(db)

	addTransaction(t, db, core.TypeExpense, "Rent", 800.00, core.NewDate(2024, 1, 1))
	addTransaction(t, db, core.TypeExpense, "Food", 100.00, core.NewDate(2024, 1, 2))
	addTransaction(t, db, core.TypeExpense, "Food", 50.00, core.NewDate(2024, 1, 3))
	addTransaction(t, db, core.TypeIncome, "Salary", 2500.00, core.NewDate(2024, 1, 4))

	summary, err := reports.CategoryWiseSummary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(summary))
	}

	// EXPENSE sorts before INCOME; within a type totals descend
	want := []core.TypeCategoryTotal{
		{Type: core.TypeExpense, Category: "Rent", Total: 800.00},
		{Type: core.TypeExpense, Category: "Food", Total: 150.00},
		{Type: core.TypeIncome, Category: "Salary", Total: 2500.00},
	}
	for i, row := range summary {
		if row != want[i] {
			t.Errorf("row %d: expected %+v, got %+v", i, want[i], row)
		}
	}
}

func TestExpensesByCategory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	reports := NewReports(db)
	expenses := NewExpenseStore(db)

	food := categoryID(t, db, "Food & Dining")
	travel := categoryID(t, db, "Travel")

	add := func(catID int64, cents int64, d core.Date) {
		if _, err := expenses.Add(ctx, core.Expense{
			Name: "x", CategoryID: catID, Amount: core.Money{Cents: cents}, Date: d,
		}); err != nil {
			t.Fatalf("add expense: %v", err)
		}
	}
	add(food, 1250, core.NewDate(2024, 1, 10))
	add(food, 800, core.NewDate(2024, 1, 15))
	add(travel, 9000, core.NewDate(2024, 1, 20))
	add(food, 500, core.NewDate(2024, 2, 5)) // outside range

	start, end := core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31)
	totals, err := reports.ExpensesByCategory(ctx, start, end)
	if err != nil {
		t.Fatalf("expenses by category: %v", err)
	}

	want := []core.CategoryTotal{
		{Category: "Travel", Total: core.Money{Cents: 9000}},
		{Category: "Food & Dining", Total: core.Money{Cents: 2050}},
	}
	if len(totals) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(totals))
	}
	for i, ct := range totals {
		if ct != want[i] {
			t.Errorf("position %d: expected %+v, got %+v", i, want[i], ct)
		}
	}

	// Sums must equal the grouped sums over ListByDateRange
	ranged, err := expenses.ListByDateRange(ctx, start, end)
	if err != nil {
		t.Fatalf("list by range: %v", err)
	}
	grouped := map[string]int64{}
	for _, e := range ranged {
		grouped[e.CategoryName] += e.Amount.Cents
	}
	for _, ct := range totals {
		if grouped[ct.Category] != ct.Total.Cents {
			t.Errorf("category %q: report says %d cents, range sum says %d",
				ct.Category, ct.Total.Cents, grouped[ct.Category])
		}
	}
}
