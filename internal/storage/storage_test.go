package storage

import (
	"context"
	"path/filepath"
	"testing"

	"expensetracker/internal/core"
)

// newTestDB opens a fresh database in a temp dir with the schema migrated
// and default categories seeded.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "tracker.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := Initialize(context.Background(), db, dbPath, false); err != nil {
		t.Fatalf("initialize database: %v", err)
	}
	return db
}

// categoryID looks up a seeded category by name.
func categoryID(t *testing.T, db *DB, name string) int64 {
	t.Helper()

	categories, err := NewCategoryStore(db).List(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("category %q not found", name)
	return 0
}

func TestInitializeSeedsDefaultCategories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	categories, err := NewCategoryStore(db).List(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != len(DefaultCategories) {
		t.Fatalf("expected %d categories, got %d", len(DefaultCategories), len(categories))
	}

	found := map[string]bool{}
	for _, c := range categories {
		found[c.Name] = true
	}
	for _, name := range DefaultCategories {
		if !found[name] {
			t.Errorf("missing default category %q", name)
		}
	}

	// sorted by name
	for i := 1; i < len(categories); i++ {
		if categories[i-1].Name > categories[i].Name {
			t.Fatalf("categories not sorted: %q before %q", categories[i-1].Name, categories[i].Name)
		}
	}
}

func TestInitializePreservesDataAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "tracker.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := Initialize(ctx, db, dbPath, false); err != nil {
		t.Fatalf("first initialize: %v", err)
	}

	custom, err := NewCategoryStore(db).Add(ctx, "Subscriptions")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if _, err := NewLedgerStore(db).Add(ctx, core.Transaction{
		Date:     core.NewDate(2024, 1, 5),
		Type:     core.TypeIncome,
		Category: "Salary",
		Amount:   1000,
	}); err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	db.Close()

	// Simulate a restart
	db, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen database: %v", err)
	}
	defer db.Close()
	if err := Initialize(ctx, db, dbPath, false); err != nil {
		t.Fatalf("second initialize: %v", err)
	}

	if _, err := NewCategoryStore(db).GetByID(ctx, custom.ID); err != nil {
		t.Errorf("custom category lost across restart: %v", err)
	}
	transactions, err := NewLedgerStore(db).List(ctx)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(transactions) != 1 {
		t.Errorf("expected 1 transaction after restart, got %d", len(transactions))
	}

	categories, err := NewCategoryStore(db).List(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != len(DefaultCategories)+1 {
		t.Errorf("seeding not idempotent: expected %d categories, got %d", len(DefaultCategories)+1, len(categories))
	}
}

func TestInitializeResetDropsEverything(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "tracker.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := Initialize(ctx, db, dbPath, false); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	if _, err := NewCategoryStore(db).Add(ctx, "Subscriptions"); err != nil {
		t.Fatalf("add category: %v", err)
	}
	if _, err := NewLedgerStore(db).Add(ctx, core.Transaction{
		Date:     core.NewDate(2024, 1, 5),
		Type:     core.TypeExpense,
		Category: "Rent",
		Amount:   500,
	}); err != nil {
		t.Fatalf("add transaction: %v", err)
	}

	if err := Initialize(ctx, db, dbPath, true); err != nil {
		t.Fatalf("reset initialize: %v", err)
	}

	categories, err := NewCategoryStore(db).List(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != len(DefaultCategories) {
		t.Errorf("expected only %d default categories after reset, got %d", len(DefaultCategories), len(categories))
	}
	transactions, err := NewLedgerStore(db).List(ctx)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("expected empty ledger after reset, got %d rows", len(transactions))
	}

	// The AUTOINCREMENT bookkeeping table survives a reset; a second reset
	// must still succeed against it.
	if _, err := NewCategoryStore(db).Add(ctx, "Subscriptions"); err != nil {
		t.Fatalf("add category after reset: %v", err)
	}
	if err := Initialize(ctx, db, dbPath, true); err != nil {
		t.Fatalf("second reset initialize: %v", err)
	}
	categories, err = NewCategoryStore(db).List(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != len(DefaultCategories) {
		t.Errorf("expected only %d default categories after second reset, got %d", len(DefaultCategories), len(categories))
	}
}
