package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// DefaultCategories is the reference data guaranteed to exist after startup.
var DefaultCategories = []string{
	"Food & Dining", "Shopping", "Transportation", "Bills & Utilities",
	"Housing", "Entertainment", "Healthcare", "Education",
	"Gifts & Donations", "Travel", "Personal Care", "Pets", "Other",
}

// SeedDefaultCategories inserts each default category unless a row with that
// name already exists. Idempotent across runs; user-added categories and
// renames are left alone.
func SeedDefaultCategories(ctx context.Context, db *DB) error {
	seeded := 0
	for _, name := range DefaultCategories {
		var count int64
		err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE name = ?`, name).Scan(&count)
		if err != nil {
			return fmt.Errorf("check category %q: %w", name, err)
		}
		if count > 0 {
			continue
		}

		if _, err := db.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, name); err != nil {
			return fmt.Errorf("insert category %q: %w", name, err)
		}
		seeded++
	}

	if seeded > 0 {
		slog.InfoContext(ctx, "Seeded default categories", "count", seeded)
	}
	return nil
}
