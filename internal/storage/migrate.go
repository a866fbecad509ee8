package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Initialize brings the schema up to date and seeds the default categories.
// It never drops data; reset opts into the legacy drop-everything behavior.
// Any migration or seeding error is fatal to startup and must abort the
// process before any store operation runs.
func Initialize(ctx context.Context, db *DB, dbPath string, reset bool) error {
	if reset {
		slog.WarnContext(ctx, "Resetting database, all existing data will be destroyed", "path", dbPath)
		if err := resetSchema(dbPath); err != nil {
			return fmt.Errorf("reset schema: %w", err)
		}
	} else if err := RunMigrations(dbPath); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if err := SeedDefaultCategories(ctx, db); err != nil {
		return fmt.Errorf("seed default categories: %w", err)
	}

	return nil
}

// RunMigrations applies all pending schema migrations.
func RunMigrations(dbPath string) error {
	m, closeFn, err := newMigrator(dbPath)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// resetSchema tears the schema down and recreates it from scratch. This is
// the one-time migration path for databases produced by the old client, which
// rebuilt all tables on every launch.
//
// It rolls back through the down migrations rather than migrate.Drop: Drop
// enumerates every table including sqlite_sequence, which SQLite refuses to
// drop, so Drop fails on any database that has used AUTOINCREMENT.
func resetSchema(dbPath string) error {
	m, closeFn, err := newMigrator(dbPath)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("drop schema: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("recreate schema: %w", err)
	}

	return nil
}

func newMigrator(dbPath string) (*migrate.Migrate, func(), error) {
	// Separate connection for migrations to avoid interfering with the pool
	migrateDB, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(10000)")
	if err != nil {
		return nil, nil, fmt.Errorf("open migration database: %w", err)
	}

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		migrateDB.Close()
		return nil, nil, fmt.Errorf("create sqlite driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		migrateDB.Close()
		return nil, nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		migrateDB.Close()
		return nil, nil, fmt.Errorf("create migrate instance: %w", err)
	}

	closeFn := func() {
		m.Close()
		migrateDB.Close()
	}
	return m, closeFn, nil
}
