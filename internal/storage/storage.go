// Package storage implements the persistence and reporting layer on SQLite.
//
// Each store receives the shared *DB handle at construction time and acquires
// a pooled connection per operation; no state is held between calls.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB pool handed to every store.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the SQLite database at dbPath and applies
// the connection pragmas the stores rely on.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Pragmas go on the DSN so every pooled connection gets them. foreign_keys
	// is the authoritative guard against dangling expense->category references;
	// the stores' pre-checks are only fast paths. WAL lets concurrent readers
	// proceed during writes.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return &DB{db}, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
