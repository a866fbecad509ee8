package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"expensetracker/internal/core"
)

// CategoryStore owns the category reference data. No other store mutates it.
type CategoryStore struct {
	db *DB
}

func NewCategoryStore(db *DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories sorted by name.
func (s *CategoryStore) List(ctx context.Context) ([]core.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *CategoryStore) GetByID(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = ?`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}

// Add creates a category and returns it with the generated id. A name that
// already exists fails with ErrDuplicateName via the UNIQUE constraint.
func (s *CategoryStore) Add(ctx context.Context, name string) (core.Category, error) {
	c := core.Category{Name: strings.TrimSpace(name)}
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, c.Name)
	if err != nil {
		return core.Category{}, fmt.Errorf("add category: %w", constraintError(err))
	}

	c.ID, err = res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("add category: last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Category added", "id", c.ID, "name", c.Name)
	return c, nil
}

// Update renames a category. Returns false when no row has that id.
func (s *CategoryStore) Update(ctx context.Context, id int64, newName string) (bool, error) {
	c := core.Category{ID: id, Name: strings.TrimSpace(newName)}
	if err := c.Validate(); err != nil {
		return false, err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		c.Name, id)
	if err != nil {
		return false, fmt.Errorf("update category %d: %w", id, constraintError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update category %d: rows affected: %w", id, err)
	}
	return affected > 0, nil
}

// Delete removes a category with no referencing expenses. The count query is
// a friendly fast path; an expense inserted between the check and the delete
// still trips the ON DELETE RESTRICT constraint, which stays authoritative.
func (s *CategoryStore) Delete(ctx context.Context, id int64) (bool, error) {
	var refs int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses WHERE category_id = ?`, id).Scan(&refs)
	if err != nil {
		return false, fmt.Errorf("count expenses for category %d: %w", id, err)
	}
	if refs > 0 {
		return false, fmt.Errorf("delete category %d: %w", id, ErrCategoryInUse)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		if errors.Is(constraintError(err), ErrForeignKey) {
			return false, fmt.Errorf("delete category %d: %w", id, ErrCategoryInUse)
		}
		return false, fmt.Errorf("delete category %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete category %d: rows affected: %w", id, err)
	}
	if affected > 0 {
		slog.InfoContext(ctx, "Category deleted", "id", id)
	}
	return affected > 0, nil
}
