package storage

import (
	"errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Business errors surfaced to callers. Raw driver errors never cross the
// store boundary for constraint failures; check with errors.Is.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateName = errors.New("a category with this name already exists")
	ErrForeignKey    = errors.New("referenced category does not exist")
	ErrCategoryInUse = errors.New("category has expenses associated with it")
)

// constraintError maps sqlite constraint failures onto business errors.
// Anything else passes through unchanged.
func constraintError(err error) error {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return ErrDuplicateName
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ErrForeignKey
	}
	return err
}
