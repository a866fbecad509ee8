package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

type (
	// TransactionType discriminates ledger entries.
	TransactionType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Category is a named grouping for expenses, unique by name.
	Category struct {
		ID   int64
		Name string
	}

	// Expense is a single spend record tied to exactly one category.
	// CategoryName is denormalized on read and never persisted.
	Expense struct {
		ID           int64
		Name         string
		CategoryID   int64
		CategoryName string
		Amount       Money
		Description  string
		Date         Date
	}

	// Transaction is an entry in the flat income/expense ledger.
	// Category here is free text, unrelated to the categories table.
	Transaction struct {
		ID          int64
		Date        Date
		Type        TransactionType
		Category    string
		Amount      float64
		Description string
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyName       = errors.New("empty name")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidCategory = errors.New("invalid category id")
	ErrInvalidType     = errors.New("invalid transaction type")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String renders the date as YYYY-MM-DD, the storage format.
func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (t TransactionType) Validate() error {
	switch t {
	case TypeIncome, TypeExpense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > 50 {
		return errors.New("name too long (max 50 characters)")
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if len(e.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	if e.CategoryID <= 0 {
		return ErrInvalidCategory
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	return e.Date.Validate()
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
