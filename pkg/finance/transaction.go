// Package finance defines income and expense transactions and the totals,
// category breakdown and series derived from them.
package finance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/collection"
)

// Key is the storage key of the transaction collection.
const Key = "transactions"

// Kind tells income from expense.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// ParseKind matches raw case-insensitively.
func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	}
	return "", fmt.Errorf("finance: unknown kind %q", raw)
}

// Transaction is one income or expense.
type Transaction struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Date     calendar.Date   `json:"date"`
	Category string          `json:"category"`
	Kind     Kind            `json:"type"`
}

// Equal compares transactions field by field; amounts compare by value.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Title == o.Title &&
		t.Amount.Equal(o.Amount) &&
		t.Date.Equal(o.Date) &&
		t.Category == o.Category &&
		t.Kind == o.Kind
}

// Validate reports why t cannot be stored.
func Validate(t Transaction) error {
	switch {
	case strings.TrimSpace(t.Title) == "":
		return errors.New("finance: title required")
	case !t.Amount.IsPositive():
		return fmt.Errorf("finance: amount must be positive, got %s", t.Amount)
	case t.Date.IsZero():
		return errors.New("finance: date required")
	}
	k, err := ParseKind(string(t.Kind))
	if err != nil {
		return err
	}
	if k != t.Kind {
		return fmt.Errorf("finance: type %q must be spelled %q", t.Kind, k)
	}
	return nil
}

// Schema describes transactions to a collection store. New transactions are
// appended.
func Schema() collection.Schema[Transaction] {
	return collection.Schema[Transaction]{
		Key:       Key,
		ID:        func(t Transaction) string { return t.ID },
		WithID:    func(t Transaction, id string) Transaction { t.ID = id; return t },
		Validate:  Validate,
		Placement: collection.Append,
	}
}

// Patch carries the fields of an edit. Nil fields are left unchanged.
type Patch struct {
	Title    *string
	Amount   *decimal.Decimal
	Date     *calendar.Date
	Category *string
	Kind     *Kind
}

// Apply merges p into t.
func (p Patch) Apply(t Transaction) Transaction {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Kind != nil {
		t.Kind = *p.Kind
	}
	return t
}
