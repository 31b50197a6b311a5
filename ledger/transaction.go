package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/fgpt"
)

// Type is the direction of a transaction.
type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

var (
	// ErrInvalidType is returned for a type other than income or expense.
	ErrInvalidType = errors.New("invalid transaction type")
	// ErrNegativeAmount is returned when adding a negative amount.
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// ParseType parses a transaction type, ignoring case.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case Income, Expense:
		return t, nil
	}
	return "", fmt.Errorf("%w %q, want %q or %q", ErrInvalidType, s, Income, Expense)
}

// Transaction is a row of the ledger. Transactions are never updated.
type Transaction struct {
	ID       int64
	Date     string // YYYY-MM-DD, or the text given when it could not be read as a date
	Type     Type
	Category string
	Amount   fgpt.Money
}

// IsInvestment reports whether the category mentions "investment", in any
// case. Any mention counts: "Investment property" is an investment too.
func (t Transaction) IsInvestment() bool {
	return strings.Contains(strings.ToLower(t.Category), "investment")
}
