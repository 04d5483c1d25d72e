package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind represents the direction of a ledger entry (income or expense).
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// IsValid checks if the kind is one of the known values.
func (k Kind) IsValid() bool {
	return k == KindIncome || k == KindExpense
}

var (
	ErrNotFound      = errors.New("ledger entry not found")
	ErrInvalidAmount = errors.New("ledger entry amount must be positive")
	ErrInvalidKind   = errors.New("ledger entry kind must be income or expense")
)

// Entry represents one materialized income or expense record.
type Entry struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Kind        Kind
	Category    string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// Expense is the projection budget aggregation works over.
type Expense struct {
	Amount decimal.Decimal
	Date   time.Time
}
