package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period represents a budget's rolling window length.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// IsValid checks if the period is one of the known values.
func (p Period) IsValid() bool {
	return p == PeriodWeekly || p == PeriodMonthly || p == PeriodYearly
}

// Threshold classifies how much of the budget has been used.
type Threshold string

const (
	ThresholdOK       Threshold = "ok"
	ThresholdWarning  Threshold = "warning"
	ThresholdExceeded Threshold = "exceeded"
)

var (
	ErrNotFound      = errors.New("budget not found")
	ErrInvalidAnchor = errors.New("budget window requested before its start date")
)

// Budget represents a spending limit for one category over a rolling period.
// The engine only reads budgets; derived statistics are never persisted.
type Budget struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Category    string
	LimitAmount decimal.Decimal
	Period      Period
	StartDate   time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Window is the half-open date range [Start, End) a budget currently covers.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the date falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Stats holds the derived spend figures for the current window.
type Stats struct {
	Spent       decimal.Decimal
	Remaining   decimal.Decimal
	PercentUsed float64
	Threshold   Threshold
}
