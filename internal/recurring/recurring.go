package recurring

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger"
)

// Frequency represents how often a recurring transaction occurs.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// IsValid checks if the frequency is one of the known values.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly,
		FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}

	return false
}

// Status classifies how close a definition's next occurrence is to today.
type Status string

const (
	StatusOverdue     Status = "overdue"
	StatusDueToday    Status = "due_today"
	StatusDueTomorrow Status = "due_tomorrow"
	StatusUpcoming    Status = "upcoming"
)

// ScheduleFilter selects which window of the schedule to return.
type ScheduleFilter string

const (
	FilterUpcoming  ScheduleFilter = "upcoming"
	FilterThisWeek  ScheduleFilter = "this_week"
	FilterThisMonth ScheduleFilter = "this_month"
	FilterAll       ScheduleFilter = "all"
)

var (
	ErrNotFound  = errors.New("recurring definition not found")
	ErrExhausted = errors.New("recurring definition has no remaining occurrences")
	ErrInactive  = errors.New("recurring definition is inactive")
	ErrConflict  = errors.New("recurring definition was concurrently modified")
)

// Definition represents one recurring income or expense schedule.
// NextOccurrence is always reachable from StartDate by whole frequency steps
// and never precedes it.
type Definition struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	Kind             ledger.Kind
	Category         string
	Amount           decimal.Decimal
	Description      string
	Frequency        Frequency
	StartDate        time.Time
	NextOccurrence   time.Time
	EndDate          *time.Time // inclusive; nil means open-ended
	IsActive         bool
	NotifyEnabled    bool
	NotifyDaysBefore int
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// Classification pairs a due status with the whole-day distance to the next
// occurrence (negative = overdue, 0 = due today).
type Classification struct {
	Status    Status
	DaysUntil int
}

// ScheduleItem is one row of the proximity-ordered schedule view.
type ScheduleItem struct {
	Definition *Definition
	Status     Status
	DaysUntil  int
}
