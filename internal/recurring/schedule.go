package recurring

import (
	"sort"
	"time"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/dateutil"
)

// NextOccurrence advances anchor by exactly one frequency step. It is the
// single source of truth for schedule advancement: both initializing a
// definition's next occurrence and advancing it after processing go through
// here. Month-based steps keep the day-of-month, clamped to the target
// month's last day (Jan 31 -> Feb 28/29); Feb 29 anchors clamp to Feb 28 in
// non-leap years.
func NextOccurrence(anchor time.Time, freq Frequency) time.Time {
	anchor = dateutil.Truncate(anchor)

	switch freq {
	case FrequencyDaily:
		return anchor.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return anchor.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return anchor.AddDate(0, 0, 14)
	case FrequencyMonthly:
		return dateutil.AddMonths(anchor, 1)
	case FrequencyQuarterly:
		return dateutil.AddMonths(anchor, 3)
	case FrequencyYearly:
		return dateutil.AddYears(anchor, 1)
	}

	// Unknown frequencies are rejected at the service boundary.
	return anchor
}

// Exhausted reports whether the definition has no remaining occurrences: its
// next occurrence falls after its (inclusive) end date.
func Exhausted(def *Definition) bool {
	return def.EndDate != nil && def.NextOccurrence.After(dateutil.Truncate(*def.EndDate))
}

// Classify computes the due status of a definition relative to today. It does
// not consider active/exhausted state; callers filter those out where the
// surface demands it (history views still classify dead definitions).
func Classify(def *Definition, today time.Time) Classification {
	days := dateutil.DaysUntil(def.NextOccurrence, today)

	var status Status

	switch {
	case days < 0:
		status = StatusOverdue
	case days == 0:
		status = StatusDueToday
	case days == 1:
		status = StatusDueTomorrow
	default:
		status = StatusUpcoming
	}

	return Classification{Status: status, DaysUntil: days}
}

// BuildSchedule filters to active, non-exhausted definitions, classifies each
// against today, and returns them ordered by proximity: most overdue first,
// ties broken by category name. The filter then bounds how far ahead the view
// reaches; overdue items are always retained since they demand attention.
func BuildSchedule(defs []*Definition, today time.Time, filter ScheduleFilter) []ScheduleItem {
	items := make([]ScheduleItem, 0, len(defs))

	for _, def := range defs {
		if !def.IsActive || Exhausted(def) {
			continue
		}

		c := Classify(def, today)
		items = append(items, ScheduleItem{
			Definition: def,
			Status:     c.Status,
			DaysUntil:  c.DaysUntil,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DaysUntil != items[j].DaysUntil {
			return items[i].DaysUntil < items[j].DaysUntil
		}

		return items[i].Definition.Category < items[j].Definition.Category
	})

	maxDays := -1

	switch filter {
	case FilterUpcoming, FilterThisWeek:
		maxDays = 7
	case FilterThisMonth:
		maxDays = 30
	case FilterAll:
		return items
	}

	if maxDays < 0 {
		return items
	}

	filtered := items[:0]

	for _, it := range items {
		if it.DaysUntil <= maxDays {
			filtered = append(filtered, it)
		}
	}

	return filtered
}

// Due returns the active, non-exhausted definitions whose next occurrence is
// today or earlier. This is the materialization surface used by the scheduler
// worker, distinct from the schedule view that also shows future items.
func Due(defs []*Definition, today time.Time) []*Definition {
	var due []*Definition

	for _, def := range defs {
		if !def.IsActive || Exhausted(def) {
			continue
		}

		if dateutil.DaysUntil(def.NextOccurrence, today) <= 0 {
			due = append(due, def)
		}
	}

	return due
}
