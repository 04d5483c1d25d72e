// Package dateutil provides the calendar arithmetic shared by the recurring
// schedule and budget window computations. All functions operate on dates only;
// time-of-day and location are discarded up front so the same inputs always
// produce the same answers.
package dateutil

import (
	"time"
)

// Truncate drops the time-of-day component, returning midnight UTC of the
// same calendar date.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClampedDate builds a date from year/month/day, clamping the day to the last
// valid day of the month (Feb 31 -> Feb 28/29). Month may be outside 1..12;
// it is normalized into the year first, so (2025, 13, 31) is Jan 31 2026.
func ClampedDate(year int, month time.Month, day int) time.Time {
	year, month = normalizeMonth(year, month)

	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// AddMonths advances t by n calendar months, keeping the day-of-month and
// clamping to the target month's last day when the source day does not exist
// there (Jan 31 + 1 month = Feb 28/29). This deliberately differs from
// time.AddDate, which overflows Jan 31 + 1 month into March.
func AddMonths(t time.Time, n int) time.Time {
	return ClampedDate(t.Year(), t.Month()+time.Month(n), t.Day())
}

// AddYears advances t by n years, clamping Feb 29 to Feb 28 in non-leap years.
func AddYears(t time.Time, n int) time.Time {
	return ClampedDate(t.Year()+n, t.Month(), t.Day())
}

// DaysUntil returns the whole-day distance from today to target. Both sides
// are truncated first so a lingering time-of-day component never shifts the
// result. Negative means target is in the past.
func DaysUntil(target, today time.Time) int {
	d := Truncate(target).Sub(Truncate(today))
	return int(d.Hours() / 24)
}

// DaysBetween returns the number of whole days elapsed from start to end
// (floor). It is the inverse perspective of DaysUntil.
func DaysBetween(start, end time.Time) int {
	return DaysUntil(end, start)
}

func normalizeMonth(year int, month time.Month) (int, time.Month) {
	// time.Date normalizes out-of-range months for us; day 1 is always valid.
	norm := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return norm.Year(), norm.Month()
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
