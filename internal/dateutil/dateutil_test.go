package dateutil_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/dateutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{name: "PlainStep", in: date(2025, time.March, 15), n: 1, want: date(2025, time.April, 15)},
		{name: "MonthEndClamped", in: date(2025, time.January, 31), n: 1, want: date(2025, time.February, 28)},
		{name: "MonthEndClampedLeapYear", in: date(2024, time.January, 31), n: 1, want: date(2024, time.February, 29)},
		{name: "QuarterKeepsDay", in: date(2025, time.January, 31), n: 3, want: date(2025, time.April, 30)},
		{name: "YearRollover", in: date(2025, time.November, 30), n: 2, want: date(2026, time.January, 30)},
		{name: "NegativeStep", in: date(2025, time.March, 31), n: -1, want: date(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dateutil.AddMonths(tt.in, tt.n))
		})
	}
}

func TestAddYears(t *testing.T) {
	assert.Equal(t, date(2025, time.February, 28), dateutil.AddYears(date(2024, time.February, 29), 1))
	assert.Equal(t, date(2028, time.February, 29), dateutil.AddYears(date(2024, time.February, 29), 4))
	assert.Equal(t, date(2026, time.July, 4), dateutil.AddYears(date(2025, time.July, 4), 1))
}

func TestClampedDate(t *testing.T) {
	assert.Equal(t, date(2025, time.February, 28), dateutil.ClampedDate(2025, time.February, 31))
	assert.Equal(t, date(2024, time.February, 29), dateutil.ClampedDate(2024, time.February, 31))
	assert.Equal(t, date(2026, time.January, 31), dateutil.ClampedDate(2025, time.Month(13), 31))
	assert.Equal(t, date(2024, time.December, 15), dateutil.ClampedDate(2025, time.Month(0), 15))
}

func TestDaysUntil(t *testing.T) {
	today := date(2025, time.June, 10)

	assert.Equal(t, 0, dateutil.DaysUntil(today, today))
	assert.Equal(t, 1, dateutil.DaysUntil(date(2025, time.June, 11), today))
	assert.Equal(t, -3, dateutil.DaysUntil(date(2025, time.June, 7), today))
	assert.Equal(t, 30, dateutil.DaysUntil(date(2025, time.July, 10), today))
}

func TestDaysUntilIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2025, time.June, 10, 23, 50, 0, 0, time.UTC)
	target := time.Date(2025, time.June, 11, 0, 5, 0, 0, time.UTC)

	assert.Equal(t, 1, dateutil.DaysUntil(target, today))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 7, dateutil.DaysBetween(date(2025, time.June, 1), date(2025, time.June, 8)))
	assert.Equal(t, 0, dateutil.DaysBetween(date(2025, time.June, 1), date(2025, time.June, 1)))
}

func TestTruncate(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2025, time.June, 10, 18, 30, 12, 0, loc)

	assert.Equal(t, date(2025, time.June, 10), dateutil.Truncate(in))
}
