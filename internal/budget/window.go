package budget

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/dateutil"
	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/ledger"
)

// ComputeWindow returns the budget period window containing today, anchored
// on startDate. The invariant Start <= today < End holds for any
// startDate <= today; a start date in the future is ErrInvalidAnchor.
//
// Weekly windows roll in exact 7-day steps from the anchor. Monthly and
// yearly windows are anchored on the start date's day-of-month (and month),
// clamped to short months, so a Jan 31 anchor yields Feb 28 / Mar 31 / ...
// boundaries without drifting.
func ComputeWindow(period Period, startDate, today time.Time) (Window, error) {
	start := dateutil.Truncate(startDate)
	today = dateutil.Truncate(today)

	if start.After(today) {
		return Window{}, ErrInvalidAnchor
	}

	switch period {
	case PeriodWeekly:
		weeks := dateutil.DaysBetween(start, today) / 7
		ws := start.AddDate(0, 0, weeks*7)

		return Window{Start: ws, End: ws.AddDate(0, 0, 7)}, nil

	case PeriodMonthly:
		ws := dateutil.ClampedDate(today.Year(), today.Month(), start.Day())
		if ws.After(today) {
			ws = dateutil.ClampedDate(today.Year(), today.Month()-1, start.Day())
		}

		we := dateutil.ClampedDate(ws.Year(), ws.Month()+1, start.Day())

		return Window{Start: ws, End: we}, nil

	case PeriodYearly:
		ws := dateutil.ClampedDate(today.Year(), start.Month(), start.Day())
		if ws.After(today) {
			ws = dateutil.ClampedDate(today.Year()-1, start.Month(), start.Day())
		}

		we := dateutil.ClampedDate(ws.Year()+1, start.Month(), start.Day())

		return Window{Start: ws, End: we}, nil
	}

	return Window{}, fmt.Errorf("unknown period %q", period)
}

// ComputeStats aggregates the given expenses against the limit. Callers are
// responsible for having filtered the expenses to the budget's owner,
// category and current window; this function only sums. Zero matching
// records is not an error: spent and percent used are simply zero.
func ComputeStats(limit decimal.Decimal, expenses []ledger.Expense) Stats {
	spent := decimal.Zero

	for _, ex := range expenses {
		spent = spent.Add(ex.Amount)
	}

	var percent float64

	if limit.IsPositive() {
		percent, _ = spent.Div(limit).Mul(decimal.NewFromInt(100)).Float64()
	}

	return Stats{
		Spent:       spent,
		Remaining:   limit.Sub(spent),
		PercentUsed: percent,
		Threshold:   ClassifyThreshold(percent),
	}
}

// ClassifyThreshold buckets the percent-used figure: below 90 is ok, 90 up to
// (but not including) 100 is warning, 100 and above is exceeded.
func ClassifyThreshold(percentUsed float64) Threshold {
	switch {
	case percentUsed >= 100:
		return ThresholdExceeded
	case percentUsed >= 90:
		return ThresholdWarning
	default:
		return ThresholdOK
	}
}
