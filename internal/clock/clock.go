// Package clock abstracts "today" so every date computation in a logical
// operation is pinned to a single instant instead of re-reading system time,
// which avoids boundary flicker around midnight.
package clock

import (
	"time"

	"github.com/davidtadediji/money-tracker-mobile-sub002/internal/dateutil"
)

// Clock supplies the current calendar date.
type Clock interface {
	Today() time.Time
}

type systemClock struct{}

func (systemClock) Today() time.Time {
	return dateutil.Truncate(time.Now().UTC())
}

// System returns a Clock backed by the system time, truncated to a date.
func System() Clock {
	return systemClock{}
}

// Fixed returns a Clock that always reports the given date.
func Fixed(t time.Time) Clock {
	return fixedClock{today: dateutil.Truncate(t)}
}

type fixedClock struct {
	today time.Time
}

func (c fixedClock) Today() time.Time {
	return c.today
}
