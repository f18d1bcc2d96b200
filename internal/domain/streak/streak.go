// Package streak implements the study-streak law: a pure mapping from
// (last study date, today) to a streak delta, and the application of that
// delta to the current streak count. Dates are trusted-time calendar days
// in "2006-01-02" form; the package never touches the wall clock itself.
package streak

import "time"

// DateLayout is the calendar-day format used for streak bookkeeping.
const DateLayout = "2006-01-02"

// Delta is the effect a study event has on the streak.
type Delta int

const (
	// None leaves the streak unchanged: another session on the same day.
	None Delta = iota

	// Increment extends the streak: the first session on the day after
	// the last study date.
	Increment

	// Reset starts the streak over at one: a gap of two or more days,
	// a first-ever study day, or an unreadable last study date.
	Reset
)

// String returns the delta name for logging.
func (d Delta) String() string {
	switch d {
	case None:
		return "none"
	case Increment:
		return "increment"
	case Reset:
		return "reset"
	default:
		return "unknown"
	}
}

// Evaluate computes the streak delta for a study event on the calendar day
// today, given the day of the most recent prior study event.
//
// lastDate comes from the latest study record's date, not a fixed
// "yesterday" constant, so repeated sessions on one day never falsely
// increment. An empty lastDate means the learner has never studied; a
// malformed lastDate or today is treated as a reset signal, never as an
// error.
func Evaluate(lastDate, today string) Delta {
	if lastDate == "" {
		return Reset
	}

	last, err := time.Parse(DateLayout, lastDate)
	if err != nil {
		return Reset
	}

	now, err := time.Parse(DateLayout, today)
	if err != nil {
		return Reset
	}

	switch days := dayDiff(last, now); {
	case days <= 0:
		// Same day. Negative differences cannot occur under trusted
		// time; treat them as same-day rather than punishing the streak.
		return None
	case days == 1:
		return Increment
	default:
		return Reset
	}
}

// Apply returns the new streak count after applying the delta.
func Apply(current int, d Delta) int {
	switch d {
	case Increment:
		return current + 1
	case Reset:
		return 1
	default:
		return current
	}
}

// dayDiff returns the whole calendar days from a to b. Both are date-only
// values parsed in UTC, so the division is exact.
func dayDiff(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
