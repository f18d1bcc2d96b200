// Package clock provides the wall-clock collaborator port and the trusted
// clock guard, which turns untrusted wall-clock readings into a monotonic
// "effective now" that survives device clock rollback.
package clock

import "time"

// WallClock is the untrusted time collaborator. Readings come from the
// device wall clock and may jump backward; nothing in the core trusts them
// directly.
type WallClock interface {
	// NowMillis returns the current wall-clock time in Unix milliseconds.
	NowMillis() int64
}

// SystemClock implements WallClock on the operating system clock.
type SystemClock struct{}

// NowMillis implements WallClock.NowMillis.
func (SystemClock) NowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}

// CalendarDay converts a trusted-time reading in Unix milliseconds to the
// "2006-01-02" UTC calendar day used by the streak law and the daily quota.
func CalendarDay(millis int64) string {
	return time.UnixMilli(millis).UTC().Format("2006-01-02")
}
