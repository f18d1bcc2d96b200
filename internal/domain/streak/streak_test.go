package streak

import "testing"

func TestEvaluate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		lastDate string
		today    string
		expected Delta
	}{
		{
			name:     "same day leaves the streak alone",
			lastDate: "2026-02-09",
			today:    "2026-02-09",
			expected: None,
		},
		{
			name:     "next day increments",
			lastDate: "2026-02-09",
			today:    "2026-02-10",
			expected: Increment,
		},
		{
			name:     "three-day gap resets",
			lastDate: "2026-02-07",
			today:    "2026-02-10",
			expected: Reset,
		},
		{
			name:     "two-day gap resets",
			lastDate: "2026-02-08",
			today:    "2026-02-10",
			expected: Reset,
		},
		{
			name:     "first-ever study day resets to one",
			lastDate: "",
			today:    "2026-02-10",
			expected: Reset,
		},
		{
			name:     "unparsable last date resets, never errors",
			lastDate: "not-a-date",
			today:    "2026-02-10",
			expected: Reset,
		},
		{
			name:     "unparsable today resets, never errors",
			lastDate: "2026-02-09",
			today:    "garbage",
			expected: Reset,
		},
		{
			name:     "increment across a month boundary",
			lastDate: "2026-01-31",
			today:    "2026-02-01",
			expected: Increment,
		},
		{
			name:     "increment across a year boundary",
			lastDate: "2025-12-31",
			today:    "2026-01-01",
			expected: Increment,
		},
		{
			name:     "last date after today behaves as same day",
			lastDate: "2026-02-11",
			today:    "2026-02-10",
			expected: None,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.lastDate, tc.today)
			if got != tc.expected {
				t.Errorf("Evaluate(%q, %q) = %s, want %s", tc.lastDate, tc.today, got, tc.expected)
			}
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		current  int
		delta    Delta
		expected int
	}{
		{name: "none holds", current: 4, delta: None, expected: 4},
		{name: "increment adds one", current: 4, delta: Increment, expected: 5},
		{name: "reset drops to one", current: 17, delta: Reset, expected: 1},
		{name: "reset from zero starts at one", current: 0, delta: Reset, expected: 1},
		{name: "increment from zero", current: 0, delta: Increment, expected: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(tc.current, tc.delta)
			if got != tc.expected {
				t.Errorf("Apply(%d, %s) = %d, want %d", tc.current, tc.delta, got, tc.expected)
			}
		})
	}
}
