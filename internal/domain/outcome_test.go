package domain

import (
	"errors"
	"testing"
)

func TestDecodeOutcome(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		code     int
		expected Outcome
		ok       bool
	}{
		{name: "again", code: 0, expected: OutcomeAgain, ok: true},
		{name: "later", code: 1, expected: OutcomeLater, ok: true},
		{name: "known", code: 2, expected: OutcomeKnown, ok: true},
		{name: "out of range high defaults to again", code: 99, expected: OutcomeAgain, ok: false},
		{name: "negative defaults to again", code: -1, expected: OutcomeAgain, ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			outcome, ok := DecodeOutcome(tc.code)
			if outcome != tc.expected || ok != tc.ok {
				t.Errorf("DecodeOutcome(%d) = (%q, %v), want (%q, %v)",
					tc.code, outcome, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestOutcomeCodeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, o := range []Outcome{OutcomeAgain, OutcomeLater, OutcomeKnown} {
		decoded, ok := DecodeOutcome(o.Code())
		if !ok || decoded != o {
			t.Errorf("round trip of %q failed: got (%q, %v)", o, decoded, ok)
		}
	}
}

func TestParseOutcome(t *testing.T) {
	t.Parallel()

	if _, err := ParseOutcome("known"); err != nil {
		t.Errorf("unexpected error for valid outcome: %v", err)
	}

	_, err := ParseOutcome("easy")
	if !errors.Is(err, ErrInvalidOutcome) {
		t.Errorf("expected ErrInvalidOutcome, got %v", err)
	}
}
