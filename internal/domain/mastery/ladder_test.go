package mastery

import (
	"testing"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

func TestAdvance(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		level    int
		outcome  domain.Outcome
		expected int
	}{
		{
			name:     "Known climbs one rung",
			level:    2,
			outcome:  domain.OutcomeKnown,
			expected: 3,
		},
		{
			name:     "Known saturates at the ceiling",
			level:    domain.MaxMasteryLevel,
			outcome:  domain.OutcomeKnown,
			expected: domain.MaxMasteryLevel,
		},
		{
			name:     "Known one below the ceiling reaches it",
			level:    domain.MaxMasteryLevel - 1,
			outcome:  domain.OutcomeKnown,
			expected: domain.MaxMasteryLevel,
		},
		{
			name:     "Later holds the current rung",
			level:    3,
			outcome:  domain.OutcomeLater,
			expected: 3,
		},
		{
			name:     "Later holds at zero",
			level:    0,
			outcome:  domain.OutcomeLater,
			expected: 0,
		},
		{
			name:     "Again resets to the bottom rung",
			level:    4,
			outcome:  domain.OutcomeAgain,
			expected: 0,
		},
		{
			name:     "Again at zero stays at zero",
			level:    0,
			outcome:  domain.OutcomeAgain,
			expected: 0,
		},
		{
			name:     "corrupted level above ceiling is clamped before Known",
			level:    42,
			outcome:  domain.OutcomeKnown,
			expected: domain.MaxMasteryLevel,
		},
		{
			name:     "corrupted negative level is clamped before Known",
			level:    -3,
			outcome:  domain.OutcomeKnown,
			expected: 1,
		},
		{
			name:     "invalid outcome behaves like Again",
			level:    4,
			outcome:  domain.Outcome("bogus"),
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := params.Advance(tc.level, tc.outcome)
			if got != tc.expected {
				t.Errorf("Advance(%d, %q) = %d, want %d", tc.level, tc.outcome, got, tc.expected)
			}
		})
	}
}

// Repeating Known past the ceiling must be idempotent: the level saturates
// and never leaves MaxLevel.
func TestAdvanceKnownSaturation(t *testing.T) {
	t.Parallel()

	level := 0
	for i := 0; i < domain.MaxMasteryLevel+7; i++ {
		level = Advance(level, domain.OutcomeKnown)
		if level < 0 || level > domain.MaxMasteryLevel {
			t.Fatalf("level escaped the ladder after %d reviews: %d", i+1, level)
		}
	}
	if level != domain.MaxMasteryLevel {
		t.Errorf("expected saturation at %d, got %d", domain.MaxMasteryLevel, level)
	}
}
