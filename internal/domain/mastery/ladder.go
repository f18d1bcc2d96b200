// Package mastery implements the bounded mastery ladder: a pure state
// machine mapping (current level, review outcome) to a new level in
// [0, domain.MaxMasteryLevel]. The ladder deliberately has no wall-clock
// dependency; review eligibility (level below the ceiling) is the sole
// scheduling signal.
package mastery

import (
	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// Params defines the configurable policy of the mastery ladder.
type Params struct {
	// MaxLevel is the ladder ceiling. Known outcomes saturate here.
	MaxLevel int

	// AgainResetLevel is the rung an Again outcome drops the item to.
	// The default policy is a full reset to the bottom rung.
	AgainResetLevel int
}

// NewDefaultParams returns the ladder policy used in production.
func NewDefaultParams() *Params {
	return &Params{
		MaxLevel:        domain.MaxMasteryLevel,
		AgainResetLevel: 0,
	}
}

// Advance computes the item's next mastery level for a review outcome.
//
// Behavior:
//   - Known: one rung up, saturating at MaxLevel
//   - Later: unchanged, the item stays in rotation
//   - Again: reset to AgainResetLevel
//
// Levels outside [0, MaxLevel] are clamped before the transition is applied,
// so a corrupted persisted value can never escape the ladder. Invalid
// outcomes behave like Again, matching the conservative decode default in
// the domain package.
func (p *Params) Advance(level int, outcome domain.Outcome) int {
	level = p.clamp(level)

	switch outcome {
	case domain.OutcomeKnown:
		if level >= p.MaxLevel {
			return p.MaxLevel
		}
		return level + 1
	case domain.OutcomeLater:
		return level
	default:
		return p.clamp(p.AgainResetLevel)
	}
}

func (p *Params) clamp(level int) int {
	if level < 0 {
		return 0
	}
	if level > p.MaxLevel {
		return p.MaxLevel
	}
	return level
}

// Advance applies the default ladder policy. See Params.Advance.
func Advance(level int, outcome domain.Outcome) int {
	return defaultParams.Advance(level, outcome)
}

var defaultParams = NewDefaultParams()
