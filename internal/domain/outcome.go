package domain

import "fmt"

// Outcome represents the learner's judgement on a single review.
type Outcome string

// Possible review outcome values.
const (
	// OutcomeAgain means the item was not recalled; its mastery resets.
	OutcomeAgain Outcome = "again"

	// OutcomeLater means the learner deferred judgement; mastery holds.
	OutcomeLater Outcome = "later"

	// OutcomeKnown means the item was recalled; mastery climbs one rung.
	OutcomeKnown Outcome = "known"
)

// Integer codes used when persisting an Outcome. The codes are part of the
// storage contract and must never be renumbered.
const (
	outcomeCodeAgain = 0
	outcomeCodeLater = 1
	outcomeCodeKnown = 2
)

var outcomeByCode = map[int]Outcome{
	outcomeCodeAgain: OutcomeAgain,
	outcomeCodeLater: OutcomeLater,
	outcomeCodeKnown: OutcomeKnown,
}

var codeByOutcome = map[Outcome]int{
	OutcomeAgain: outcomeCodeAgain,
	OutcomeLater: outcomeCodeLater,
	OutcomeKnown: outcomeCodeKnown,
}

// IsValid reports whether o is one of the three recognized outcomes.
func (o Outcome) IsValid() bool {
	_, ok := codeByOutcome[o]
	return ok
}

// Code returns the persisted integer code for the outcome.
// Invalid outcomes encode as the Again code, the most conservative choice;
// callers are expected to validate before encoding.
func (o Outcome) Code() int {
	code, ok := codeByOutcome[o]
	if !ok {
		return outcomeCodeAgain
	}
	return code
}

// DecodeOutcome maps a persisted integer code back to an Outcome.
// Out-of-range codes decode deterministically to OutcomeAgain, the
// conservative transition since it only ever under-reports mastery. In that
// case ok is false so callers can log the anomaly rather than silently
// swallow it.
func DecodeOutcome(code int) (outcome Outcome, ok bool) {
	outcome, ok = outcomeByCode[code]
	if !ok {
		return OutcomeAgain, false
	}
	return outcome, true
}

// ParseOutcome converts a wire-format string into an Outcome.
// Returns ErrInvalidOutcome for anything but the three variants.
func ParseOutcome(s string) (Outcome, error) {
	o := Outcome(s)
	if !o.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
	}
	return o, nil
}
