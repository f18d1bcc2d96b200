// Package quiz generates multiple-choice option sets for review sessions.
// Distractors are sampled from the corpus itself, preferring items from the
// same level as the correct answer and falling back to the global pool, with
// a fixed sentinel filling in when the corpus is too small to supply three
// distinct wrong answers.
package quiz

import (
	"math/rand"
	"time"

	"github.com/wordtrail/wordtrail-api/internal/domain"
)

// Sentinel is the placeholder option used when the corpus cannot supply
// enough distinct wrong answers. The importer rejects answers made of
// punctuation only, so the sentinel can never collide with a real answer.
const Sentinel = "— — —"

const (
	// optionCount is the size of every generated option set.
	optionCount = 4

	// wrongCount is the number of distractors accompanying the correct answer.
	wrongCount = optionCount - 1

	// sameLevelDraw caps how many same-level candidates are considered
	// before falling back to the global pool.
	sameLevelDraw = 10
)

// GenerateOptions builds a four-option multiple-choice set for the given
// item and reports the index holding the correct answer.
//
// Up to sameLevelDraw candidates are drawn from the shuffled same-level
// pool; the global pool supplements when fewer than three distinct wrong
// answers were found. The correct item itself and any candidate sharing its
// answer text are always excluded. Degenerate corpora are padded with
// Sentinel instead of failing: the function never errors.
//
// rng may be nil, in which case a time-seeded source is used. Injecting a
// seeded source makes option order deterministic in tests.
func GenerateOptions(
	rng *rand.Rand,
	correct domain.Item,
	sameLevelPool []domain.Item,
	globalPool []domain.Item,
) (options []string, correctIndex int) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	seen := map[string]bool{correct.Answer: true}
	wrong := make([]string, 0, wrongCount)

	// Shuffle before truncating so repeated calls vary which same-level
	// candidates are considered.
	drawn := 0
	for _, candidate := range shuffled(rng, sameLevelPool) {
		if drawn >= sameLevelDraw || len(wrong) >= wrongCount {
			break
		}
		// Excluded candidates do not consume draw budget; only duplicates
		// among the drawn distractors do.
		if candidate.ID == correct.ID || candidate.Answer == correct.Answer {
			continue
		}
		drawn++
		if seen[candidate.Answer] {
			continue
		}
		seen[candidate.Answer] = true
		wrong = append(wrong, candidate.Answer)
	}

	// Supplement from the global pool under the same exclusion rule.
	if len(wrong) < wrongCount {
		for _, candidate := range shuffled(rng, globalPool) {
			if len(wrong) >= wrongCount {
				break
			}
			if candidate.ID == correct.ID || seen[candidate.Answer] {
				continue
			}
			seen[candidate.Answer] = true
			wrong = append(wrong, candidate.Answer)
		}
	}

	// Degenerate corpus: pad with the sentinel rather than erroring.
	for len(wrong) < wrongCount {
		wrong = append(wrong, Sentinel)
	}

	options = append(wrong, correct.Answer)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	for i, opt := range options {
		if opt == correct.Answer {
			correctIndex = i
			break
		}
	}

	return options, correctIndex
}

// shuffled returns a shuffled copy, leaving the caller's pool untouched.
func shuffled(rng *rand.Rand, pool []domain.Item) []domain.Item {
	out := make([]domain.Item, len(pool))
	copy(out, pool)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
