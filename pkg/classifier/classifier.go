// Package classifier implements the naughty-or-nice verdict logic.
// Verdicts are chosen by an unbiased coin flip, independently per call.
package classifier

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// Verdict is the outcome of a classification. Exactly one of the two
// values is produced per call.
type Verdict string

const (
	// VerdictNaughty marks the subject as naughty.
	VerdictNaughty Verdict = "naughty"

	// VerdictNice marks the subject as nice.
	VerdictNice Verdict = "nice"
)

// String implements fmt.Stringer.
func (v Verdict) String() string {
	return string(v)
}

// Classifier produces verdicts. The zero value is not usable; construct
// one with New or NewSeeded.
type Classifier struct {
	flip func() bool
}

// New returns a classifier backed by the shared math/rand/v2 source,
// which is safe for concurrent use.
func New() *Classifier {
	return &Classifier{
		flip: func() bool { return rand.IntN(2) == 1 },
	}
}

// NewSeeded returns a classifier with a deterministic sequence of
// verdicts. Intended for tests; the seeded source is serialized by a
// mutex so it stays safe under concurrent calls.
func NewSeeded(seed uint64) *Classifier {
	var mu sync.Mutex
	src := rand.New(rand.NewPCG(seed, seed))
	return &Classifier{
		flip: func() bool {
			mu.Lock()
			defer mu.Unlock()
			return src.IntN(2) == 1
		},
	}
}

// Classify returns a verdict for the given subject. The subject name
// does not influence the outcome; every call is an independent
// unbiased coin flip.
func (c *Classifier) Classify(name string) Verdict {
	if c.flip() {
		return VerdictNaughty
	}
	return VerdictNice
}

// Sentence renders the human-readable response for a verdict.
func Sentence(name string, v Verdict) string {
	return fmt.Sprintf("%s, you have been very %s this year!", name, v)
}
