package redlight

import (
	"math/rand"
	"time"
)

// RandomRange draws phase durations. Implementations return a value in
// [lo, hi), or lo when the range is degenerate.
type RandomRange interface {
	Between(lo, hi time.Duration) time.Duration
}

// seededRange draws whole milliseconds uniformly from a seeded source.
type seededRange struct {
	rng *rand.Rand
}

// NewRandomRange returns a RandomRange backed by a math/rand source.
// Equal seeds produce equal sequences.
func NewRandomRange(seed int64) RandomRange {
	return &seededRange{rng: rand.New(rand.NewSource(seed))}
}

func (r *seededRange) Between(lo, hi time.Duration) time.Duration {
	span := int64((hi - lo) / time.Millisecond)
	if span <= 0 {
		return lo
	}
	return lo + time.Duration(r.rng.Int63n(span))*time.Millisecond
}
