// Package random picks rule outputs. Engines take a Source so that tests can
// pin the choice.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source returns integers in the closed range [min, max].
type Source interface {
	Int(min, max int) int
}

// Rand is a Source safe for concurrent use.
type Rand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Rand with a fixed seed; the same seed yields the same
// sequence.
func New(seed uint64) *Rand {
	return &Rand{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSeeded returns a Rand seeded from the clock.
func NewTimeSeeded() *Rand {
	return New(uint64(time.Now().UnixNano()))
}

// Int returns a uniform integer in [min, max]. If max < min, min is returned.
func (r *Rand) Int(min, max int) int {
	if max <= min {
		return min
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.rng.IntN(max-min+1)
}

// Fixed always returns the same offset from min, clamped to the range.
type Fixed int

func (f Fixed) Int(min, max int) int {
	v := min + int(f)
	if v > max {
		return max
	}
	if v < min {
		return min
	}
	return v
}
