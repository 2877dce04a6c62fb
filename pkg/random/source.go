package random

import (
	"math/rand"
	"time"

	"github.com/boristopalov/vacuumworld/pkg/core"
)

// Source is a seedable core.Rand backed by math/rand
type Source struct {
	rand *rand.Rand
	seed int64
}

var _ core.Rand = &Source{}

func NewSource(seed int64) *Source {
	return &Source{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// NewTimeSeeded picks a seed from the clock. The seed is kept so the run can be replayed.
func NewTimeSeeded() *Source {
	return NewSource(time.Now().UnixNano())
}

func (s *Source) Seed() int64 {
	return s.seed
}

// IntRange returns a uniform integer in [lo, hi]. hi < lo yields lo.
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rand.Intn(hi-lo+1)
}

func (s *Source) Float64() float64 {
	return s.rand.Float64()
}
