package state

import (
	"math/rand/v2"
	"time"
)

// Source supplies the game's random draws. *rand.Rand from math/rand/v2
// satisfies it; tests substitute scripted sequences.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// NewSource returns a PCG-backed source. A negative seed seeds from the clock.
func NewSource(seed int64) Source {
	if seed < 0 {
		now := uint64(time.Now().UnixNano())
		return rand.New(rand.NewPCG(now, now>>1))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}
