package world

import (
	"math/rand/v2"
	"time"

	"github.com/cespare/xxhash/v2"
)

// SeedFrom derives a generator seed from a config string. An empty string
// seeds from the clock.
func SeedFrom(s string) uint64 {
	if s == "" {
		return uint64(time.Now().UnixNano())
	}
	return xxhash.Sum64String(s)
}

// NewRand returns a PCG generator for the seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// between returns a uniform value in [lo, hi]
func between(r *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// intBetween returns a uniform integer in [lo, hi]
func intBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}
