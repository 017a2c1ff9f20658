// Package rng provides the seeded random stream used by map generation.
//
// Each generation run owns one Source. Sources are not safe for concurrent
// use; give every goroutine its own.
package rng

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// pcgStream is the fixed PCG increment selector. Changing it changes every map.
const pcgStream = 0x6273706d617a65 // "bspmaze"

// Source is a deterministic stream of float64 values in [0,1).
type Source struct {
	r     *rand.Rand
	draws int
}

// New creates a Source for the given seed.
func New(seed int64) *Source {
	return &Source{r: rand.New(rand.NewPCG(uint64(seed), pcgStream))}
}

// SeedFromString turns a user supplied seed into an int64. Decimal integers
// are used verbatim; anything else is hashed.
func SeedFromString(s string) int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return int64(xxhash.Sum64String(s))
}

// Float64 returns the next value in [0,1).
func (s *Source) Float64() float64 {
	s.draws++
	return s.r.Float64()
}

// IntN returns floor(Float64()*n), consuming exactly one draw even when
// n <= 0, in which case it returns 0.
func (s *Source) IntN(n int) int {
	f := s.Float64()
	if n <= 0 {
		return 0
	}
	v := int(f * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Range returns an integer uniformly in [lo, hi], consuming one draw.
func (s *Source) Range(lo, hi int) int {
	return lo + s.IntN(hi-lo+1)
}

// Draws reports how many values have been consumed.
func (s *Source) Draws() int {
	return s.draws
}
