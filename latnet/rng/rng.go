// Package rng provides the deterministic seeded randomness used by the
// Random search strategy and by NetConstruction's random samplers. A
// caller-supplied int64 seed is expanded through blake2b before seeding
// math/rand, so that seeds differing by one bit don't produce correlated
// early draws.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"time"

	"golang.org/x/crypto/blake2b"
)

func init() {
	var seed int64
	if err := binary.Read(rand.Reader, binary.LittleEndian, &seed); err != nil {
		seed = time.Now().UnixNano()
	}
	mrand.Seed(seed)
}

// RNG wraps a deterministic math/rand.Rand.
type RNG struct {
	r *mrand.Rand
}

// New returns an RNG seeded from the ambient, auto-seeded global source.
// Use this for sampling that doesn't need to be reproducible across runs.
func New() *RNG {
	return &RNG{r: mrand.New(mrand.NewSource(mrand.Int63()))}
}

// FromSeed returns an RNG deterministically derived from seed: the same
// seed always produces the same draw sequence, which is what the Random
// search strategy's `-seed` flag and scenario S4 require.
func FromSeed(seed int64) *RNG {
	return &RNG{r: mrand.New(mrand.NewSource(expandSeed(seed)))}
}

// expandSeed runs seed through blake2b-512 and folds the digest into a
// single int64 source value, so nearby seeds don't produce nearby initial
// states in math/rand's linear generator.
func expandSeed(seed int64) int64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(seed))
	digest := blake2b.Sum512(buf[:])
	return int64(binary.LittleEndian.Uint64(digest[:8]))
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int { return r.r.Intn(n) }

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Bool returns a random bit.
func (r *RNG) Bool() bool { return r.r.Intn(2) == 1 }

// Bits fills a []bool of length n with independent uniform random bits.
func (r *RNG) Bits(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = r.Bool()
	}
	return out
}

// Int63 returns a random non-negative int64.
func (r *RNG) Int63() int64 { return r.r.Int63() }
