// Package rng builds the explicit random streams handed to sources.
//
// Streams are *math/rand/v2.Rand values backed by a Mersenne Twister from
// gonum. A *rand.Rand is not safe for concurrent use; derive one stream per
// purpose instead of sharing.
package rng

import (
	"hash/fnv"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mathext/prng"
)

// New returns a deterministic stream for seed
func New(seed uint64) *rand.Rand {
	src := prng.NewMT19937()
	src.Seed(seed)
	return rand.New(src)
}

// Derive returns an independent stream for a named purpose under a parent
// seed. The same (seed, stream) pair always yields the same sequence.
func Derive(seed uint64, stream string) *rand.Rand {
	return New(mix(seed, nameHash(stream)))
}

// SeedFromClock returns a non-zero seed from the wall clock, for runs where
// the caller did not ask for reproducibility.
func SeedFromClock() uint64 {
	s := uint64(time.Now().UnixNano())
	if s == 0 {
		s = 1
	}
	return s
}

// Resolve maps the "no seed" value 0 to a clock seed and leaves any other seed as is
func Resolve(seed uint64) uint64 {
	if seed == 0 {
		return SeedFromClock()
	}
	return seed
}

func nameHash(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

// mix is a SplitMix64 finalizer over the parent seed and stream id
func mix(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
