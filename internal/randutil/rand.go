// Package randutil builds reproducible random streams. Every source of
// randomness in a match descends from one seed so a run can be replayed.
package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	rand "math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a PCG-backed *rand.Rand seeded from seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive draws a child stream from parent. Successive calls on the same
// parent give independent children, so deriving in a fixed order before
// fanning out keeps concurrent work deterministic.
func Derive(parent *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(mix(parent.Uint64()), mix(parent.Uint64()^goldenRatio64)))
}

// Seed returns a fresh non-deterministic seed for runs that were not given one.
func Seed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return int64(rand.Uint64())
	}
	return int64(binary.LittleEndian.Uint64(b[:]) >> 1)
}

// mix is the splitmix64 finaliser.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
