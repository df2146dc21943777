// Package randutil builds the random sources used for actor shuffles and
// pool draws.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed, so a fixed
// RANDOM_SEED replays the same shuffles and draws.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// FromSeed returns New(seed), or a clock-seeded source when seed is 0.
func FromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		return New(time.Now().UnixNano())
	}
	return New(seed)
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
