// Package randutil derives reproducible math/rand/v2 generators from a
// single int64 seed, so seeded deck shuffles (and tests wanting a fixed
// random source) derive their generators the same way.
package randutil

import "math/rand/v2"

// New returns a *rand.Rand deterministically derived from seed. The two
// 64-bit PCG seed words are produced by running the input through a
// splitmix-style finalizer, once plain and once offset by the golden
// ratio, so nearby seeds still yield unrelated streams.
func New(seed int64) *rand.Rand {
	lo := finalize(uint64(seed))
	hi := finalize(uint64(seed) + 0x9e3779b97f4a7c15)
	return rand.New(rand.NewPCG(lo, hi))
}

func finalize(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
