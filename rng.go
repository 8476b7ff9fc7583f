package main

import (
	"math/rand"
	"time"
)

// newRand returns a deterministic source for seed != 0 and a time-based one
// otherwise. math/rand.Rand is not goroutine-safe; every batch gets its own.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a base seed and a worker index into an independent stream
// seed, so concurrent batches stay decorrelated while the overall run remains
// reproducible. SplitMix64 finalizer constants.
func deriveSeed(base int64, stream uint64) int64 {
	x := uint64(base) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}
