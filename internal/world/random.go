package world

import (
	"hash/fnv"
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"
)

// RNGFactory hands out a random source for one population pass.
type RNGFactory func() *rand.Rand

// TimeSeededRNG returns a fresh source seeded from the wall clock, so every
// population rolls a new layout.
func TimeSeededRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func DeterministicSeedValue(rootSeed, label string) int64 {
	hasher := fnv.New64a()
	hasher.Write([]byte(rootSeed))
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

func NewDeterministicRNG(rootSeed, label string) *rand.Rand {
	return rand.New(rand.NewSource(DeterministicSeedValue(rootSeed, label)))
}

// DeterministicFactory yields a reproducible source per call, labelled by
// call count so consecutive populations still differ. The factory may be
// shared between sessions running on different goroutines.
func DeterministicFactory(rootSeed string) RNGFactory {
	var calls atomic.Int64
	return func() *rand.Rand {
		n := calls.Add(1)
		return NewDeterministicRNG(rootSeed, "population-"+strconv.FormatInt(n, 10))
	}
}

// Between draws uniformly from [min, max).
func Between(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}
