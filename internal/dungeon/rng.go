package dungeon

import (
	"math/rand"
	"time"
)

// RNG is the randomness the engine consumes. *rand.Rand satisfies it;
// tests substitute deterministic stubs.
type RNG interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewRNG returns a seeded generator. Seed 0 picks one from the clock.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
