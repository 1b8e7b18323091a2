package game

import "math/rand"

// Rand is the randomness source injected into the military resolver and the
// AI policy engine. The engine never seeds or persists it; callers that need
// reproducible runs supply a deterministic implementation.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// NewRand returns a Rand backed by math/rand with the given seed.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// battleFactor maps a Rand draw onto the combat variance band [0.9, 1.1).
func battleFactor(rng Rand) float64 {
	return 0.9 + rng.Float64()*0.2
}
