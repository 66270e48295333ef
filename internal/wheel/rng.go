package wheel

import "math/rand/v2"

// RNG is the randomness source for initial velocities.
type RNG interface {
	Float64() float64
}

// NewRNG returns a seeded PCG generator so a spin can be replayed.
func NewRNG(seed int64) RNG {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}
