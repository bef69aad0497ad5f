package integrator

import "math/rand"

// Sampler supplies uniform random numbers in [0, 1).
// Swap it for a fixed sequence in tests.
type Sampler interface {
	Get1D() float64
	Get2D() (float64, float64)
}

// RandomSampler wraps a Go random generator.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator.
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own source seeded by seed.
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D draws u1 then u2.
func (r *RandomSampler) Get2D() (float64, float64) {
	u1 := r.random.Float64()
	u2 := r.random.Float64()
	return u1, u2
}
