package randomizer

import (
	"math/rand"
)

// GaussianNoise provides multiplicative gaussian noise for sample curves
type GaussianNoise struct {
	rng    *rand.Rand
	stdDev float64
}

// NewGaussianNoise creates a new gaussian noise generator
func NewGaussianNoise(seed int64, stdDev float64) *GaussianNoise {
	return &GaussianNoise{
		rng:    rand.New(rand.NewSource(seed)),
		stdDev: stdDev,
	}
}

// AddRandomness scales value by a random factor around 1
func (s *GaussianNoise) AddRandomness(value float64, max float64) float64 {
	if s.stdDev == 0 {
		return value
	}

	noise := s.rng.NormFloat64() * s.stdDev
	result := value * (1.0 + noise)

	// Pressure never goes negative or past the gauge ceiling
	if result < 0 {
		result = 0
	}
	if result > max {
		result = max
	}
	return result
}
