package randomizer

import (
	"math"
	"math/rand"
)

// SurgeConfig describes transient pressure surges
type SurgeConfig struct {
	Probability float64 // Chance per sample that a surge starts
	MinSamples  int     // Shortest surge, in samples
	MaxSamples  int     // Longest surge, in samples
	Amplitude   float64 // Peak rise as a fraction of the gauge ceiling
}

// DefaultSurgeConfig returns short surges of up to 15% of the gauge range
func DefaultSurgeConfig(probability float64) SurgeConfig {
	return SurgeConfig{
		Probability: probability,
		MinSamples:  1,
		MaxSamples:  3,
		Amplitude:   0.15,
	}
}

// Surge lifts readings by a rise that peaks on the first sample of a surge
// and falls off linearly until the surge ends.
type Surge struct {
	rng    *rand.Rand
	config SurgeConfig

	length    int
	remaining int
}

// NewSurge creates a seeded surge source
func NewSurge(seed int64, config SurgeConfig) *Surge {
	if config.MinSamples < 1 {
		config.MinSamples = 1
	}
	if config.MaxSamples < config.MinSamples {
		config.MaxSamples = config.MinSamples
	}
	return &Surge{
		rng:    rand.New(rand.NewSource(seed)),
		config: config,
	}
}

// Active reports whether the next reading continues a running surge
func (s *Surge) Active() bool {
	return s.remaining > 0
}

func (s *Surge) AddRandomness(value float64, max float64) float64 {
	if s.config.Probability <= 0 || s.config.Amplitude <= 0 {
		return value
	}

	if s.remaining == 0 && s.rng.Float64() < s.config.Probability {
		s.length = s.config.MinSamples
		if spread := s.config.MaxSamples - s.config.MinSamples; spread > 0 {
			s.length += s.rng.Intn(spread + 1)
		}
		s.remaining = s.length
	}
	if s.remaining == 0 {
		return value
	}

	rise := s.config.Amplitude * max * float64(s.remaining) / float64(s.length)
	s.remaining--
	return math.Min(value+rise, max)
}
