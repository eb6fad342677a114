package randomizer

// Randomizer perturbs a pressure reading. max is the ceiling the result is
// clamped to.
type Randomizer interface {
	AddRandomness(value float64, max float64) float64
}

// Chain feeds a reading through each randomizer in order
type Chain []Randomizer

func (c Chain) AddRandomness(value float64, max float64) float64 {
	for _, r := range c {
		if r == nil {
			continue
		}
		value = r.AddRandomness(value, max)
	}
	return value
}
