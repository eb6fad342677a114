package randomizer_test

import (
	"testing"

	"github.com/brianbland/pressurediagram/pkg/randomizer"
)

func TestGaussianNoise(t *testing.T) {
	gaussianNoise := randomizer.NewGaussianNoise(12345, 0.1)
	value := 500.0
	max := 1000.0

	for i := 0; i < 1000; i++ {
		randomized := gaussianNoise.AddRandomness(value, max)
		if randomized > max {
			t.Errorf("Randomized value is greater than max: %f", randomized)
		}
		if randomized < 0 {
			t.Errorf("Randomized value is negative: %f", randomized)
		}
		if randomized == value && value != 0 && value != max {
			t.Errorf("Randomized value is equal to original value: %f", randomized)
		}
		value = randomized
	}
}

func TestGaussianNoiseZeroStdDev(t *testing.T) {
	gaussianNoise := randomizer.NewGaussianNoise(1, 0)
	if got := gaussianNoise.AddRandomness(123.4, 1000); got != 123.4 {
		t.Errorf("AddRandomness with zero std dev = %f, want 123.4", got)
	}
}

func TestGaussianNoiseDeterministic(t *testing.T) {
	a := randomizer.NewGaussianNoise(7, 0.2)
	b := randomizer.NewGaussianNoise(7, 0.2)
	for i := 0; i < 50; i++ {
		if va, vb := a.AddRandomness(400, 1000), b.AddRandomness(400, 1000); va != vb {
			t.Fatalf("step %d: same seed produced %f and %f", i, va, vb)
		}
	}
}

func TestSurgeDecays(t *testing.T) {
	surge := randomizer.NewSurge(1, randomizer.SurgeConfig{
		Probability: 1,
		MinSamples:  2,
		MaxSamples:  2,
		Amplitude:   0.1,
	})

	// Every surge lasts two samples: full rise, then half, then a new surge
	want := []float64{500, 450, 500, 450}
	for i, w := range want {
		if got := surge.AddRandomness(400, 1000); got != w {
			t.Errorf("sample %d: got %f, want %f", i, got, w)
		}
	}
}

func TestSurgeClampsToCeiling(t *testing.T) {
	surge := randomizer.NewSurge(1, randomizer.SurgeConfig{Probability: 1, Amplitude: 0.5})
	if got := surge.AddRandomness(900, 1000); got != 1000 {
		t.Errorf("AddRandomness = %f, want clamped 1000", got)
	}
	if surge.Active() {
		t.Error("single-sample surge should have ended")
	}
}

func TestSurgeRandomLengths(t *testing.T) {
	surge := randomizer.NewSurge(42, randomizer.DefaultSurgeConfig(0.2))
	raised := 0
	for i := 0; i < 500; i++ {
		got := surge.AddRandomness(400, 1000)
		if got < 400 || got > 550 {
			t.Fatalf("sample %d: %f outside [400, 550]", i, got)
		}
		if got > 400 {
			raised++
		}
	}
	if raised == 0 {
		t.Error("expected at least one surge")
	}
}

func TestSurgeDisabled(t *testing.T) {
	surge := randomizer.NewSurge(1, randomizer.DefaultSurgeConfig(0))
	for i := 0; i < 20; i++ {
		if got := surge.AddRandomness(300, 1000); got != 300 {
			t.Fatalf("disabled surge changed value to %f", got)
		}
	}
}

func TestChain(t *testing.T) {
	chain := randomizer.Chain{
		randomizer.NewGaussianNoise(1, 0),
		nil,
		randomizer.NewSurge(1, randomizer.SurgeConfig{Probability: 1, Amplitude: 0.1}),
	}
	if got := chain.AddRandomness(250, 1000); got != 350 {
		t.Errorf("Chain.AddRandomness = %f, want 350", got)
	}
	if got := (randomizer.Chain{}).AddRandomness(250, 1000); got != 250 {
		t.Errorf("empty chain changed value to %f", got)
	}
}
