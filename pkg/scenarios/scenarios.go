package scenarios

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brianbland/pressurediagram/pkg/dataset"
	"github.com/brianbland/pressurediagram/pkg/diagram"
	"github.com/brianbland/pressurediagram/pkg/randomizer"
)

// Scenario represents a named sample measurement
type Scenario struct {
	Name        string
	Description string
	DataSet     dataset.DataSet
}

// Options controls sample generation
type Options struct {
	Seed     int64
	Noise    float64 // Gaussian noise on the degradation curve (0.0 = none, 0.1 = 10% variation)
	Surge    float64 // Per-sample chance of a pressure surge on the degradation curve
	MaxValue float64 // Pressure ceiling for noisy samples
}

// DefaultOptions returns noise-free samples
func DefaultOptions() Options {
	return Options{
		Seed:     1,
		Noise:    0,
		Surge:    0,
		MaxValue: 1000,
	}
}

// Generator handles scenario generation
type Generator struct {
	options Options
}

// NewGenerator creates a new scenario generator
func NewGenerator(options Options) *Generator {
	return &Generator{options: options}
}

// GenerateAll generates all available scenarios
func (g *Generator) GenerateAll() map[string]Scenario {
	scenarios := map[string]Scenario{
		"example":  g.generateExample(),
		"leak":     g.generateLeak(),
		"blockage": g.generateBlockage(),
		"flat":     g.generateFlat(),
		"surge":    g.generateSurge(),
	}

	if g.options.Noise > 0 || g.options.Surge > 0 {
		for key, scenario := range scenarios {
			scenarios[key] = g.applyRandomness(scenario)
		}
	}

	return scenarios
}

// GetByName returns a specific scenario by name
func (g *Generator) GetByName(name string) (Scenario, bool) {
	scenarios := g.GenerateAll()
	scenario, exists := scenarios[name]
	return scenario, exists
}

// Names lists the available scenario names in sorted order
func (g *Generator) Names() []string {
	names := make([]string, 0, 5)
	for name := range g.GenerateAll() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// generateExample is a three-point comparison: the reference rises then
// falls, the degradation keeps rising.
func (g *Generator) generateExample() Scenario {
	return Scenario{
		Name:        "example",
		Description: "Reference rises then falls; degradation rises along a different path",
		DataSet: dataset.DataSet{
			Name:        "example",
			Reference:   diagram.Series{{X: 0, Y: 0}, {X: 500, Y: 500}, {X: 1000, Y: 200}},
			Degradation: diagram.Series{{X: 0, Y: 0}, {X: 500, Y: 300}, {X: 1000, Y: 800}},
		},
	}
}

// generateLeak holds pressure on the reference while the degraded unit
// bleeds pressure after the peak.
func (g *Generator) generateLeak() Scenario {
	reference := pressureCurve([]float64{
		0, 150, 320, 480, 610, 700, 720, 720, 720, 720, 720, // Build-up and hold
	})
	degradation := pressureCurve([]float64{
		0, 140, 300, 450, 560, 620, 590, 540, 480, 410, 350, // Peak then decay
	})
	return Scenario{
		Name:        "leak",
		Description: "Degraded unit fails to hold pressure after build-up",
		DataSet:     dataset.DataSet{Name: "leak", Reference: reference, Degradation: degradation},
	}
}

// generateBlockage overshoots the reference on the degraded unit
func (g *Generator) generateBlockage() Scenario {
	reference := pressureCurve([]float64{
		0, 100, 200, 300, 380, 440, 480, 500, 500, 500, 500,
	})
	degradation := pressureCurve([]float64{
		0, 130, 270, 420, 560, 680, 770, 830, 860, 870, 875,
	})
	return Scenario{
		Name:        "blockage",
		Description: "Degraded unit builds pressure faster and settles higher",
		DataSet:     dataset.DataSet{Name: "blockage", Reference: reference, Degradation: degradation},
	}
}

// generateFlat has identical curves, so the red line covers the black one
func (g *Generator) generateFlat() Scenario {
	values := []float64{400, 400, 400, 400, 400, 400, 400, 400, 400, 400, 400}
	return Scenario{
		Name:        "flat",
		Description: "Healthy unit: degradation matches the reference",
		DataSet: dataset.DataSet{
			Name:        "flat",
			Reference:   pressureCurve(values),
			Degradation: pressureCurve(values),
		},
	}
}

// generateSurge runs the reference build-up through seeded pressure surges,
// the signature of a sticking relief valve.
func (g *Generator) generateSurge() Scenario {
	reference := pressureCurve([]float64{
		0, 120, 240, 350, 450, 530, 590, 620, 630, 630, 630,
	})
	surge := randomizer.NewSurge(g.options.Seed, randomizer.SurgeConfig{
		Probability: 0.35,
		MinSamples:  1,
		MaxSamples:  2,
		Amplitude:   0.2,
	})
	return Scenario{
		Name:        "surge",
		Description: "Degraded unit shows short pressure surges over the reference",
		DataSet: dataset.DataSet{
			Name:        "surge",
			Reference:   reference,
			Degradation: perturb(reference, surge, g.maxValue()),
		},
	}
}

func (g *Generator) maxValue() float64 {
	if g.options.MaxValue <= 0 {
		return DefaultOptions().MaxValue
	}
	return g.options.MaxValue
}

// perturb returns a copy of series with every reading passed through r
func perturb(series diagram.Series, r randomizer.Randomizer, max float64) diagram.Series {
	out := make(diagram.Series, len(series))
	for i, p := range series {
		out[i] = diagram.Point{X: p.X, Y: r.AddRandomness(p.Y, max)}
	}
	return out
}

// pressureCurve places one sample per tick, 100 domain units apart
func pressureCurve(values []float64) diagram.Series {
	series := make(diagram.Series, len(values))
	for i, v := range values {
		series[i] = diagram.Point{X: float64(i) * 100, Y: v}
	}
	return series
}

// applyRandomness adds seeded noise and surges to the degradation curve
func (g *Generator) applyRandomness(scenario Scenario) Scenario {
	var chain randomizer.Chain
	var notes []string
	if g.options.Noise > 0 {
		chain = append(chain, randomizer.NewGaussianNoise(g.options.Seed, g.options.Noise))
		notes = append(notes, fmt.Sprintf("%.0f%% noise", g.options.Noise*100))
	}
	if g.options.Surge > 0 {
		chain = append(chain, randomizer.NewSurge(g.options.Seed+1, randomizer.DefaultSurgeConfig(g.options.Surge)))
		notes = append(notes, fmt.Sprintf("%.0f%% surge chance", g.options.Surge*100))
	}

	scenario.DataSet.Degradation = perturb(scenario.DataSet.Degradation, chain, g.maxValue())
	scenario.Description = fmt.Sprintf("%s (%s)", scenario.Description, strings.Join(notes, ", "))
	return scenario
}
