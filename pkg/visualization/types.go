package visualization

import (
	"github.com/brianbland/pressurediagram/pkg/dataset"
)

// ChartData holds the columns of both curves
type ChartData struct {
	ReferenceTimes       []float64
	ReferencePressures   []float64
	DegradationTimes     []float64
	DegradationPressures []float64
}

// ChartGenerator defines the interface for generating overview charts
type ChartGenerator interface {
	GenerateOverviewChart(ds *dataset.DataSet, filename string) error
}

// Generator implements ChartGenerator interface
type Generator struct {
	options ChartOptions
}

// NewGenerator creates a new chart generator
func NewGenerator(options ChartOptions) ChartGenerator {
	return &Generator{options: options}
}

// ChartOptions contains size options for charts
type ChartOptions struct {
	Width  int
	Height int
	Title  string
}

// DefaultChartOptions returns the standard overview size
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Width:  1200,
		Height: 800,
	}
}
