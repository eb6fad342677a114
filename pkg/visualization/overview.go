package visualization

import (
	"errors"
	"fmt"
	"io"

	"github.com/brianbland/pressurediagram/pkg/dataset"
	"github.com/brianbland/pressurediagram/pkg/diagram"
	"github.com/wcharczuk/go-chart/v2"
)

// ErrNotEnoughData is returned when neither curve has a drawable segment
var ErrNotEnoughData = errors.New("overview needs at least one curve with two points")

// columns splits a series into time and pressure columns
func columns(series diagram.Series) ([]float64, []float64) {
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, p := range series {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}

// NewChartData collects both curves of a dataset
func NewChartData(ds *dataset.DataSet) ChartData {
	var data ChartData
	data.ReferenceTimes, data.ReferencePressures = columns(ds.Reference)
	data.DegradationTimes, data.DegradationPressures = columns(ds.Degradation)
	return data
}

// GenerateOverviewChart renders both curves with auto-scaled axes and a
// legend as a PNG. It complements the fixed-frame diagram when the data does
// not fit the 0-1000 frame.
func (g *Generator) GenerateOverviewChart(ds *dataset.DataSet, filename string) error {
	if ds == nil {
		return fmt.Errorf("dataset is nil")
	}
	data := NewChartData(ds)

	var series []chart.Series
	if len(data.ReferenceTimes) >= 2 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Reference",
			XValues: data.ReferenceTimes,
			YValues: data.ReferencePressures,
			Style: chart.Style{
				StrokeColor: chart.ColorBlack,
				StrokeWidth: 2,
			},
		})
	}
	if len(data.DegradationTimes) >= 2 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Degradation",
			XValues: data.DegradationTimes,
			YValues: data.DegradationPressures,
			Style: chart.Style{
				StrokeColor: chart.ColorRed,
				StrokeWidth: 2,
			},
		})
	}
	if len(series) == 0 {
		return ErrNotEnoughData
	}

	title := g.options.Title
	if title == "" {
		title = fmt.Sprintf("Pressure Comparison: %s", ds.Name)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  g.options.Width,
		Height: g.options.Height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
		},
		XAxis: chart.XAxis{
			Name: "Time in seconds",
		},
		YAxis: chart.YAxis{
			Name: "Pressure in psi",
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendThin(&graph),
	}

	err := diagram.WriteFileAtomic(filename, func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
