package diagram

import (
	"image/color"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Style holds the colors and text settings of a diagram
type Style struct {
	Background  color.Color
	Axis        color.Color
	Text        color.Color
	Reference   color.Color
	Degradation color.Color
	FontSize    float64 // In points
	DPI         float64
	LineWidth   float64
}

// DefaultStyle returns black axes and text on white, a black reference curve
// and a red degradation curve.
func DefaultStyle() Style {
	return Style{
		Background:  drawing.ColorWhite,
		Axis:        drawing.ColorBlack,
		Text:        drawing.ColorBlack,
		Reference:   drawing.ColorBlack,
		Degradation: drawing.ColorRed,
		FontSize:    10,
		DPI:         96,
		LineWidth:   1,
	}
}
