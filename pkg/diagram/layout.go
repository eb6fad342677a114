package diagram

// Layout holds the fixed geometry of the diagram frame. All offsets are in
// domain units and go through the mapper like any data point.
type Layout struct {
	BorderSize      float64 // Total padding around the data area
	ReferenceHeight float64 // Nominal data height used for the vertical flip
	TickStride      float64 // Domain units between two tick labels

	XTickFirst int
	XTickLast  int
	YTickFirst int
	YTickLast  int

	XTickLabelY  float64 // Domain y of the time tick labels
	XTitleY      float64 // Domain y of the time axis title
	YTickLabelX  float64 // Domain x of the pressure tick labels
	YTitleX      float64 // Domain x of the stacked pressure title
	TitleSpacing float64 // Vertical distance between stacked title glyphs

	XTitle string
	YTitle string
}

// DefaultLayout returns the standard diagram frame
func DefaultLayout() Layout {
	return Layout{
		BorderSize:      200,
		ReferenceHeight: 1000,
		TickStride:      100,

		XTickFirst: 0,
		XTickLast:  10,
		YTickFirst: 1,
		YTickLast:  9,

		XTickLabelY:  -5,
		XTitleY:      -20,
		YTickLabelX:  -15,
		YTitleX:      -35,
		TitleSpacing: 20,

		XTitle: "Time in seconds",
		YTitle: "Pressure in psi",
	}
}

// CanvasSize returns the full image size for a data area of width x height.
func (l Layout) CanvasSize(width, height int) (int, int) {
	border := int(l.BorderSize)
	return width + border, height + border
}
