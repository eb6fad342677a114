package diagram

// Point is a coordinate pair. Domain points carry time in seconds on X and
// pressure in psi on Y; the mapper returns pixel coordinates in the same type.
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Series is an ordered run of points; the order is the polyline draw order.
type Series []Point

// ChartSpec describes a single render
type ChartSpec struct {
	OutputPath  string
	Width       int // data area width in pixels, excluding the border
	Height      int // data area height in pixels, excluding the border
	Reference   Series
	Degradation Series
}
