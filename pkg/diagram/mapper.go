package diagram

// Mapper converts domain coordinates into pixel coordinates. Domain y grows
// upward, pixel y grows downward; both axes are shifted by half the border.
type Mapper struct {
	BorderSize      float64
	ReferenceHeight float64
}

// NewMapper creates a mapper for the given layout
func NewMapper(layout Layout) Mapper {
	return Mapper{
		BorderSize:      layout.BorderSize,
		ReferenceHeight: layout.ReferenceHeight,
	}
}

// Map converts a single domain coordinate. Any input is valid, including
// negative values used to place labels left of or below the origin.
func (m Mapper) Map(x, y float64) Point {
	half := m.BorderSize / 2
	return Point{
		X: x + half,
		Y: (m.ReferenceHeight - y) + half,
	}
}

// MapAll maps every point, keeping order and length.
func (m Mapper) MapAll(points []Point) []Point {
	result := make([]Point, len(points))
	for i, p := range points {
		result[i] = m.Map(p.X, p.Y)
	}
	return result
}
