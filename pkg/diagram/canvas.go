package diagram

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Canvas is a raster surface owned by a single render. Coordinates are in
// pixel space.
type Canvas interface {
	Clear(c color.Color)
	DrawLine(from, to Point, c color.Color)
	DrawPolyline(points []Point, c color.Color)
	// DrawString draws s with its top-left corner at the given point.
	DrawString(s string, at Point, c color.Color) error
	Image() image.Image
}

// CanvasFactory allocates a canvas of the given pixel size
type CanvasFactory func(width, height int, style Style) (Canvas, error)

// Backend names a canvas implementation
type Backend string

const (
	// BackendRaster draws with the go-chart raster graphic context
	BackendRaster Backend = "raster"
	// BackendGG draws with a gg context
	BackendGG Backend = "gg"
	// BackendPlot draws with gonum/plot's vgimg canvas
	BackendPlot Backend = "plot"
)

// ParseBackend parses a backend name
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(BackendRaster):
		return BackendRaster, nil
	case string(BackendGG):
		return BackendGG, nil
	case string(BackendPlot):
		return BackendPlot, nil
	default:
		return "", fmt.Errorf("unknown canvas backend: %s (supported: raster, gg, plot)", s)
	}
}

// Factory returns the canvas constructor for the backend
func (b Backend) Factory() (CanvasFactory, error) {
	switch b {
	case BackendRaster, "":
		return newRasterCanvas, nil
	case BackendGG:
		return newGGCanvas, nil
	case BackendPlot:
		return newPlotCanvas, nil
	default:
		return nil, fmt.Errorf("unknown canvas backend: %s", b)
	}
}
