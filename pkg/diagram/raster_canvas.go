package diagram

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// rasterCanvas draws onto an RGBA image through go-chart's graphic context,
// using the library's bundled Roboto font.
type rasterCanvas struct {
	img   *image.RGBA
	gc    *drawing.RasterGraphicContext
	style Style
}

func newRasterCanvas(width, height int, style Style) (Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrInvalidDimension, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gc, err := drawing.NewRasterGraphicContext(img)
	if err != nil {
		return nil, fmt.Errorf("failed to create graphic context: %w", err)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	gc.SetFont(font)
	gc.SetDPI(style.DPI)
	gc.SetFontSize(style.FontSize)
	gc.SetLineWidth(style.LineWidth)

	return &rasterCanvas{img: img, gc: gc, style: style}, nil
}

func (r *rasterCanvas) Clear(c color.Color) {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *rasterCanvas) DrawLine(from, to Point, c color.Color) {
	r.DrawPolyline([]Point{from, to}, c)
}

func (r *rasterCanvas) DrawPolyline(points []Point, c color.Color) {
	if len(points) < 2 {
		return
	}
	r.gc.SetStrokeColor(c)
	r.gc.SetLineWidth(r.style.LineWidth)
	r.gc.BeginPath()
	r.gc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		r.gc.LineTo(p.X, p.Y)
	}
	r.gc.Stroke()
}

func (r *rasterCanvas) DrawString(s string, at Point, c color.Color) error {
	r.gc.SetFillColor(c)
	r.gc.SetFontSize(r.style.FontSize)

	// top is negative: the distance from the baseline up to the glyph tops
	_, top, _, _, err := r.gc.GetStringBounds(s)
	if err != nil {
		return fmt.Errorf("failed to measure %q: %w", s, err)
	}
	r.gc.BeginPath()
	if _, err := r.gc.FillStringAt(s, at.X, at.Y-top); err != nil {
		return fmt.Errorf("failed to draw %q: %w", s, err)
	}
	return nil
}

func (r *rasterCanvas) Image() image.Image {
	return r.img
}
