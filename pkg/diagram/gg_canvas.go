package diagram

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Anchors for DrawStringAnchored: left edge, top edge
const (
	stickToLeft = 0.0
	stickToTop  = 1.0
)

type ggCanvas struct {
	dc    *gg.Context
	style Style
}

func newGGCanvas(width, height int, style Style) (Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrInvalidDimension, width, height)
	}

	dc := gg.NewContext(width, height)
	dc.SetFontFace(loadFace(style))
	dc.SetLineWidth(style.LineWidth)
	return &ggCanvas{dc: dc, style: style}, nil
}

// loadFace returns the Roboto face bundled with go-chart, or the basic 7x13
// bitmap face if it cannot be parsed.
func loadFace(style Style) font.Face {
	f, err := chart.GetDefaultFont()
	if err != nil || f == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{
		Size: style.FontSize,
		DPI:  style.DPI,
	})
}

func (g *ggCanvas) Clear(c color.Color) {
	g.dc.SetColor(c)
	g.dc.Clear()
}

func (g *ggCanvas) DrawLine(from, to Point, c color.Color) {
	g.dc.SetColor(c)
	g.dc.DrawLine(from.X, from.Y, to.X, to.Y)
	g.dc.Stroke()
}

func (g *ggCanvas) DrawPolyline(points []Point, c color.Color) {
	if len(points) < 2 {
		return
	}
	g.dc.SetColor(c)
	g.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		g.dc.LineTo(p.X, p.Y)
	}
	g.dc.Stroke()
}

func (g *ggCanvas) DrawString(s string, at Point, c color.Color) error {
	g.dc.SetColor(c)
	g.dc.DrawStringAnchored(s, at.X, at.Y, stickToLeft, stickToTop)
	return nil
}

func (g *ggCanvas) Image() image.Image {
	return g.dc.Image()
}
