package diagram

import (
	"fmt"
	"image"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// plotDPI makes one vg point one pixel
const plotDPI = 72

// plotCanvas draws through gonum/plot's vector canvas. vgimg renders into its
// own image, so every read goes through vc.Image(). vg coordinates grow
// upwards and every point is flipped against the canvas height.
type plotCanvas struct {
	vc     *vgimg.Canvas
	dc     draw.Canvas
	width  vg.Length
	height vg.Length
	style  Style
}

func newPlotCanvas(width, height int, style Style) (Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", ErrInvalidDimension, width, height)
	}

	w, h := vg.Length(width), vg.Length(height)
	vc := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(plotDPI))
	return &plotCanvas{
		vc:     vc,
		dc:     draw.New(vc),
		width:  w,
		height: h,
		style:  style,
	}, nil
}

func (p *plotCanvas) point(at Point) vg.Point {
	return vg.Point{X: vg.Length(at.X), Y: p.height - vg.Length(at.Y)}
}

func (p *plotCanvas) Clear(c color.Color) {
	var rect vg.Path
	rect.Move(vg.Point{})
	rect.Line(vg.Point{X: p.width})
	rect.Line(vg.Point{X: p.width, Y: p.height})
	rect.Line(vg.Point{Y: p.height})
	rect.Close()

	p.dc.SetColor(c)
	p.dc.Fill(rect)
}

func (p *plotCanvas) DrawLine(from, to Point, c color.Color) {
	p.DrawPolyline([]Point{from, to}, c)
}

func (p *plotCanvas) DrawPolyline(points []Point, c color.Color) {
	if len(points) < 2 {
		return
	}
	line := make([]vg.Point, len(points))
	for i, pt := range points {
		line[i] = p.point(pt)
	}
	p.dc.StrokeLines(draw.LineStyle{Color: c, Width: vg.Length(p.style.LineWidth)}, line)
}

func (p *plotCanvas) DrawString(s string, at Point, c color.Color) error {
	fnt := plot.DefaultFont
	fnt.Size = vg.Length(p.style.FontSize * p.style.DPI / plotDPI)

	p.dc.FillText(text.Style{
		Color:   c,
		Font:    fnt,
		XAlign:  draw.XLeft,
		YAlign:  draw.YTop,
		Handler: plot.DefaultTextHandler,
	}, p.point(at), s)
	return nil
}

func (p *plotCanvas) Image() image.Image {
	return p.vc.Image()
}
