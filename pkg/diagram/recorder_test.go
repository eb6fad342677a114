package diagram

import (
	"image"
	"image/color"
)

type recordedLine struct {
	from, to Point
	color    color.Color
}

type recordedText struct {
	text  string
	at    Point
	color color.Color
}

type recordedPolyline struct {
	points []Point
	color  color.Color
}

// recordingCanvas keeps every draw call for inspection
type recordingCanvas struct {
	width, height int
	background    color.Color
	lines         []recordedLine
	texts         []recordedText
	polylines     []recordedPolyline
	textErr       error
}

func (r *recordingCanvas) Clear(c color.Color) {
	r.background = c
}

func (r *recordingCanvas) DrawLine(from, to Point, c color.Color) {
	r.lines = append(r.lines, recordedLine{from, to, c})
}

func (r *recordingCanvas) DrawPolyline(points []Point, c color.Color) {
	cp := append([]Point(nil), points...)
	r.polylines = append(r.polylines, recordedPolyline{cp, c})
}

func (r *recordingCanvas) DrawString(s string, at Point, c color.Color) error {
	if r.textErr != nil {
		return r.textErr
	}
	r.texts = append(r.texts, recordedText{s, at, c})
	return nil
}

func (r *recordingCanvas) Image() image.Image {
	return image.NewRGBA(image.Rect(0, 0, r.width, r.height))
}

// recorder hands out recording canvases and remembers them
type recorder struct {
	canvases []*recordingCanvas
}

func (rec *recorder) factory(width, height int, _ Style) (Canvas, error) {
	c := &recordingCanvas{width: width, height: height}
	rec.canvases = append(rec.canvases, c)
	return c, nil
}

func (rec *recorder) last() *recordingCanvas {
	return rec.canvases[len(rec.canvases)-1]
}
