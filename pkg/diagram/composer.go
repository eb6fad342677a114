package diagram

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Options configures a Composer
type Options struct {
	Layout  Layout
	Style   Style
	Backend Backend
	// NewCanvas overrides Backend when set
	NewCanvas CanvasFactory
	Encoder   Encoder
	Logger    logrus.FieldLogger
}

// DefaultOptions returns the standard layout and style, the raster backend
// and JPEG output.
func DefaultOptions() Options {
	return Options{
		Layout:  DefaultLayout(),
		Style:   DefaultStyle(),
		Backend: BackendRaster,
		Encoder: DefaultEncoder(),
		Logger:  logrus.StandardLogger(),
	}
}

// Composer draws the axis frame and both series onto a fresh canvas per
// call. It holds no per-render state and is safe for concurrent use.
type Composer struct {
	layout    Layout
	style     Style
	mapper    Mapper
	newCanvas CanvasFactory
	encoder   Encoder
	log       logrus.FieldLogger
}

// NewComposer creates a composer from options
func NewComposer(opts Options) (*Composer, error) {
	factory := opts.NewCanvas
	if factory == nil {
		var err error
		factory, err = opts.Backend.Factory()
		if err != nil {
			return nil, err
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Composer{
		layout:    opts.Layout,
		style:     opts.Style,
		mapper:    NewMapper(opts.Layout),
		newCanvas: factory,
		encoder:   opts.Encoder,
		log:       logger,
	}, nil
}

// Mapper returns the coordinate mapper used for every draw call
func (c *Composer) Mapper() Mapper {
	return c.mapper
}

// Render composes the diagram and writes it to spec.OutputPath.
func (c *Composer) Render(spec ChartSpec) error {
	img, err := c.Compose(spec)
	if err != nil {
		return err
	}

	if err := c.encoder.WriteFile(spec.OutputPath, img); err != nil {
		return &RenderError{Path: spec.OutputPath, Stage: "encode", Err: err}
	}

	c.log.WithFields(logrus.Fields{
		"path":   spec.OutputPath,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
		"format": c.encoder.Format,
	}).Info("Diagram saved")
	return nil
}

// Compose draws the diagram and returns the finished image without encoding it.
func (c *Composer) Compose(spec ChartSpec) (image.Image, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, &RenderError{
			Path:  spec.OutputPath,
			Stage: "init",
			Err:   fmt.Errorf("%w: data area %dx%d must be positive", ErrInvalidDimension, spec.Width, spec.Height),
		}
	}

	width, height := c.layout.CanvasSize(spec.Width, spec.Height)
	canvas, err := c.newCanvas(width, height, c.style)
	if err != nil {
		return nil, &RenderError{Path: spec.OutputPath, Stage: "init", Err: err}
	}
	// Output formats are opaque, so the background is a plain fill and no
	// transparency key is set.
	canvas.Clear(c.style.Background)

	log := c.log.WithField("path", spec.OutputPath)
	log.Debugf("Drawing frame on %dx%d canvas", width, height)
	if err := c.drawFrame(canvas, float64(spec.Height)); err != nil {
		return nil, &RenderError{Path: spec.OutputPath, Stage: "draw", Err: err}
	}

	log.Debugf("Drawing series: %d reference points, %d degradation points",
		len(spec.Reference), len(spec.Degradation))
	c.drawSeries(canvas, spec.Reference, c.style.Reference)
	c.drawSeries(canvas, spec.Degradation, c.style.Degradation)

	return canvas.Image(), nil
}

// drawFrame draws both axis lines, their tick labels and titles.
//
// The time axis line always runs to ReferenceHeight, and the pressure axis
// line passes the data height as the mapper's x argument.
func (c *Composer) drawFrame(canvas Canvas, dataHeight float64) error {
	m := c.mapper
	l := c.layout

	canvas.DrawLine(m.Map(0, 0), m.Map(0, l.ReferenceHeight), c.style.Axis)

	for j := l.XTickFirst; j <= l.XTickLast; j++ {
		at := m.Map(float64(j)*l.TickStride, l.XTickLabelY)
		if err := canvas.DrawString(strconv.Itoa(j), at, c.style.Text); err != nil {
			return fmt.Errorf("failed to draw time label %d: %w", j, err)
		}
	}
	if err := canvas.DrawString(l.XTitle, m.Map(0, l.XTitleY), c.style.Text); err != nil {
		return fmt.Errorf("failed to draw time title: %w", err)
	}

	canvas.DrawLine(m.Map(0, 0), m.Map(dataHeight, 0), c.style.Axis)

	for i := l.YTickFirst; i <= l.YTickLast; i++ {
		at := m.Map(l.YTickLabelX, float64(i)*l.TickStride)
		if err := canvas.DrawString(strconv.Itoa(i), at, c.style.Text); err != nil {
			return fmt.Errorf("failed to draw pressure label %d: %w", i, err)
		}
	}

	// One glyph per row, top to bottom.
	for i, r := range []rune(l.YTitle) {
		at := m.Map(l.YTitleX, dataHeight-float64(i)*l.TitleSpacing)
		if err := canvas.DrawString(string(r), at, c.style.Text); err != nil {
			return fmt.Errorf("failed to draw pressure title glyph %q: %w", r, err)
		}
	}
	return nil
}

// drawSeries strokes a series as one connected polyline. A series with fewer
// than two points has no segment and draws nothing.
func (c *Composer) drawSeries(canvas Canvas, series Series, col color.Color) {
	if len(series) < 2 {
		return
	}
	canvas.DrawPolyline(c.mapper.MapAll(series), col)
}
