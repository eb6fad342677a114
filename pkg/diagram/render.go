package diagram

// RenderChart renders a reference and a degradation series onto a
// (width+200) x (height+200) JPEG at outputPath, overwriting any existing
// file. A nil error means the complete image was written.
func RenderChart(outputPath string, width, height int, reference, degradation []Point) error {
	composer, err := NewComposer(DefaultOptions())
	if err != nil {
		return err
	}
	return composer.Render(ChartSpec{
		OutputPath:  outputPath,
		Width:       width,
		Height:      height,
		Reference:   reference,
		Degradation: degradation,
	})
}
