package diagram

import (
	"errors"
	"fmt"
)

// ErrInvalidDimension indicates a non-positive data area width or height.
var ErrInvalidDimension = errors.New("invalid diagram dimension")

// ErrIO indicates the output file could not be created or written.
var ErrIO = errors.New("output file error")

// ErrEncoding indicates the image encoder rejected the canvas.
var ErrEncoding = errors.New("image encoding error")

// RenderError records which stage of a render failed.
type RenderError struct {
	Path  string
	Stage string // "init", "draw", "encode"
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %q failed at %s: %v", e.Path, e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
