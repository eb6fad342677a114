package diagram

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is the output image encoding
type Format string

const (
	// FormatJPEG is the lossy default output
	FormatJPEG Format = "jpeg"
	// FormatPNG is lossless; two renders of the same input are byte-identical
	FormatPNG Format = "png"
)

// ParseFormat parses an output format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unknown image format: %s (supported: jpeg, png)", s)
	}
}

// FormatFromPath picks PNG for a .png extension and JPEG for anything else.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return FormatPNG
	}
	return FormatJPEG
}

// Encoder serializes a finished canvas
type Encoder struct {
	Format  Format
	Quality int // JPEG quality, 1-100
}

// DefaultEncoder returns a JPEG encoder at the standard library's default quality
func DefaultEncoder() Encoder {
	return Encoder{
		Format:  FormatJPEG,
		Quality: jpeg.DefaultQuality,
	}
}

// Encode writes img to w
func (e Encoder) Encode(w io.Writer, img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrEncoding)
	}

	switch e.Format {
	case FormatJPEG, "":
		quality := e.Quality
		if quality == 0 {
			quality = jpeg.DefaultQuality
		}
		if quality < 1 || quality > 100 {
			return fmt.Errorf("%w: jpeg quality %d out of range 1-100", ErrEncoding, quality)
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
	default:
		return fmt.Errorf("%w: unsupported format %q", ErrEncoding, e.Format)
	}
	return nil
}

// WriteFile encodes img into path, replacing any existing file. path never
// holds a partially written image.
func (e Encoder) WriteFile(path string, img image.Image) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		return e.Encode(w, img)
	})
}

// WriteFileAtomic streams write into a temporary file next to path and
// renames it into place. On any failure the temporary file is removed and
// path is left untouched. Errors returned by write are passed through; file
// system failures wrap ErrIO.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	if path == "" {
		return fmt.Errorf("%w: empty output path", ErrIO)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create file: %w", ErrIO, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	buf := bufio.NewWriter(tmp)
	if err = write(buf); err != nil {
		return err
	}
	if err = buf.Flush(); err != nil {
		return fmt.Errorf("%w: failed to write file: %w", ErrIO, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: failed to close file: %w", ErrIO, err)
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("%w: failed to set file mode: %w", ErrIO, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: failed to move file into place: %w", ErrIO, err)
	}
	return nil
}
