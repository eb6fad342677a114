package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brianbland/pressurediagram/pkg/diagram"
)

// Series names used across all file formats
const (
	SeriesReference   = "reference"
	SeriesDegradation = "degradation"
)

// ErrUnsupportedFormat indicates a file extension with no loader
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// DataSet is the pair of curves rendered into one diagram
type DataSet struct {
	Name        string         `json:"name,omitempty" toml:"name"`
	Reference   diagram.Series `json:"reference" toml:"reference"`
	Degradation diagram.Series `json:"degradation" toml:"degradation"`
}

// Extensions lists the file extensions LoadFromFile understands
var Extensions = []string{".json", ".toml", ".csv", ".xlsx"}

// Supported reports whether a file has a loadable extension
func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// LoadFromFile loads a dataset, choosing the decoder by file extension.
// The dataset name defaults to the file name without extension.
func LoadFromFile(filename string) (*DataSet, error) {
	var (
		ds  *DataSet
		err error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		ds, err = loadJSON(filename)
	case ".toml":
		ds, err = loadTOML(filename)
	case ".csv":
		ds, err = loadCSV(filename)
	case ".xlsx":
		ds, err = loadXLSX(filename)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
	if err != nil {
		return nil, err
	}

	if ds.Name == "" {
		base := filepath.Base(filename)
		ds.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return ds, nil
}

// SaveToFile writes a dataset as indented JSON
func SaveToFile(ds *DataSet, filename string) error {
	jsonData, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func loadJSON(filename string) (*DataSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var ds DataSet
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
	}
	return &ds, nil
}

// add appends a point to the named series
func (ds *DataSet) add(series string, p diagram.Point) error {
	switch strings.ToLower(strings.TrimSpace(series)) {
	case SeriesReference:
		ds.Reference = append(ds.Reference, p)
	case SeriesDegradation:
		ds.Degradation = append(ds.Degradation, p)
	default:
		return fmt.Errorf("unknown series %q (want %s or %s)", series, SeriesReference, SeriesDegradation)
	}
	return nil
}
