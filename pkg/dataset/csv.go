package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/brianbland/pressurediagram/pkg/diagram"
)

// loadCSV reads rows of "series,x,y". A first row whose x column is not a
// number is treated as a header.
func loadCSV(filename string) (*DataSet, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return readCSV(f)
}

func readCSV(r io.Reader) (*DataSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var ds DataSet
	for first := true; ; first = false {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		x, errX := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if errX != nil || errY != nil {
			if first {
				continue
			}
			return nil, fmt.Errorf("line %d: invalid point %q,%q", line, record[1], record[2])
		}

		if err := ds.add(record[0], diagram.Point{X: x, Y: y}); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return &ds, nil
}
