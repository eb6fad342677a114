package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brianbland/pressurediagram/pkg/diagram"
	"github.com/xuri/excelize/v2"
)

// loadXLSX reads a workbook with one sheet per series, named "reference"
// and "degradation". Column A holds time, column B pressure. Rows whose
// cells do not parse as numbers (headers, notes) are skipped. A missing
// sheet yields an empty series.
func loadXLSX(filename string) (*DataSet, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var ds DataSet
	for _, sheet := range f.GetSheetList() {
		name := strings.ToLower(strings.TrimSpace(sheet))
		if name != SeriesReference && name != SeriesDegradation {
			continue
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			p, ok := parseRow(row)
			if !ok {
				continue
			}
			if err := ds.add(name, p); err != nil {
				return nil, err
			}
		}
	}
	return &ds, nil
}

func parseRow(row []string) (diagram.Point, bool) {
	if len(row) < 2 {
		return diagram.Point{}, false
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
	if err != nil {
		return diagram.Point{}, false
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return diagram.Point{}, false
	}
	return diagram.Point{X: x, Y: y}, true
}
