package excel

import (
	"fmt"
	"path/filepath"
	"strings"

	"rttrim/domain/core"
	"rttrim/domain/trial"
)

const (
	fileTypeCSV  = "csv"
	fileTypeXLSX = "xlsx"
)

// fileTypeOf picks the format from the file extension
func fileTypeOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return fileTypeCSV, nil
	case ".xlsx", ".xlsm":
		return fileTypeXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", core.ErrUnsupportedFileFormat, filepath.Ext(path))
}

// TableRows lays a result table out as a header row followed by one row per
// participant. Undefined cells are written as label.
func TableRows(table *trial.ResultTable, rowLabel, label string) [][]string {
	rows := make([][]string, 0, len(table.Participants)+1)

	header := make([]string, 0, len(table.Conditions)+1)
	header = append(header, rowLabel)
	header = append(header, table.Conditions...)
	rows = append(rows, header)

	for pi, participant := range table.Participants {
		row := make([]string, 0, len(table.Conditions)+1)
		row = append(row, participant)
		for _, cell := range table.Cells[pi] {
			if cell.Defined {
				row = append(row, cell.Format(table.Digits))
			} else {
				row = append(row, label)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
