package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"rttrim/domain/trial"
	"rttrim/internal"
	"rttrim/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader reads trial data from CSV and XLSX files
type DataReader struct {
	config Config
	logger *internal.Logger
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(config Config, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.Discard()
	}
	return &DataReader{config: config, logger: logger.WithComponent("DataReader")}
}

// Read loads the file at path into a dataset. The first row is the header.
func (r *DataReader) Read(ctx context.Context, path string) (*trial.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fileType, err := fileTypeOf(path)
	if err != nil {
		return nil, errors.DataIO(path, err)
	}
	r.logger.Debug("Starting to read %s file: %s", fileType, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.DataIO(path, fmt.Errorf("%s file not found", strings.ToUpper(fileType)))
	}

	var rows [][]string
	switch fileType {
	case fileTypeCSV:
		rows, err = r.readCSVRows(path)
	case fileTypeXLSX:
		rows, err = r.readExcelRows(path)
	}
	if err != nil {
		return nil, errors.DataIO(path, err)
	}
	if len(rows) == 0 {
		return nil, errors.DataIO(path, fmt.Errorf("%s file has no header row", strings.ToUpper(fileType)))
	}

	data, err := r.processRows(rows)
	if err != nil {
		return nil, errors.DataIO(path, err)
	}
	r.logger.Info("%s file processed (%d columns, %d rows)", strings.ToUpper(fileType), len(data.Headers), data.Len())
	return data, nil
}

// readExcelRows reads every row of the configured sheet, or the first sheet
func (r *DataReader) readExcelRows(path string) ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	r.logger.Debug("Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *DataReader) readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = r.config.Comma
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// processRows converts raw string rows into a dataset keyed by header.
// Short rows leave the trailing fields unset; blank rows are skipped.
// A header name may appear only once; unnamed columns are ignored.
func (r *DataReader) processRows(rows [][]string) (*trial.Dataset, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	seen := make(map[string]int, len(headerRow))
	for i, header := range headerRow {
		name := strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
		if name != "" {
			if first, dup := seen[name]; dup {
				return nil, fmt.Errorf("duplicate header %q in columns %d and %d", name, first+1, i+1)
			}
			seen[name] = i
		}
		headers[i] = name
	}

	records := make([]trial.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec := make(trial.Record, len(headers))
		for j, cell := range row {
			if j < len(headers) && headers[j] != "" {
				rec[headers[j]] = strings.TrimSpace(cell)
			}
		}
		records = append(records, rec)
	}

	return &trial.Dataset{Headers: headers, Records: records}, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
