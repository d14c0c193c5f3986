package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"rttrim/domain/trial"
	"rttrim/internal"
	"rttrim/internal/errors"

	"github.com/xuri/excelize/v2"
)

// ResultWriter writes result tables as CSV or XLSX
type ResultWriter struct {
	config Config
	logger *internal.Logger
}

// NewResultWriter creates a writer choosing the format from the output extension
func NewResultWriter(config Config, logger *internal.Logger) *ResultWriter {
	if logger == nil {
		logger = internal.Discard()
	}
	return &ResultWriter{config: config, logger: logger.WithComponent("ResultWriter")}
}

// Write stores table at path
func (w *ResultWriter) Write(ctx context.Context, path string, table *trial.ResultTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if table == nil {
		return errors.InvalidInput("result table is nil")
	}

	fileType, err := fileTypeOf(path)
	if err != nil {
		return errors.DataIO(path, err)
	}

	switch fileType {
	case fileTypeCSV:
		err = w.writeCSVFile(path, table)
	case fileTypeXLSX:
		err = w.writeExcel(path, table)
	}
	if err != nil {
		return errors.DataIO(path, err)
	}

	rows, cols := table.Shape()
	w.logger.Info("Wrote %s table %s (%d participants × %d conditions) to %s", table.Method, table.RunID, rows, cols, path)
	return nil
}

// WriteCSV renders table as CSV onto out
func (w *ResultWriter) WriteCSV(out io.Writer, table *trial.ResultTable) error {
	cw := csv.NewWriter(out)
	cw.Comma = w.config.Comma
	if err := cw.WriteAll(TableRows(table, w.config.RowLabel, w.config.UndefinedLabel)); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func (w *ResultWriter) writeCSVFile(path string, table *trial.ResultTable) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := w.WriteCSV(file, table); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// writeExcel stores defined cells as numbers so spreadsheets can compute on them
func (w *ResultWriter) writeExcel(path string, table *trial.ResultTable) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := w.config.ResultSheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, 0, len(table.Conditions)+1)
	header = append(header, w.config.RowLabel)
	for _, c := range table.Conditions {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for pi, participant := range table.Participants {
		row := make([]interface{}, 0, len(table.Conditions)+1)
		row = append(row, participant)
		for _, cell := range table.Cells[pi] {
			if cell.Defined {
				row = append(row, cell.Value)
			} else {
				row = append(row, w.config.UndefinedLabel)
			}
		}
		ref, err := excelize.CoordinatesToCellName(1, pi+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, ref, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", pi+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}
