package excel

import "rttrim/domain/trial"

// Config holds settings shared by the reader and writer
type Config struct {
	// Sheet to read; empty selects the first sheet of the workbook
	Sheet string `json:"sheet"`

	// ResultSheet names the sheet written for xlsx output
	ResultSheet string `json:"result_sheet"`

	Comma          rune   `json:"comma"`
	UndefinedLabel string `json:"undefined_label"`

	// RowLabel heads the participant column of a written table
	RowLabel string `json:"row_label"`
}

// DefaultConfig returns comma-separated CSV, the first sheet, and NA for undefined cells
func DefaultConfig() Config {
	return Config{
		ResultSheet:    "trimmed",
		Comma:          ',',
		UndefinedLabel: trial.UndefinedLabel,
		RowLabel:       trial.DefaultParticipantField,
	}
}
