package app

import (
	"context"
	"fmt"
	"time"

	"rttrim/domain/trial"
	"rttrim/internal"
	"rttrim/internal/errors"
	"rttrim/internal/trim"
	"rttrim/ports"
)

// TrimService reads a trial file, runs one trimming procedure and writes the table
type TrimService struct {
	reader  ports.DatasetReader
	writer  ports.ResultWriter
	trimmer *trim.Trimmer
	logger  *internal.Logger
}

// TrimRequest describes one run. An empty OutputPath skips writing.
type TrimRequest struct {
	InputPath  string
	OutputPath string
	Method     trial.Method
	Options    trim.Options
}

// NewTrimService creates a trim service
func NewTrimService(reader ports.DatasetReader, writer ports.ResultWriter, trimmer *trim.Trimmer, logger *internal.Logger) *TrimService {
	if logger == nil {
		logger = internal.Discard()
	}
	return &TrimService{
		reader:  reader,
		writer:  writer,
		trimmer: trimmer,
		logger:  logger.WithComponent("TrimService"),
	}
}

// Run executes req and returns the computed table
func (s *TrimService) Run(ctx context.Context, req TrimRequest) (*trial.ResultTable, error) {
	if req.InputPath == "" {
		return nil, errors.InvalidInput("input path is required")
	}
	start := time.Now()

	data, err := s.reader.Read(ctx, req.InputPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read trials")
	}
	s.logger.Debug("Read %d trials from %s", data.Len(), req.InputPath)

	table, err := s.trimmer.Run(ctx, req.Method, data, req.Options)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("%s trimming failed", req.Method))
	}

	if req.OutputPath != "" {
		if err := s.writer.Write(ctx, req.OutputPath, table); err != nil {
			return nil, errors.Wrap(err, "failed to write results")
		}
	}

	rows, cols := table.Shape()
	sum := table.Summary
	s.logger.Info("%s run %s: %d participants × %d conditions, %d/%d trials eligible (%d errors, %d at or below %v ms), %d undefined cells in %v",
		req.Method, table.RunID, rows, cols, sum.EligibleTrials, sum.TotalTrials,
		sum.ErrorTrials, sum.BelowMinRT, req.Options.MinRT, sum.UndefinedCells, time.Since(start).Round(time.Millisecond))
	if sum.UndefinedCells > 0 {
		s.logger.Warn("%d of %d cells have no surviving trials and are reported as %s",
			sum.UndefinedCells, rows*cols, trial.UndefinedLabel)
	}

	return table, nil
}
