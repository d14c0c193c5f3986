package trim

import (
	"context"
	"fmt"

	"rttrim/domain/core"
	"rttrim/domain/trial"
	"rttrim/internal"
	"rttrim/internal/criterion"
	"rttrim/internal/errors"
)

// Trimmer exposes the public trimming procedures. It owns the criterion tables
// it was constructed with; nothing is read from package state.
type Trimmer struct {
	tables criterion.Set
	driver *Driver
	logger *internal.Logger
}

// NewTrimmer creates a trimmer over the given tables
func NewTrimmer(tables criterion.Set, logger *internal.Logger) (*Trimmer, error) {
	if tables.NonRecursive == nil || tables.ModifiedRecursive == nil {
		return nil, errors.ConfigInvalid("trimmer needs both non-recursive and modified-recursive criterion tables")
	}
	if logger == nil {
		logger = internal.Discard()
	}
	return &Trimmer{
		tables: tables,
		driver: NewDriver(logger),
		logger: logger.WithComponent("trim"),
	}, nil
}

// NonRecursive computes non-recursive trimmed means per participant × condition
func (t *Trimmer) NonRecursive(ctx context.Context, data *trial.Dataset, opts Options) (*trial.ResultTable, error) {
	return t.Run(ctx, trial.MethodNonRecursive, data, opts)
}

// ModifiedRecursive computes modified-recursive trimmed means per participant × condition
func (t *Trimmer) ModifiedRecursive(ctx context.Context, data *trial.Dataset, opts Options) (*trial.ResultTable, error) {
	return t.Run(ctx, trial.MethodModifiedRecursive, data, opts)
}

// HybridRecursive averages the non-recursive and modified-recursive means per cell
func (t *Trimmer) HybridRecursive(ctx context.Context, data *trial.Dataset, opts Options) (*trial.ResultTable, error) {
	return t.Run(ctx, trial.MethodHybridRecursive, data, opts)
}

// Strategy returns the per-cell trimmer for method
func (t *Trimmer) Strategy(method trial.Method) (CellTrimmer, error) {
	switch method {
	case trial.MethodNonRecursive:
		return NonRecursiveCell(t.tables.NonRecursive), nil
	case trial.MethodModifiedRecursive:
		return ModifiedRecursiveCell(t.tables.ModifiedRecursive), nil
	case trial.MethodHybridRecursive:
		return HybridCell(
			NonRecursiveCell(t.tables.NonRecursive),
			ModifiedRecursiveCell(t.tables.ModifiedRecursive),
		), nil
	}
	return nil, fmt.Errorf("%w: %q", core.ErrUnknownTrimmingMethod, method)
}

// Run executes method over data. Invalid options or malformed records fail the
// whole call with a CONFIG_INVALID error; sparse cells never do.
func (t *Trimmer) Run(ctx context.Context, method trial.Method, data *trial.Dataset, opts Options) (*trial.ResultTable, error) {
	strategy, err := t.Strategy(method)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	if data == nil {
		return nil, errors.InvalidInput("dataset is nil")
	}

	table, err := t.driver.Run(ctx, data, opts, method, strategy)
	if err != nil {
		if core.IsConfigurationError(err) {
			return nil, errors.WithCode(errors.CodeConfigInvalid, err)
		}
		return nil, errors.Wrapf(err, "%s trimming", method)
	}

	rows, cols := table.Shape()
	t.logger.Debug("%s run %s: %d×%d table, %d undefined cells",
		method, table.RunID, rows, cols, table.Summary.UndefinedCells)
	return table, nil
}
