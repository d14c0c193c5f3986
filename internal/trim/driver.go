package trim

import (
	"context"

	"rttrim/domain/trial"
	"rttrim/internal"

	"golang.org/x/sync/errgroup"
)

// Driver partitions a dataset by participant × condition and applies a
// CellTrimmer to every cell. All procedures share it, so partitioning,
// filtering and rounding are identical between them.
type Driver struct {
	logger *internal.Logger
}

// NewDriver creates a driver logging through logger (nil discards)
func NewDriver(logger *internal.Logger) *Driver {
	if logger == nil {
		logger = internal.Discard()
	}
	return &Driver{logger: logger.WithComponent("driver")}
}

type cellKey struct {
	participant int
	condition   int
}

// Run validates opts, filters data and fills a fresh result table.
//
// Rows and columns come from the unfiltered data: a participant or condition
// seen only in error or sub-floor trials still gets a row or column, and its
// cells are undefined. Every pair of the cross product is reported, whether
// or not it was observed.
func (d *Driver) Run(ctx context.Context, data *trial.Dataset, opts Options, method trial.Method, strategy CellTrimmer) (*trial.ResultTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := opts.Validate(data); err != nil {
		return nil, err
	}

	trials, err := extractTrials(data, opts)
	if err != nil {
		return nil, err
	}

	participants, conditions, pIndex, cIndex := enumerate(trials)
	table := trial.NewResultTable(method, participants, conditions, opts.Digits)
	table.Summary.TotalTrials = len(trials)

	cells := make(map[cellKey][]float64)
	for _, t := range trials {
		if opts.OmitErrors && !t.Correct {
			table.Summary.ErrorTrials++
			continue
		}
		if t.RT <= opts.MinRT {
			table.Summary.BelowMinRT++
			continue
		}
		key := cellKey{participant: pIndex[t.Participant], condition: cIndex[t.Condition]}
		cells[key] = append(cells[key], t.RT)
		table.Summary.EligibleTrials++
	}

	d.logger.Debug("%s: %d trials, %d errors dropped, %d at or below %v, %d participants × %d conditions",
		method, table.Summary.TotalTrials, table.Summary.ErrorTrials, table.Summary.BelowMinRT,
		opts.MinRT, len(participants), len(conditions))

	compute := func(pi, ci int) {
		table.Cells[pi][ci] = d.trimCell(cells[cellKey{pi, ci}], opts.Digits, strategy)
	}

	if opts.Workers > 1 {
		if err := d.runParallel(ctx, len(participants), len(conditions), opts.Workers, compute); err != nil {
			return nil, err
		}
	} else {
		for pi := range participants {
			for ci := range conditions {
				compute(pi, ci)
			}
		}
	}

	for pi, row := range table.Cells {
		for ci, cell := range row {
			if !cell.Defined {
				table.Summary.UndefinedCells++
				d.logger.Trace("%s: cell %s/%s undefined (%d eligible trials)",
					method, participants[pi], conditions[ci], len(cells[cellKey{pi, ci}]))
			}
		}
	}

	return table, nil
}

// trimCell guards the sample-size lower bound: an empty cell never reaches the
// trimmer or its criterion lookup.
func (d *Driver) trimCell(rts []float64, digits int, strategy CellTrimmer) trial.CellValue {
	if len(rts) == 0 {
		return trial.Undefined()
	}
	v := strategy(rts)
	if !v.Defined {
		return v
	}
	return trial.Defined(Round(v.Value, digits))
}

// runParallel computes every cell with at most workers goroutines. Each
// goroutine writes only its own grid slot.
func (d *Driver) runParallel(ctx context.Context, rows, cols, workers int, compute func(pi, ci int)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for pi := 0; pi < rows; pi++ {
		for ci := 0; ci < cols; ci++ {
			pi, ci := pi, ci
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				compute(pi, ci)
				return nil
			})
		}
	}
	return g.Wait()
}
