package trim

import (
	"context"
	"errors"
	"math"
	"testing"

	"rttrim/domain/core"
	"rttrim/domain/trial"
	"rttrim/internal/criterion"
	"rttrim/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meanStrategy(rts []float64) trial.CellValue {
	return meanOf(rts)
}

// sparseDataset: p3 only has an error trial, c3 only appears in that trial
func sparseDataset() *trial.Dataset {
	return trial.NewDataset([]trial.Trial{
		{Participant: "p2", Condition: "c2", RT: 400, Correct: true},
		{Participant: "p1", Condition: "c1", RT: 300, Correct: true},
		{Participant: "p2", Condition: "c1", RT: 350, Correct: true},
		{Participant: "p1", Condition: "c2", RT: 500, Correct: true},
		{Participant: "p1", Condition: "c2", RT: 100, Correct: true},
		{Participant: "p3", Condition: "c3", RT: 450, Correct: false},
		{Participant: "p2", Condition: "c2", RT: 420, Correct: false},
	})
}

func TestDriver_ShapeAndOrderFromUnfilteredData(t *testing.T) {
	opts := DefaultOptions()
	opts.MinRT = 150

	table, err := NewDriver(nil).Run(context.Background(), sparseDataset(), opts, trial.MethodNonRecursive, meanStrategy)
	require.NoError(t, err)

	assert.Equal(t, []string{"p2", "p1", "p3"}, table.Participants)
	assert.Equal(t, []string{"c2", "c1", "c3"}, table.Conditions)
	rows, cols := table.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
	require.Len(t, table.Cells, 3)
	for _, row := range table.Cells {
		assert.Len(t, row, 3)
	}

	p3, ok := table.Row("p3")
	require.True(t, ok)
	for _, cell := range p3 {
		assert.False(t, cell.Defined, "p3 has only error trials")
	}
	for _, p := range table.Participants {
		cell, _ := table.Get(p, "c3")
		assert.False(t, cell.Defined, "c3 has only error trials")
	}

	cell, _ := table.Get("p2", "c2")
	assert.Equal(t, trial.Defined(400), cell, "error trial at 420 must be ignored")
	cell, _ = table.Get("p1", "c2")
	assert.Equal(t, trial.Defined(500), cell, "100 ms trial is below the floor")
	cell, _ = table.Get("p1", "c1")
	assert.Equal(t, trial.Defined(300), cell)
}

func TestDriver_AllErrorCellIsUndefinedNotZero(t *testing.T) {
	data := trial.NewDataset([]trial.Trial{
		{Participant: "p1", Condition: "go", RT: 380, Correct: true},
		{Participant: "p1", Condition: "go", RT: 395, Correct: true},
		{Participant: "p1", Condition: "nogo", RT: 410, Correct: false},
		{Participant: "p1", Condition: "nogo", RT: 430, Correct: false},
	})

	table, err := NewDriver(nil).Run(context.Background(), data, DefaultOptions(), trial.MethodNonRecursive, meanStrategy)
	require.NoError(t, err)

	cell, ok := table.Get("p1", "nogo")
	require.True(t, ok)
	assert.False(t, cell.Defined)
	assert.Equal(t, trial.UndefinedLabel, cell.String())
	assert.Equal(t, 1, table.Summary.UndefinedCells)
}

func TestDriver_KeepErrorsWhenNotOmitted(t *testing.T) {
	data := &trial.Dataset{
		Headers: []string{"participant", "condition", "rt"},
		Records: []trial.Record{
			{"participant": "p1", "condition": "c1", "rt": "400"},
			{"participant": "p1", "condition": "c1", "rt": "420"},
		},
	}
	opts := DefaultOptions()
	opts.OmitErrors = false

	table, err := NewDriver(nil).Run(context.Background(), data, opts, trial.MethodNonRecursive, meanStrategy)
	require.NoError(t, err, "accuracy column is not needed when errors are kept")

	cell, _ := table.Get("p1", "c1")
	assert.Equal(t, trial.Defined(410), cell)
	assert.Zero(t, table.Summary.ErrorTrials)
}

func TestDriver_MinRTIsExclusiveFloor(t *testing.T) {
	data := trial.NewDataset([]trial.Trial{
		{Participant: "p1", Condition: "c1", RT: 150, Correct: true},
		{Participant: "p1", Condition: "c1", RT: 151, Correct: true},
	})
	opts := DefaultOptions()
	opts.MinRT = 150

	table, err := NewDriver(nil).Run(context.Background(), data, opts, trial.MethodNonRecursive, meanStrategy)
	require.NoError(t, err)

	cell, _ := table.Get("p1", "c1")
	assert.Equal(t, trial.Defined(151), cell, "rt equal to minRT is dropped")
	assert.Equal(t, 1, table.Summary.BelowMinRT)
}

func TestDriver_Rounding(t *testing.T) {
	data := trial.NewDataset([]trial.Trial{{Participant: "p1", Condition: "c1", RT: 1, Correct: true}})
	fixed := func([]float64) trial.CellValue { return trial.Defined(203.5555) }

	opts := DefaultOptions()
	opts.Digits = 2
	table, err := NewDriver(nil).Run(context.Background(), data, opts, trial.MethodNonRecursive, fixed)
	require.NoError(t, err)

	cell, _ := table.Get("p1", "c1")
	assert.Equal(t, 203.56, cell.Value)
	assert.Equal(t, "203.56", cell.Format(table.Digits))
}

func TestDriver_EmptyCellNeverReachesStrategy(t *testing.T) {
	data := sparseDataset()
	calls := 0
	strategy := func(rts []float64) trial.CellValue {
		calls++
		if len(rts) == 0 {
			t.Error("strategy called with an empty cell")
		}
		return meanOf(rts)
	}

	_, err := NewDriver(nil).Run(context.Background(), data, DefaultOptions(), trial.MethodNonRecursive, strategy)
	require.NoError(t, err)
	assert.Equal(t, 4, calls, "only the four populated cells are trimmed")
}

func TestDriver_Summary(t *testing.T) {
	opts := DefaultOptions()
	opts.MinRT = 150

	table, err := NewDriver(nil).Run(context.Background(), sparseDataset(), opts, trial.MethodNonRecursive, meanStrategy)
	require.NoError(t, err)

	assert.Equal(t, trial.FilterSummary{
		TotalTrials:    7,
		ErrorTrials:    2,
		BelowMinRT:     1,
		EligibleTrials: 4,
		UndefinedCells: 5,
	}, table.Summary)
}

func TestDriver_ParallelMatchesSequential(t *testing.T) {
	cfg := testkit.DefaultRTConfig()
	cfg.Participants = 25
	cfg.Conditions = 4
	data := testkit.NewRTGenerator(cfg).Generate()
	strategy := HybridCell(
		NonRecursiveCell(criterion.NonRecursive()),
		ModifiedRecursiveCell(criterion.ModifiedRecursive()),
	)

	opts := DefaultOptions()
	opts.MinRT = 150
	sequential, err := NewDriver(nil).Run(context.Background(), data, opts, trial.MethodHybridRecursive, strategy)
	require.NoError(t, err)

	opts.Workers = 8
	parallel, err := NewDriver(nil).Run(context.Background(), data, opts, trial.MethodHybridRecursive, strategy)
	require.NoError(t, err)

	assert.Equal(t, sequential.Participants, parallel.Participants)
	assert.Equal(t, sequential.Conditions, parallel.Conditions)
	assert.Equal(t, sequential.Cells, parallel.Cells)
	assert.Equal(t, sequential.Summary, parallel.Summary)
	assert.NotEqual(t, sequential.RunID, parallel.RunID)
}

func TestDriver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := DefaultOptions()
	opts.Workers = 4
	_, err := NewDriver(nil).Run(ctx, sparseDataset(), opts, trial.MethodNonRecursive, meanStrategy)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDriver_ConfigurationErrors(t *testing.T) {
	good := func() *trial.Dataset { return sparseDataset() }

	tests := []struct {
		name   string
		data   func() *trial.Dataset
		mutate func(*Options)
		want   error
	}{
		{
			name:   "negative digits",
			data:   good,
			mutate: func(o *Options) { o.Digits = -1 },
			want:   core.ErrInvalidDigits,
		},
		{
			name:   "nan min rt",
			data:   good,
			mutate: func(o *Options) { o.MinRT = math.NaN() },
			want:   core.ErrInvalidMinRT,
		},
		{
			name:   "zero workers",
			data:   good,
			mutate: func(o *Options) { o.Workers = 0 },
			want:   core.ErrInvalidWorkers,
		},
		{
			name:   "negative workers",
			data:   good,
			mutate: func(o *Options) { o.Workers = -2 },
			want:   core.ErrInvalidWorkers,
		},
		{
			name:   "unknown rt column",
			data:   good,
			mutate: func(o *Options) { o.RTField = "latency" },
			want:   core.ErrMissingField,
		},
		{
			name:   "empty participant field name",
			data:   good,
			mutate: func(o *Options) { o.ParticipantField = "" },
			want:   core.ErrMissingField,
		},
		{
			name: "non-numeric rt",
			data: func() *trial.Dataset {
				ds := sparseDataset()
				ds.Records[3]["rt"] = "slow"
				return ds
			},
			want: core.ErrMalformedTrial,
		},
		{
			name: "infinite rt",
			data: func() *trial.Dataset {
				ds := sparseDataset()
				ds.Records[0]["rt"] = "+Inf"
				return ds
			},
			want: core.ErrMalformedTrial,
		},
		{
			name: "accuracy not boolean-like",
			data: func() *trial.Dataset {
				ds := sparseDataset()
				ds.Records[1]["accuracy"] = "maybe"
				return ds
			},
			want: core.ErrMalformedTrial,
		},
		{
			name: "record missing participant",
			data: func() *trial.Dataset {
				ds := sparseDataset()
				delete(ds.Records[2], "participant")
				return ds
			},
			want: core.ErrMalformedTrial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.mutate != nil {
				tt.mutate(&opts)
			}
			table, err := NewDriver(nil).Run(context.Background(), tt.data(), opts, trial.MethodNonRecursive, meanStrategy)
			assert.Nil(t, table)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestParseAccuracy(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"1", true, false},
		{"1.0", true, false},
		{"0", false, false},
		{"2", false, false},
		{"true", true, false},
		{"FALSE", false, false},
		{"NaN", false, true},
		{"yes", false, true},
	}

	for _, tt := range tests {
		got, err := parseAccuracy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAccuracy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAccuracy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
