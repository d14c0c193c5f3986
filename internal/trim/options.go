package trim

import (
	"fmt"
	"math"

	"rttrim/domain/core"
	"rttrim/domain/trial"
)

// Options configures one invocation of a trimming procedure
type Options struct {
	// MinRT is the floor: trials with rt <= MinRT never reach a cell
	MinRT float64

	ParticipantField string
	ConditionField   string
	RTField          string
	AccuracyField    string

	// OmitErrors drops trials whose accuracy is not 1 before trimming
	OmitErrors bool

	// Digits is the number of decimals kept in the result table
	Digits int

	// Workers is at least 1; above 1 cells are computed concurrently
	Workers int
}

// DefaultOptions returns the conventional field names, error omission and 3 decimals
func DefaultOptions() Options {
	return Options{
		ParticipantField: trial.DefaultParticipantField,
		ConditionField:   trial.DefaultConditionField,
		RTField:          trial.DefaultRTField,
		AccuracyField:    trial.DefaultAccuracyField,
		OmitErrors:       true,
		Digits:           3,
		Workers:          1,
	}
}

// Validate checks the options against the dataset headers
func (o Options) Validate(data *trial.Dataset) error {
	if o.Digits < 0 {
		return fmt.Errorf("%w: %d, must be >= 0", core.ErrInvalidDigits, o.Digits)
	}
	if math.IsNaN(o.MinRT) || math.IsInf(o.MinRT, 0) || o.MinRT < 0 {
		return fmt.Errorf("%w: %v, must be a finite value >= 0", core.ErrInvalidMinRT, o.MinRT)
	}
	if o.Workers < 1 {
		return fmt.Errorf("%w: %d, must be >= 1", core.ErrInvalidWorkers, o.Workers)
	}

	for _, f := range o.fields() {
		if f.name == "" {
			return fmt.Errorf("%w: %s field name is empty", core.ErrMissingField, f.role)
		}
		if !data.HasHeader(f.name) {
			return core.NewMissingFieldError(f.role, f.name)
		}
	}
	return nil
}

type field struct {
	role string
	name string
}

// fields lists the columns the procedure reads. Accuracy is only read when errors are omitted.
func (o Options) fields() []field {
	fs := []field{
		{"participant", o.ParticipantField},
		{"condition", o.ConditionField},
		{"rt", o.RTField},
	}
	if o.OmitErrors {
		fs = append(fs, field{"accuracy", o.AccuracyField})
	}
	return fs
}
