package ports

import (
	"context"

	"rttrim/domain/trial"
)

// ResultWriter persists a result table. Undefined cells must stay
// distinguishable from any numeric value in the output.
type ResultWriter interface {
	Write(ctx context.Context, path string, table *trial.ResultTable) error
}
