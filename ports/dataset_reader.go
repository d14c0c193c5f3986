package ports

import (
	"context"

	"rttrim/domain/trial"
)

// DatasetReader loads trial records from a file
type DatasetReader interface {
	Read(ctx context.Context, path string) (*trial.Dataset, error)
}
