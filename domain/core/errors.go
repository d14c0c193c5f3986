package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors
	ErrInvalidOptions        = errors.New("invalid trimming options")
	ErrMissingField          = fmt.Errorf("%w: missing field", ErrInvalidOptions)
	ErrInvalidDigits         = fmt.Errorf("%w: digits", ErrInvalidOptions)
	ErrInvalidMinRT          = fmt.Errorf("%w: minimum RT", ErrInvalidOptions)
	ErrInvalidWorkers        = fmt.Errorf("%w: workers", ErrInvalidOptions)
	ErrInvalidCriterionTable = errors.New("invalid criterion table")
	ErrMalformedTrial        = errors.New("malformed trial record")
	ErrSampleSizeOutOfRange  = errors.New("sample size out of range")
	ErrUnknownTrimmingMethod = errors.New("unknown trimming method")
	ErrUnsupportedFileFormat = errors.New("unsupported file format")
)

// NewMissingFieldError reports a field name that is not a dataset header
func NewMissingFieldError(role, name string) error {
	return fmt.Errorf("%w: %s field %q", ErrMissingField, role, name)
}

// NewMalformedTrialError reports a record whose value cannot be parsed
func NewMalformedTrialError(row int, field, value string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: row %d field %q value %q: %v", ErrMalformedTrial, row, field, value, err)
	}
	return fmt.Errorf("%w: row %d field %q value %q", ErrMalformedTrial, row, field, value)
}

// NewSampleSizeError reports a criterion lookup below the table range
func NewSampleSizeError(n int) error {
	return fmt.Errorf("%w: %d", ErrSampleSizeOutOfRange, n)
}

// IsConfigurationError reports whether err stems from caller-supplied settings or data shape
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidOptions) ||
		errors.Is(err, ErrMalformedTrial) ||
		errors.Is(err, ErrInvalidCriterionTable)
}
