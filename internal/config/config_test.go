package config

import (
	"testing"

	"rttrim/internal"
	"rttrim/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"RTTRIM_MIN_RT", "RTTRIM_DIGITS", "RTTRIM_OMIT_ERRORS", "RTTRIM_WORKERS",
		"RTTRIM_PARTICIPANT_FIELD", "RTTRIM_CONDITION_FIELD", "RTTRIM_RT_FIELD",
		"RTTRIM_ACCURACY_FIELD", "RTTRIM_NONRECURSIVE_TABLE", "RTTRIM_MODIFIED_TABLE",
		"LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.Trim.MinRT)
	assert.Equal(t, 3, cfg.Trim.Digits)
	assert.True(t, cfg.Trim.OmitErrors)
	assert.Equal(t, 1, cfg.Trim.Workers)
	assert.Equal(t, "participant", cfg.Trim.ParticipantField)
	assert.Equal(t, "condition", cfg.Trim.ConditionField)
	assert.Equal(t, "rt", cfg.Trim.RTField)
	assert.Equal(t, "accuracy", cfg.Trim.AccuracyField)
	assert.Empty(t, cfg.Criterion.NonRecursiveTable)
	assert.Equal(t, internal.LogLevelInfo, cfg.Log.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RTTRIM_MIN_RT", "150")
	t.Setenv("RTTRIM_DIGITS", "2")
	t.Setenv("RTTRIM_OMIT_ERRORS", "false")
	t.Setenv("RTTRIM_WORKERS", "4")
	t.Setenv("RTTRIM_RT_FIELD", "latency")
	t.Setenv("RTTRIM_MODIFIED_TABLE", "tables/modified.csv")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 150.0, cfg.Trim.MinRT)
	assert.Equal(t, 2, cfg.Trim.Digits)
	assert.False(t, cfg.Trim.OmitErrors)
	assert.Equal(t, 4, cfg.Trim.Workers)
	assert.Equal(t, "latency", cfg.Trim.RTField)
	assert.Equal(t, "tables/modified.csv", cfg.Criterion.ModifiedRecursiveTable)
	assert.Equal(t, internal.LogLevelDebug, cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric min rt", "RTTRIM_MIN_RT", "fast"},
		{"negative min rt", "RTTRIM_MIN_RT", "-1"},
		{"non-integer digits", "RTTRIM_DIGITS", "2.5"},
		{"negative digits", "RTTRIM_DIGITS", "-1"},
		{"zero workers", "RTTRIM_WORKERS", "0"},
		{"non-integer workers", "RTTRIM_WORKERS", "four"},
		{"misspelled omit errors", "RTTRIM_OMIT_ERRORS", "flase"},
		{"numeric omit errors out of range", "RTTRIM_OMIT_ERRORS", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
