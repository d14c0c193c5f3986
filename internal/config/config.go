package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"rttrim/domain/trial"
	"rttrim/internal"
	"rttrim/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Trim      TrimConfig
	Criterion CriterionConfig
	Log       LogConfig
}

// TrimConfig holds the defaults for the trimming procedures
type TrimConfig struct {
	MinRT            float64
	Digits           int
	OmitErrors       bool
	Workers          int
	ParticipantField string
	ConditionField   string
	RTField          string
	AccuracyField    string
}

// CriterionConfig points at optional CSV overrides of the built-in multiplier tables
type CriterionConfig struct {
	NonRecursiveTable      string
	ModifiedRecursiveTable string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level internal.LogLevel
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	trimConfig, err := loadTrimConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load trim configuration")
	}

	config := &Config{
		Trim:      *trimConfig,
		Criterion: *loadCriterionConfig(),
		Log:       *loadLogConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadTrimConfig() (*TrimConfig, error) {
	minRT, err := getEnvFloatStrict("RTTRIM_MIN_RT", 0)
	if err != nil {
		return nil, err
	}
	digits, err := getEnvIntStrict("RTTRIM_DIGITS", 3)
	if err != nil {
		return nil, err
	}
	omitErrors, err := getEnvBoolStrict("RTTRIM_OMIT_ERRORS", true)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvIntStrict("RTTRIM_WORKERS", 1)
	if err != nil {
		return nil, err
	}

	return &TrimConfig{
		MinRT:            minRT,
		Digits:           digits,
		OmitErrors:       omitErrors,
		Workers:          workers,
		ParticipantField: getEnvOrDefault("RTTRIM_PARTICIPANT_FIELD", trial.DefaultParticipantField),
		ConditionField:   getEnvOrDefault("RTTRIM_CONDITION_FIELD", trial.DefaultConditionField),
		RTField:          getEnvOrDefault("RTTRIM_RT_FIELD", trial.DefaultRTField),
		AccuracyField:    getEnvOrDefault("RTTRIM_ACCURACY_FIELD", trial.DefaultAccuracyField),
	}, nil
}

func loadCriterionConfig() *CriterionConfig {
	return &CriterionConfig{
		NonRecursiveTable:      getEnvOrDefault("RTTRIM_NONRECURSIVE_TABLE", ""),
		ModifiedRecursiveTable: getEnvOrDefault("RTTRIM_MODIFIED_TABLE", ""),
	}
}

func loadLogConfig() *LogConfig {
	level, _ := internal.ParseLogLevel(os.Getenv("LOG_LEVEL"))
	return &LogConfig{Level: level}
}

func validateConfig(config *Config) error {
	if config.Trim.Digits < 0 {
		return errors.ConfigInvalid("RTTRIM_DIGITS must be >= 0")
	}
	if math.IsNaN(config.Trim.MinRT) || math.IsInf(config.Trim.MinRT, 0) || config.Trim.MinRT < 0 {
		return errors.ConfigInvalid("RTTRIM_MIN_RT must be a finite value >= 0")
	}
	if config.Trim.Workers < 1 {
		return errors.ConfigInvalid("RTTRIM_WORKERS must be >= 1")
	}
	for name, field := range map[string]string{
		"RTTRIM_PARTICIPANT_FIELD": config.Trim.ParticipantField,
		"RTTRIM_CONDITION_FIELD":   config.Trim.ConditionField,
		"RTTRIM_RT_FIELD":          config.Trim.RTField,
		"RTTRIM_ACCURACY_FIELD":    config.Trim.AccuracyField,
	} {
		if field == "" {
			return errors.ConfigInvalid(name + " cannot be empty")
		}
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Strict variants reject unparsable values instead of falling back to the default
func getEnvFloatStrict(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s=%q is not a number", key, value))
	}
	return floatValue, nil
}

func getEnvIntStrict(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s=%q is not an integer", key, value))
	}
	return intValue, nil
}

func getEnvBoolStrict(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.ConfigInvalid(fmt.Sprintf("%s=%q is not a boolean", key, value))
	}
	return boolValue, nil
}
