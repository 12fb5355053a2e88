package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"randsys/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Study   StudyConfig   `validate:"required"`
	Search  SearchConfig  `validate:"required"`
	Output  OutputConfig  `validate:"required"`
	Logging LoggingConfig `validate:"required"`
}

// StudyConfig holds the measurement settings shared by search and measurement
type StudyConfig struct {
	AlphabetSize int     `validate:"gte=1"`
	Steps        int     `validate:"gte=1"`
	Trials       int     `validate:"gte=1"`
	MinEntropy   float64 `validate:"gte=0,lte=1"`

	// Seed 0 means "derive from the clock"
	Seed uint64
}

// SearchConfig bounds the candidate grids
type SearchConfig struct {
	MaxSizeFactor           int `validate:"gte=1"`
	MaxRefillThreshold      int `validate:"gte=1"`
	DecreaseFactorDivisions int `validate:"gte=1"`
}

// OutputConfig holds result file settings
type OutputConfig struct {
	Path       string `validate:"required"`
	Format     string `validate:"omitempty,oneof=csv xlsx"`
	ReportPath string
}

// LoggingConfig holds logrus settings
type LoggingConfig struct {
	Level  string `validate:"required,oneof=trace debug info warn warning error fatal panic"`
	Format string `validate:"required,oneof=text json"`
}

// Defaults returns the configuration used when no environment overrides are set
func Defaults() *Config {
	return &Config{
		Study: StudyConfig{
			AlphabetSize: 6,
			Steps:        25,
			Trials:       10000,
			MinEntropy:   0.9,
		},
		Search: SearchConfig{
			MaxSizeFactor:           10,
			MaxRefillThreshold:      10,
			DecreaseFactorDivisions: 100,
		},
		Output: OutputConfig{
			Path: "out.csv",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := Defaults()

	config.Study = loadStudyConfig(config.Study)
	config.Search = loadSearchConfig(config.Search)
	config.Output = loadOutputConfig(config.Output)
	config.Logging = loadLoggingConfig(config.Logging)

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadStudyConfig(d StudyConfig) StudyConfig {
	return StudyConfig{
		AlphabetSize: getEnvIntOrDefault("RANDSYS_VALUES", d.AlphabetSize),
		Steps:        getEnvIntOrDefault("RANDSYS_STEPS", d.Steps),
		Trials:       getEnvIntOrDefault("RANDSYS_TRIALS", d.Trials),
		MinEntropy:   getEnvFloatOrDefault("RANDSYS_MIN_ENTROPY", d.MinEntropy),
		Seed:         getEnvUintOrDefault("RANDSYS_SEED", d.Seed),
	}
}

func loadSearchConfig(d SearchConfig) SearchConfig {
	return SearchConfig{
		MaxSizeFactor:           getEnvIntOrDefault("RANDSYS_MAX_SIZE_FACTOR", d.MaxSizeFactor),
		MaxRefillThreshold:      getEnvIntOrDefault("RANDSYS_MAX_REFILL_THRESHOLD", d.MaxRefillThreshold),
		DecreaseFactorDivisions: getEnvIntOrDefault("RANDSYS_DECREASE_DIVISIONS", d.DecreaseFactorDivisions),
	}
}

func loadOutputConfig(d OutputConfig) OutputConfig {
	return OutputConfig{
		Path:       getEnvOrDefault("RANDSYS_OUTPUT", d.Path),
		Format:     strings.ToLower(getEnvOrDefault("RANDSYS_FORMAT", d.Format)),
		ReportPath: getEnvOrDefault("RANDSYS_REPORT", d.ReportPath),
	}
}

func loadLoggingConfig(d LoggingConfig) LoggingConfig {
	return LoggingConfig{
		Level:  strings.ToLower(getEnvOrDefault("LOG_LEVEL", d.Level)),
		Format: strings.ToLower(getEnvOrDefault("LOG_FORMAT", d.Format)),
	}
}

// Validate checks every field against its validate tag
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ConfigInvalid(err.Error()), "invalid configuration")
	}
	return nil
}

// ResolvedFormat is the output format, inferred from the output path
// extension when not set explicitly. Unknown extensions default to csv.
func (o OutputConfig) ResolvedFormat() string {
	if o.Format != "" {
		return o.Format
	}
	switch strings.ToLower(filepath.Ext(o.Path)) {
	case ".xlsx":
		return "xlsx"
	default:
		return "csv"
	}
}

// Params flattens the settings that determine a study's results, for hashing
func (c *Config) Params() map[string]interface{} {
	return map[string]interface{}{
		"alphabet_size":             c.Study.AlphabetSize,
		"steps":                     c.Study.Steps,
		"trials":                    c.Study.Trials,
		"min_entropy":               c.Study.MinEntropy,
		"max_size_factor":           c.Search.MaxSizeFactor,
		"max_refill_threshold":      c.Search.MaxRefillThreshold,
		"decrease_factor_divisions": c.Search.DecreaseFactorDivisions,
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvUintOrDefault(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return uintValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
