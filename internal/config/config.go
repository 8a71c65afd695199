package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/schemalens/schemalens/internal/core/domain"
)

type Config struct {
	// Per-environment database connections. Keyed by the closed
	// environment set; an environment with no URL cannot be analyzed.
	DatabaseURLs map[domain.Environment]string

	// Extraction.
	Schema        string // catalog namespace to analyze (default "public")
	MaxSampleRows int    // default sample bound when a caller omits it
	SampleFanout  int    // concurrent per-table reads during extraction

	// Scoring.
	ScorePolicyFile string // optional path to score-policy YAML

	// Logging.
	LogLevel slog.Level

	// Observability.
	OTelEnabled bool // enable OpenTelemetry tracing and metrics

	// Auditing.
	AuditLog string // path to NDJSON audit log file; empty disables auditing
}

// Overrides holds CLI flag values that override environment variables.
// Pointer fields distinguish "not set" from zero values.
type Overrides struct {
	LogLevel        *string
	Schema          *string
	MaxSampleRows   *int
	SampleFanout    *int
	ScorePolicyFile *string
	OTelEnabled     bool
	AuditLog        string
}

// Load builds a Config from environment variables, then applies CLI
// overrides, then validates the result.
func Load(overrides Overrides) (*Config, error) {
	cfg := defaults()

	if err := loadEnvVars(cfg); err != nil {
		return nil, err
	}
	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// defaults returns a Config populated with default values.
func defaults() *Config {
	return &Config{
		DatabaseURLs:  make(map[domain.Environment]string),
		Schema:        "public",
		MaxSampleRows: 5,
		SampleFanout:  4,
	}
}

// loadEnvVars reads all supported environment variables into cfg.
// Database URLs come from DATABASE_URL_DEVELOPMENT, DATABASE_URL_STAGING,
// and DATABASE_URL_PRODUCTION.
func loadEnvVars(cfg *Config) error {
	for _, env := range domain.Environments() {
		key := "DATABASE_URL_" + strings.ToUpper(string(env))
		if v := os.Getenv(key); v != "" {
			cfg.DatabaseURLs[env] = v
		}
	}

	if v := os.Getenv("SCHEMA"); v != "" {
		cfg.Schema = strings.TrimSpace(v)
	}

	if v := os.Getenv("MAX_SAMPLE_ROWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid MAX_SAMPLE_ROWS value %q: must be a non-negative integer", v)
		}
		cfg.MaxSampleRows = n
	}

	if v := os.Getenv("SAMPLE_FANOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid SAMPLE_FANOUT value %q: must be a positive integer", v)
		}
		cfg.SampleFanout = n
	}

	cfg.ScorePolicyFile = os.Getenv("SCORE_POLICY_FILE")
	cfg.AuditLog = os.Getenv("AUDIT_LOG")

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}

	if v := os.Getenv("OTEL_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid OTEL_ENABLED value %q: %w", v, err)
		}
		cfg.OTelEnabled = b
	}

	return nil
}

// applyOverrides applies CLI flag values on top of the env-loaded config.
func applyOverrides(cfg *Config, o Overrides) error {
	if o.LogLevel != nil {
		level, err := parseLogLevel(*o.LogLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	if o.Schema != nil && *o.Schema != "" {
		cfg.Schema = *o.Schema
	}
	if o.MaxSampleRows != nil {
		if *o.MaxSampleRows < 0 {
			return fmt.Errorf("invalid --max-sample-rows value: must be a non-negative integer")
		}
		cfg.MaxSampleRows = *o.MaxSampleRows
	}
	if o.SampleFanout != nil {
		if *o.SampleFanout <= 0 {
			return fmt.Errorf("invalid --sample-fanout value: must be a positive integer")
		}
		cfg.SampleFanout = *o.SampleFanout
	}
	if o.ScorePolicyFile != nil {
		cfg.ScorePolicyFile = *o.ScorePolicyFile
	}

	if o.AuditLog != "" {
		cfg.AuditLog = o.AuditLog
	}
	cfg.OTelEnabled = cfg.OTelEnabled || o.OTelEnabled

	return nil
}

// validate checks cross-field constraints on the final config.
func validate(cfg *Config) error {
	if len(cfg.DatabaseURLs) == 0 {
		return fmt.Errorf("no databases configured: set at least one of DATABASE_URL_DEVELOPMENT, DATABASE_URL_STAGING, DATABASE_URL_PRODUCTION")
	}
	if cfg.Schema == "" {
		return fmt.Errorf("SCHEMA must not be empty")
	}
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL value %q: must be debug, info, warn, or error", s)
	}
}
