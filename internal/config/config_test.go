package config

import (
	"log/slog"
	"testing"

	"github.com/schemalens/schemalens/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Valid(t *testing.T) {
	t.Setenv("DATABASE_URL_DEVELOPMENT", "postgres://localhost/dev")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/dev", cfg.DatabaseURLs[domain.EnvDevelopment])
	assert.Equal(t, "public", cfg.Schema)
	assert.Equal(t, 5, cfg.MaxSampleRows)
	assert.Equal(t, 4, cfg.SampleFanout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.OTelEnabled)
}

func TestLoad_AllEnvironments(t *testing.T) {
	t.Setenv("DATABASE_URL_DEVELOPMENT", "postgres://localhost/dev")
	t.Setenv("DATABASE_URL_STAGING", "postgres://localhost/staging")
	t.Setenv("DATABASE_URL_PRODUCTION", "postgres://localhost/prod")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)

	assert.Len(t, cfg.DatabaseURLs, 3)
	assert.Equal(t, "postgres://localhost/staging", cfg.DatabaseURLs[domain.EnvStaging])
	assert.Equal(t, "postgres://localhost/prod", cfg.DatabaseURLs[domain.EnvProduction])
}

func TestLoad_NoDatabases(t *testing.T) {
	_, err := Load(Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no databases configured")
}

func TestLoad_EnvVars(t *testing.T) {
	t.Setenv("DATABASE_URL_PRODUCTION", "postgres://localhost/prod")
	t.Setenv("SCHEMA", "analytics")
	t.Setenv("MAX_SAMPLE_ROWS", "20")
	t.Setenv("SAMPLE_FANOUT", "8")
	t.Setenv("SCORE_POLICY_FILE", "/tmp/policy.yaml")
	t.Setenv("AUDIT_LOG", "/tmp/audit.ndjson")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "analytics", cfg.Schema)
	assert.Equal(t, 20, cfg.MaxSampleRows)
	assert.Equal(t, 8, cfg.SampleFanout)
	assert.Equal(t, "/tmp/policy.yaml", cfg.ScorePolicyFile)
	assert.Equal(t, "/tmp/audit.ndjson", cfg.AuditLog)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.OTelEnabled)
}

func TestLoad_OverridesBeatEnvVars(t *testing.T) {
	t.Setenv("DATABASE_URL_DEVELOPMENT", "postgres://localhost/dev")
	t.Setenv("SCHEMA", "analytics")
	t.Setenv("MAX_SAMPLE_ROWS", "20")

	schema := "reporting"
	maxRows := 3
	logLevel := "warn"
	cfg, err := Load(Overrides{
		Schema:        &schema,
		MaxSampleRows: &maxRows,
		LogLevel:      &logLevel,
		AuditLog:      "/tmp/audit.ndjson",
	})
	require.NoError(t, err)

	assert.Equal(t, "reporting", cfg.Schema)
	assert.Equal(t, 3, cfg.MaxSampleRows)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, "/tmp/audit.ndjson", cfg.AuditLog)
}

func TestLoad_InvalidMaxSampleRows(t *testing.T) {
	t.Setenv("DATABASE_URL_DEVELOPMENT", "postgres://localhost/dev")
	t.Setenv("MAX_SAMPLE_ROWS", "-1")

	_, err := Load(Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_SAMPLE_ROWS")
}

func TestLoad_InvalidSampleFanout(t *testing.T) {
	t.Setenv("DATABASE_URL_DEVELOPMENT", "postgres://localhost/dev")
	t.Setenv("SAMPLE_FANOUT", "0")

	_, err := Load(Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAMPLE_FANOUT")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("DATABASE_URL_DEVELOPMENT", "postgres://localhost/dev")
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load(Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestLoad_InvalidOTelEnabled(t *testing.T) {
	t.Setenv("DATABASE_URL_DEVELOPMENT", "postgres://localhost/dev")
	t.Setenv("OTEL_ENABLED", "maybe")

	_, err := Load(Overrides{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_ENABLED")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{" info ", slog.LevelInfo},
	}
	for _, tt := range tests {
		level, err := parseLogLevel(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, level)
	}
}
