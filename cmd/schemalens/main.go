package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/schemalens/schemalens/internal/adapter/mcp"
	"github.com/schemalens/schemalens/internal/adapter/postgres"
	"github.com/schemalens/schemalens/internal/adapter/scoring"
	"github.com/schemalens/schemalens/internal/audit"
	"github.com/schemalens/schemalens/internal/config"
	"github.com/schemalens/schemalens/internal/core/domain"
	"github.com/schemalens/schemalens/internal/core/port"
	"github.com/schemalens/schemalens/internal/core/service"
	"github.com/schemalens/schemalens/internal/telemetry"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		logLevel        = flag.String("log-level", "", "log level: debug, info, warn, error")
		schema          = flag.String("schema", "", "database schema to analyze")
		maxSampleRows   = flag.Int("max-sample-rows", -1, "default sample row bound")
		sampleFanout    = flag.Int("sample-fanout", 0, "concurrent per-table reads during extraction")
		scorePolicyFile = flag.String("score-policy", "", "path to score-policy YAML file")
		otelEnabled     = flag.Bool("otel", false, "enable OpenTelemetry tracing and metrics")
		auditLog        = flag.String("audit-log", "", "path to NDJSON audit log file")
	)
	flag.Parse()

	overrides := config.Overrides{
		OTelEnabled: *otelEnabled,
		AuditLog:    *auditLog,
	}
	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}
	if *schema != "" {
		overrides.Schema = schema
	}
	if *maxSampleRows >= 0 {
		overrides.MaxSampleRows = maxSampleRows
	}
	if *sampleFanout > 0 {
		overrides.SampleFanout = sampleFanout
	}
	if *scorePolicyFile != "" {
		overrides.ScorePolicyFile = scorePolicyFile
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs go to stderr — stdout is reserved for the MCP stdio transport.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	environments := make([]string, 0, len(cfg.DatabaseURLs))
	for env := range cfg.DatabaseURLs {
		environments = append(environments, string(env))
	}
	logger.Info("starting schemalens",
		slog.String("version", version),
		slog.String("log_level", cfg.LogLevel.String()),
		slog.String("schema", cfg.Schema),
		slog.Int("max_sample_rows", cfg.MaxSampleRows),
		slog.Int("sample_fanout", cfg.SampleFanout),
		slog.Any("environments", environments),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Telemetry (optional).
	tracer := telemetry.NoopTracer()
	var inst port.Instrumentation = telemetry.NoopInstruments()
	if cfg.OTelEnabled {
		provider, err := telemetry.Init(ctx, "schemalens", version)
		if err != nil {
			return fmt.Errorf("initializing telemetry: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Shutdown(shutdownCtx); err != nil {
				logger.Error("telemetry shutdown", slog.String("error", err.Error()))
			}
		}()
		tracer = provider.Tracer("schemalens")
		inst = telemetry.NewInstruments()
		logger.Info("telemetry enabled")
	}

	// Database registry: pools open lazily on first use per environment.
	registry := postgres.NewRegistry(cfg.DatabaseURLs, cfg.Schema, cfg.SampleFanout)
	defer registry.Close()

	// Score policy (optional override file).
	var policy domain.ScorePolicy
	if cfg.ScorePolicyFile != "" {
		policy, err = scoring.LoadPolicy(cfg.ScorePolicyFile)
		if err != nil {
			return fmt.Errorf("loading score policy: %w", err)
		}
		logger.Info("score policy loaded", slog.String("file", cfg.ScorePolicyFile))
	}

	// Audit log (optional).
	var auditor port.Auditor = port.NoopAuditor{}
	if cfg.AuditLog != "" {
		fileAuditor, err := audit.NewFileAuditor(cfg.AuditLog)
		if err != nil {
			return fmt.Errorf("opening audit log: %w", err)
		}
		defer fileAuditor.Close()
		auditor = fileAuditor
		logger.Info("audit log enabled", slog.String("file", cfg.AuditLog))
	}

	analysis := service.NewAnalysisService(registry, policy, auditor, logger, tracer, inst)

	// MCP server with tool handlers.
	mcpServer := mcp.NewServer(version, analysis, cfg.MaxSampleRows, logger, tracer, inst)

	// Run MCP over stdio (stdin/stdout).
	stdioServer := mcpserver.NewStdioServer(mcpServer)

	logger.Info("serving MCP over stdio")
	if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		return fmt.Errorf("stdio server: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
