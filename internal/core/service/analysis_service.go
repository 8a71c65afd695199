package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/schemalens/schemalens/internal/core/domain"
	"github.com/schemalens/schemalens/internal/core/port"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var ErrInvalidSampleRows = errors.New("max_sample_rows must be >= 0")

type toolNameKey struct{}

// WithToolName returns a context carrying the MCP tool name for audit logging.
func WithToolName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, toolNameKey{}, name)
}

func toolNameFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(toolNameKey{}).(string); ok {
		return v
	}
	return ""
}

// AnalysisService orchestrates the four schema-intelligence operations:
// extract, resolve relationships, validate, suggest optimizations. Every
// invocation builds a fresh schema model; nothing is cached across calls.
type AnalysisService struct {
	extractors port.ExtractorRegistry
	policy     domain.ScorePolicy
	auditor    port.Auditor
	logger     *slog.Logger
	tracer     trace.Tracer
	inst       port.Instrumentation
}

func NewAnalysisService(extractors port.ExtractorRegistry, policy domain.ScorePolicy, auditor port.Auditor, logger *slog.Logger, tracer trace.Tracer, inst port.Instrumentation) *AnalysisService {
	if policy == nil {
		policy = domain.DefaultScorePolicy()
	}
	if auditor == nil {
		auditor = port.NoopAuditor{}
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	if inst == nil {
		inst = port.NoopInstrumentation{}
	}
	return &AnalysisService{
		extractors: extractors,
		policy:     policy,
		auditor:    auditor,
		logger:     logger,
		tracer:     tracer,
		inst:       inst,
	}
}

// AnalyzeSchema extracts the full schema model and resolves relationships.
func (s *AnalysisService) AnalyzeSchema(ctx context.Context, environment string, includeSamples bool, maxSampleRows int) (*port.AnalyzeResult, error) {
	if maxSampleRows < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleRows, maxSampleRows)
	}

	var result *port.AnalyzeResult
	err := s.run(ctx, "AnalyzeSchema", environment, func(ctx context.Context, env domain.Environment) (int, error) {
		model, err := s.extract(ctx, env, port.ExtractOptions{
			IncludeSamples: includeSamples,
			MaxSampleRows:  maxSampleRows,
		})
		if err != nil {
			return 0, err
		}
		result = &port.AnalyzeResult{
			Tables:        model.Tables,
			Relationships: domain.ResolveRelationships(model),
		}
		return 0, nil
	})
	return result, err
}

// GetRelationships resolves declared and inferred relationships,
// optionally restricted to those touching one table.
func (s *AnalysisService) GetRelationships(ctx context.Context, environment, tableName string) (*port.RelationshipsResult, error) {
	var result *port.RelationshipsResult
	err := s.run(ctx, "GetRelationships", environment, func(ctx context.Context, env domain.Environment) (int, error) {
		model, err := s.extract(ctx, env, port.ExtractOptions{})
		if err != nil {
			return 0, err
		}
		rels := domain.FilterRelationshipsByTable(domain.ResolveRelationships(model), tableName)
		result = &port.RelationshipsResult{Relationships: rels}
		return 0, nil
	})
	return result, err
}

// ValidateSchema runs the structural integrity rules and ranks the findings.
func (s *AnalysisService) ValidateSchema(ctx context.Context, environment string) (*port.FindingsResult, error) {
	var result *port.FindingsResult
	err := s.run(ctx, "ValidateSchema", environment, func(ctx context.Context, env domain.Environment) (int, error) {
		model, err := s.extract(ctx, env, port.ExtractOptions{})
		if err != nil {
			return 0, err
		}
		findings := domain.ValidateSchema(model, domain.ResolveRelationships(model))
		ranked, err := domain.RankFindings(findings, env, s.policy)
		if err != nil {
			return 0, err
		}
		result = &port.FindingsResult{Findings: ranked}
		return len(ranked), nil
	})
	return result, err
}

// SuggestOptimizations runs the performance heuristics and ranks the findings.
func (s *AnalysisService) SuggestOptimizations(ctx context.Context, environment string) (*port.FindingsResult, error) {
	var result *port.FindingsResult
	err := s.run(ctx, "SuggestOptimizations", environment, func(ctx context.Context, env domain.Environment) (int, error) {
		model, err := s.extract(ctx, env, port.ExtractOptions{})
		if err != nil {
			return 0, err
		}
		findings := domain.SuggestOptimizations(model, domain.ResolveRelationships(model))
		ranked, err := domain.RankFindings(findings, env, s.policy)
		if err != nil {
			return 0, err
		}
		result = &port.FindingsResult{Findings: ranked}
		return len(ranked), nil
	})
	return result, err
}

// run wraps one operation with environment parsing, tracing, metrics, and
// audit recording. The environment is validated before any database work.
func (s *AnalysisService) run(ctx context.Context, op, environment string, fn func(context.Context, domain.Environment) (int, error)) error {
	ctx, span := s.tracer.Start(ctx, "AnalysisService."+op,
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("schemalens.environment", environment),
		),
	)
	defer span.End()

	env, err := domain.ParseEnvironment(environment)
	if err != nil {
		s.logger.WarnContext(ctx, "rejected operation",
			slog.String("operation", op),
			slog.String("environment", environment),
			slog.String("error.type", "configuration_error"),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	start := time.Now()
	findings, err := fn(ctx, env)
	durationMS := time.Since(start).Milliseconds()

	s.auditor.Record(ctx, port.AuditEntry{
		Tool:        toolNameFromCtx(ctx),
		Environment: string(env),
		DurationMS:  durationMS,
		Findings:    findings,
		Err:         err,
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.inst.IncrementAnalysisErrors(ctx)
		return err
	}

	s.inst.IncrementAnalysisCount(ctx)
	s.inst.RecordFindings(ctx, findings)
	span.SetAttributes(attribute.Int("schemalens.findings", findings))
	return nil
}

func (s *AnalysisService) extract(ctx context.Context, env domain.Environment, opts port.ExtractOptions) (domain.SchemaModel, error) {
	extractor, err := s.extractors.Extractor(ctx, env)
	if err != nil {
		return domain.SchemaModel{}, fmt.Errorf("acquiring extractor for %s: %w", env, err)
	}

	start := time.Now()
	model, err := extractor.ExtractSchema(ctx, opts)
	s.inst.RecordExtractionDuration(ctx, float64(time.Since(start).Milliseconds()))
	if err != nil {
		return domain.SchemaModel{}, fmt.Errorf("extracting schema: %w", err)
	}
	return model, nil
}
