package port

import (
	"context"

	"github.com/schemalens/schemalens/internal/core/domain"
)

// ExtractOptions controls the schema extraction pass.
type ExtractOptions struct {
	// IncludeSamples enables best-effort per-table row sampling.
	IncludeSamples bool
	// MaxSampleRows bounds the sample size per table. Must be >= 0.
	MaxSampleRows int
}

// SchemaExtractor reads catalog metadata into a normalized schema model.
// A catalog read failure is fatal to the whole extraction; per-table
// sample failures degrade that table's sample set instead.
type SchemaExtractor interface {
	ExtractSchema(ctx context.Context, opts ExtractOptions) (domain.SchemaModel, error)
}

// ExtractorRegistry hands out an extractor bound to a deployment target.
// Connection acquisition lives behind this interface so the core stays
// transport- and driver-agnostic.
type ExtractorRegistry interface {
	Extractor(ctx context.Context, env domain.Environment) (SchemaExtractor, error)
}

// AnalyzeResult is the response record for a full schema analysis.
type AnalyzeResult struct {
	Tables        []domain.Table        `json:"tables"`
	Relationships []domain.Relationship `json:"relationships"`
}

// RelationshipsResult is the response record for relationship resolution.
type RelationshipsResult struct {
	Relationships []domain.Relationship `json:"relationships"`
}

// FindingsResult is the response record for validation and optimization
// runs; findings arrive ranked by descending combined score.
type FindingsResult struct {
	Findings []domain.Finding `json:"findings"`
}
