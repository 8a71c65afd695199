package port

import "context"

// Instrumentation abstracts metric recording so the core does not depend
// on a concrete telemetry backend.
type Instrumentation interface {
	IncrementAnalysisCount(ctx context.Context)
	IncrementAnalysisErrors(ctx context.Context)
	RecordExtractionDuration(ctx context.Context, ms float64)
	RecordFindings(ctx context.Context, count int)
	RecordToolDuration(ctx context.Context, ms float64)
}

// NoopInstrumentation records nothing.
type NoopInstrumentation struct{}

func (NoopInstrumentation) IncrementAnalysisCount(context.Context)            {}
func (NoopInstrumentation) IncrementAnalysisErrors(context.Context)           {}
func (NoopInstrumentation) RecordExtractionDuration(context.Context, float64) {}
func (NoopInstrumentation) RecordFindings(context.Context, int)               {}
func (NoopInstrumentation) RecordToolDuration(context.Context, float64)       {}
