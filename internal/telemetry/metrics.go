package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/schemalens/schemalens"

// Instruments holds pre-created OTel metric instruments.
type Instruments struct {
	AnalysisCount   metric.Int64Counter
	AnalysisErrors  metric.Int64Counter
	ExtractDuration metric.Float64Histogram
	FindingsEmitted metric.Int64Counter
	ToolDuration    metric.Float64Histogram
}

// NewInstruments creates metric instruments from the global MeterProvider.
func NewInstruments() *Instruments {
	meter := otel.Meter(meterName)
	return newInstrumentsFromMeter(meter)
}

// NoopInstruments returns instruments that record nothing.
func NoopInstruments() *Instruments {
	meter := noop.NewMeterProvider().Meter(meterName)
	return newInstrumentsFromMeter(meter)
}

func newInstrumentsFromMeter(meter metric.Meter) *Instruments {
	// OTel SDK returns noop instruments on error; safe to discard.
	analysisCount, _ := meter.Int64Counter("schemalens.analysis.count",
		metric.WithDescription("Total number of completed schema analyses"),
	)
	analysisErrors, _ := meter.Int64Counter("schemalens.analysis.errors",
		metric.WithDescription("Total number of failed schema analyses"),
	)
	extractDuration, _ := meter.Float64Histogram("schemalens.extract.duration",
		metric.WithDescription("Schema extraction duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	findingsEmitted, _ := meter.Int64Counter("schemalens.findings.count",
		metric.WithDescription("Total number of findings emitted by validation and optimization runs"),
	)
	toolDuration, _ := meter.Float64Histogram("schemalens.tool.duration",
		metric.WithDescription("MCP tool call duration in milliseconds"),
		metric.WithUnit("ms"),
	)

	return &Instruments{
		AnalysisCount:   analysisCount,
		AnalysisErrors:  analysisErrors,
		ExtractDuration: extractDuration,
		FindingsEmitted: findingsEmitted,
		ToolDuration:    toolDuration,
	}
}

func (i *Instruments) IncrementAnalysisCount(ctx context.Context) {
	i.AnalysisCount.Add(ctx, 1)
}

func (i *Instruments) IncrementAnalysisErrors(ctx context.Context) {
	i.AnalysisErrors.Add(ctx, 1)
}

func (i *Instruments) RecordExtractionDuration(ctx context.Context, ms float64) {
	i.ExtractDuration.Record(ctx, ms)
}

func (i *Instruments) RecordFindings(ctx context.Context, count int) {
	i.FindingsEmitted.Add(ctx, int64(count))
}

func (i *Instruments) RecordToolDuration(ctx context.Context, ms float64) {
	i.ToolDuration.Record(ctx, ms)
}
