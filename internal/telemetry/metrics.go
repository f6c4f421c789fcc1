package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	// LookupMetricsMeterName is the name used for the lookup metrics meter
	LookupMetricsMeterName = "github.com/stacklok/mcp-domain-registry/lookup"
)

// LookupMetrics holds the OpenTelemetry instruments for domain lookup metrics
type LookupMetrics struct {
	lookupDuration metric.Float64Histogram
	cacheLookups   metric.Int64Counter
	stageMatches   metric.Int64Counter
}

// NewLookupMetrics creates a new LookupMetrics instance with the given meter provider.
// If provider is nil, it returns nil (no-op metrics).
func NewLookupMetrics(provider metric.MeterProvider) (*LookupMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(LookupMetricsMeterName)

	lookupDuration, err := meter.Float64Histogram(
		"thv_lookup_duration_seconds",
		metric.WithDescription("Duration of domain lookup operations in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5),
	)
	if err != nil {
		return nil, err
	}

	cacheLookups, err := meter.Int64Counter(
		"thv_lookup_cache_lookups_total",
		metric.WithDescription("Total number of response cache lookups"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	stageMatches, err := meter.Int64Counter(
		"thv_lookup_stage_matches_total",
		metric.WithDescription("Total number of matches produced by each search stage"),
		metric.WithUnit("{match}"),
	)
	if err != nil {
		return nil, err
	}

	return &LookupMetrics{
		lookupDuration: lookupDuration,
		cacheLookups:   cacheLookups,
		stageMatches:   stageMatches,
	}, nil
}

// RecordLookup records the duration and outcome of a domain lookup
func (m *LookupMetrics) RecordLookup(ctx context.Context, duration time.Duration, matchCount int, success bool) {
	if m == nil || m.lookupDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
		attribute.Bool("matched", matchCount > 0),
	}

	m.lookupDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordCacheLookup records a response cache lookup and whether it hit
func (m *LookupMetrics) RecordCacheLookup(ctx context.Context, hit bool) {
	if m == nil || m.cacheLookups == nil {
		return
	}

	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("hit", hit)))
}

// RecordStageMatches records how many matches a search stage produced
func (m *LookupMetrics) RecordStageMatches(ctx context.Context, stage string, count int64) {
	if m == nil || m.stageMatches == nil {
		return
	}

	m.stageMatches.Add(ctx, count, metric.WithAttributes(attribute.String("stage", stage)))
}
