package retrieval

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the OpenTelemetry instruments shared across retriever
// implementations. A nil *Metrics is valid and every method becomes a
// no-op, so components can be constructed without a configured meter.
type Metrics struct {
	queriesTotal     metric.Int64Counter
	queryDuration    metric.Float64Histogram
	errorsTotal      metric.Int64Counter
	itemsReturned    metric.Int64Histogram
	templateStoreSize metric.Int64ObservableGauge
}

// NewMetrics registers instruments on meter, following the teacher's
// pkg/retrievers.NewMetrics pattern.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		return nil, nil
	}
	m := &Metrics{}
	var err error

	m.queriesTotal, err = meter.Int64Counter(
		"retrieval_queries_total",
		metric.WithDescription("Total number of GetRelevantContext calls"),
	)
	if err != nil {
		return nil, err
	}

	m.queryDuration, err = meter.Float64Histogram(
		"retrieval_query_duration_seconds",
		metric.WithDescription("Duration of GetRelevantContext calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	m.errorsTotal, err = meter.Int64Counter(
		"retrieval_errors_total",
		metric.WithDescription("Total number of retrieval errors by kind"),
	)
	if err != nil {
		return nil, err
	}

	m.itemsReturned, err = meter.Int64Histogram(
		"retrieval_items_returned",
		metric.WithDescription("Number of context items returned per query"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordQuery records one completed query's duration, item count, and
// retriever/backend attributes.
func (m *Metrics) RecordQuery(ctx context.Context, retrieverType, backend string, d time.Duration, itemCount int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("retriever_type", retrieverType),
		attribute.String("backend", backend),
	)
	m.queriesTotal.Add(ctx, 1, attrs)
	m.queryDuration.Record(ctx, d.Seconds(), attrs)
	m.itemsReturned.Record(ctx, int64(itemCount), attrs)
}

// RecordError records a failed query, tagged by error Kind.
func (m *Metrics) RecordError(ctx context.Context, retrieverType string, kind Kind) {
	if m == nil {
		return
	}
	m.errorsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("retriever_type", retrieverType),
		attribute.String("kind", string(kind)),
	))
}
