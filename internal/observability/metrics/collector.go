package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	collectorMeterName = "collector.service"
)

type CollectorMetrics struct {
	invocations         metric.Int64Counter
	stationFetches      metric.Int64Counter
	storeWrites         metric.Int64Counter
	alerts              metric.Int64Counter
	predictions         metric.Int64Counter
	invocationDuration  metric.Float64Histogram
	stationFetchLatency metric.Float64Histogram
}

func NewCollectorMetrics() (*CollectorMetrics, error) {
	meter := otel.Meter(collectorMeterName)

	invocations, err := meter.Int64Counter(
		"collector_invocations_total",
		metric.WithDescription("Total number of collection invocations by outcome"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, err
	}

	stationFetches, err := meter.Int64Counter(
		"collector_station_fetches_total",
		metric.WithDescription("Total number of count source fetches"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, err
	}

	storeWrites, err := meter.Int64Counter(
		"collector_store_writes_total",
		metric.WithDescription("Total number of planned tabular store mutations"),
		metric.WithUnit("{write}"),
	)
	if err != nil {
		return nil, err
	}

	alerts, err := meter.Int64Counter(
		"collector_alerts_total",
		metric.WithDescription("Total number of alerts decided"),
		metric.WithUnit("{alert}"),
	)
	if err != nil {
		return nil, err
	}

	predictions, err := meter.Int64Counter(
		"collector_predictions_total",
		metric.WithDescription("Total number of prediction checkpoints evaluated"),
		metric.WithUnit("{prediction}"),
	)
	if err != nil {
		return nil, err
	}

	invocationDuration, err := meter.Float64Histogram(
		"collector_invocation_duration_seconds",
		metric.WithDescription("Duration of a collection invocation"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
		),
	)
	if err != nil {
		return nil, err
	}

	stationFetchLatency, err := meter.Float64Histogram(
		"collector_station_fetch_duration_seconds",
		metric.WithDescription("Time spent fetching counts for a station"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	return &CollectorMetrics{
		invocations:         invocations,
		stationFetches:      stationFetches,
		storeWrites:         storeWrites,
		alerts:              alerts,
		predictions:         predictions,
		invocationDuration:  invocationDuration,
		stationFetchLatency: stationFetchLatency,
	}, nil
}

func (m *CollectorMetrics) RecordInvocation(ctx context.Context, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.invocations.Add(ctx, 1, attrs)
	m.invocationDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *CollectorMetrics) RecordStationFetch(ctx context.Context, group, window, outcome string, duration time.Duration) {
	m.stationFetches.Add(ctx, 1, metric.WithAttributes(
		attribute.String("station_group", group),
		attribute.String("window", window),
		attribute.String("outcome", outcome),
	))
	m.stationFetchLatency.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("station_group", group),
		attribute.String("window", window),
	))
}

func (m *CollectorMetrics) RecordStoreWrite(ctx context.Context, table, kind string, applied bool) {
	m.storeWrites.Add(ctx, 1, metric.WithAttributes(
		attribute.String("table", table),
		attribute.String("kind", kind),
		attribute.Bool("applied", applied),
	))
}

func (m *CollectorMetrics) RecordAlert(ctx context.Context, kind string, dispatched bool) {
	m.alerts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("dispatched", dispatched),
	))
}

func (m *CollectorMetrics) RecordPrediction(ctx context.Context, marker, outcome string) {
	m.predictions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("marker", marker),
		attribute.String("outcome", outcome),
	))
}
