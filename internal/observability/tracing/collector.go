package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const collectorTracerName = "github.com/KasumiMercury/traffic-count-collector/internal/service/collect"

func CollectorTracer() trace.Tracer {
	return otel.Tracer(collectorTracerName)
}

func StartInvocationSpan(ctx context.Context, now time.Time, writeEnabled, alertEnabled bool) (context.Context, trace.Span) {
	return CollectorTracer().Start(ctx, "collector.invocation",
		trace.WithAttributes(
			attribute.String("invocation.now", now.Format(time.RFC3339)),
			attribute.Bool("invocation.write_enabled", writeEnabled),
			attribute.Bool("invocation.alert_enabled", alertEnabled),
		),
	)
}

func StartFetchSpan(ctx context.Context, group, stationID string, start time.Time, durationSeconds int64) (context.Context, trace.Span) {
	return CollectorTracer().Start(ctx, "collector.fetch_counts",
		trace.WithAttributes(
			attribute.String("station.group", group),
			attribute.String("station.id", stationID),
			attribute.String("window.start", start.Format(time.RFC3339)),
			attribute.Int64("window.duration_seconds", durationSeconds),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartUpsertSpan(ctx context.Context, table string) (context.Context, trace.Span) {
	return CollectorTracer().Start(ctx, "collector.upsert",
		trace.WithAttributes(
			attribute.String("table", table),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return CollectorTracer().Start(ctx, "collector.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return CollectorTracer().Start(ctx, "collector.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordInvocationResult(span trace.Span, outcome string, stationCount, writeCount int, alerted bool, err error) {
	span.SetAttributes(
		attribute.String("invocation.outcome", outcome),
		attribute.Int("invocation.station_count", stationCount),
		attribute.Int("invocation.write_count", writeCount),
		attribute.Bool("invocation.alerted", alerted),
	)
	RecordResult(span, err)
}

func RecordResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
