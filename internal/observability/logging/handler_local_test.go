//go:build !gcloud

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestNewLogger_AddsActiveSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{
		ServiceInfo: ServiceInfo{Name: "collector"},
		Environment: EnvDev,
	})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "fetched counts")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode log record: %v", err)
	}
	if record["trace_id"] != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace_id = %v", record["trace_id"])
	}
	if record["span_id"] != "00f067aa0ba902b7" {
		t.Errorf("span_id = %v", record["span_id"])
	}
}

func TestNewLogger_NoSpanNoTraceAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{ServiceInfo: ServiceInfo{Name: "collector"}})

	logger.Info("no span")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode log record: %v", err)
	}
	if _, ok := record["trace_id"]; ok {
		t.Error("unexpected trace_id without an active span")
	}
}
