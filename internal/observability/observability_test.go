//go:build !gcloud

package observability

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/KasumiMercury/traffic-count-collector/internal/observability/logging"
)

func TestInit_WithoutExporter(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	obs, err := Init(context.Background(), Config{
		ServiceInfo:   logging.ServiceInfo{Name: "collector", Version: "test"},
		Environment:   logging.EnvDev,
		DefaultModule: logging.Module("traffic-count-collector"),
	})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown() error = %v", err)
		}
	})

	if obs.Logger() == nil {
		t.Fatal("expected logger")
	}

	_, span := otel.Tracer("test").Start(context.Background(), "span")
	defer span.End()
	if !span.SpanContext().IsValid() {
		t.Error("expected a valid span context from the installed provider")
	}
}
