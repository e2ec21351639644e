package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracerName(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))

	_, span := Tracer("tilemap").Start(context.Background(), "tilemap.prune")
	span.End()

	ended := sr.Ended()
	if len(ended) != 1 {
		t.Fatalf("Expected 1 ended span, got %d", len(ended))
	}
	if got := ended[0].InstrumentationScope().Name; got != "wallsandholes/tilemap" {
		t.Errorf("Expected scope wallsandholes/tilemap, got %q", got)
	}
	if got := ended[0].Name(); got != "tilemap.prune" {
		t.Errorf("Expected span tilemap.prune, got %q", got)
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		endpoint, traces string
		want             bool
	}{
		{"", "", false},
		{"http://localhost:4318", "", true},
		{"", "http://localhost:4318/v1/traces", true},
	}

	for _, tt := range tests {
		t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", tt.endpoint)
		t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", tt.traces)
		if got := Enabled(); got != tt.want {
			t.Errorf("Enabled() with endpoint %q, traces %q = %v, want %v", tt.endpoint, tt.traces, got, tt.want)
		}
	}
}

func TestGetHostname(t *testing.T) {
	if getHostname() == "" {
		t.Error("getHostname should never be empty")
	}
}
