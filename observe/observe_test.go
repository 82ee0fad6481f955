package observe

import (
	"context"
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{
		ServiceName: "siteicon",
		Tracing:     TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 0.5},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "stdout"},
		Logging:     LoggingConfig{Enabled: true, Level: "info"},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	missing := valid
	missing.ServiceName = ""
	if err := missing.Validate(); !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("missing service name: got %v, want ErrMissingServiceName", err)
	}

	badExporter := valid
	badExporter.Tracing.Exporter = "carrier-pigeon"
	if err := badExporter.Validate(); !errors.Is(err, ErrInvalidTracingExporter) {
		t.Errorf("bad tracing exporter: got %v", err)
	}

	badPct := valid
	badPct.Tracing.SamplePct = 1.5
	if err := badPct.Validate(); !errors.Is(err, ErrInvalidSamplePct) {
		t.Errorf("bad sample pct: got %v", err)
	}

	badLevel := valid
	badLevel.Logging.Level = "shouty"
	if err := badLevel.Validate(); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("bad log level: got %v", err)
	}
}

func TestNewObserver_Disabled(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "siteicon"})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	defer obs.Shutdown(context.Background())

	if obs.Tracer() == nil || obs.Meter() == nil || obs.Logger() == nil {
		t.Error("disabled observer should still return noop primitives")
	}
}

func TestNewNopObserver(t *testing.T) {
	obs := NewNopObserver()
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("nop shutdown should not error: %v", err)
	}
}
