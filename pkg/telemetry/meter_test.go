package telemetry

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNewMeterDisabled(t *testing.T) {
	m, err := NewMeter(MetricsConfig{Enabled: false}, "test", "dev", "test", nil)
	if err != nil {
		t.Fatalf("NewMeter: %v", err)
	}
	defer m.Shutdown(context.Background())

	if m.Meter() == nil {
		t.Fatal("disabled meter must still hand out a usable meter")
	}

	// Instruments on a readerless provider still work, records are dropped
	inst, err := NewInstruments(m.Meter())
	if err != nil {
		t.Fatalf("NewInstruments: %v", err)
	}
	inst.RecordRequest(context.Background(), "Alice")
	inst.RecordLatency(context.Background(), "Alice", 1.0)
}

func TestNewMeterNoneExporter(t *testing.T) {
	cfg := MetricsConfig{
		Enabled:        true,
		Exporter:       "none",
		ExportInterval: time.Second,
	}
	m, err := NewMeter(cfg, "test", "dev", "test", nil)
	if err != nil {
		t.Fatalf("NewMeter: %v", err)
	}
	defer m.Shutdown(context.Background())

	if err := m.ForceFlush(context.Background()); err != nil {
		t.Errorf("ForceFlush: %v", err)
	}
}

func TestNewMeterUnsupportedExporter(t *testing.T) {
	cfg := MetricsConfig{
		Enabled:        true,
		Exporter:       "statsd",
		ExportInterval: time.Second,
	}
	_, err := NewMeter(cfg, "test", "dev", "test", nil)
	if err == nil {
		t.Fatal("expected error for unsupported exporter")
	}
	if !strings.Contains(err.Error(), "unsupported metric exporter") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewMeterPrometheusCreatesScrapeServer(t *testing.T) {
	cfg := MetricsConfig{
		Enabled:        true,
		Exporter:       "prometheus",
		ExportInterval: time.Second,
		ListenAddress:  "127.0.0.1:0",
		Path:           "/metrics",
	}
	m, err := NewMeter(cfg, "test", "dev", "test", nil)
	if err != nil {
		t.Fatalf("NewMeter: %v", err)
	}
	defer m.Shutdown(context.Background())

	if m.scrapeServer == nil {
		t.Fatal("prometheus exporter should configure a scrape server")
	}
	if m.scrapeServer.Addr != cfg.ListenAddress {
		t.Errorf("scrape addr = %q, want %q", m.scrapeServer.Addr, cfg.ListenAddress)
	}
}

func TestNewMeterCarriesResourceAttributes(t *testing.T) {
	cfg := MetricsConfig{
		Enabled:        true,
		Exporter:       "none",
		ExportInterval: time.Second,
	}
	m, err := NewMeter(cfg, "test", "dev", "test", map[string]string{"region": "north-pole"})
	if err != nil {
		t.Fatalf("NewMeter: %v", err)
	}
	defer m.Shutdown(context.Background())
}
