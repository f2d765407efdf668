package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":8080")
	}
	if cfg.Metrics.Exporter != "stdout" {
		t.Errorf("Metrics.Exporter = %q, want %q", cfg.Metrics.Exporter, "stdout")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
listen_addr: ":9999"
max_jitter: 2s
metrics:
  exporter: otlp
  endpoint: collector:4317
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":9999")
	}
	if cfg.MaxJitter != 2*time.Second {
		t.Errorf("MaxJitter = %s, want 2s", cfg.MaxJitter)
	}
	if cfg.Metrics.Exporter != "otlp" {
		t.Errorf("Metrics.Exporter = %q, want %q", cfg.Metrics.Exporter, "otlp")
	}
	if cfg.Metrics.Endpoint != "collector:4317" {
		t.Errorf("Metrics.Endpoint = %q, want %q", cfg.Metrics.Endpoint, "collector:4317")
	}
	// Untouched fields keep their defaults
	if cfg.ServiceName != "nicelist" {
		t.Errorf("ServiceName = %q, want default", cfg.ServiceName)
	}
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	path := writeConfig(t, `
metrics:
  exporter: stdout
`)
	t.Setenv("NICELIST_METRICS_EXPORTER", "none")
	t.Setenv("NICELIST_LISTEN_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Metrics.Exporter != "none" {
		t.Errorf("Metrics.Exporter = %q, want %q (env override)", cfg.Metrics.Exporter, "none")
	}
	if cfg.ListenAddr != ":7070" {
		t.Errorf("ListenAddr = %q, want %q (env override)", cfg.ListenAddr, ":7070")
	}
}

func TestLoadRejectsInvalidExporter(t *testing.T) {
	path := writeConfig(t, `
metrics:
  exporter: statsd
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown exporter")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "listen_addr: [:::")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error for malformed yaml")
	}
}

func TestTelemetryConversion(t *testing.T) {
	cfg := Default()
	cfg.ServiceName = "north-pole"
	cfg.Metrics.Exporter = "prometheus"
	cfg.Tracing.Enabled = true

	tcfg := cfg.Telemetry()
	if tcfg.ServiceName != "north-pole" {
		t.Errorf("ServiceName = %q, want %q", tcfg.ServiceName, "north-pole")
	}
	if tcfg.Metrics.Exporter != "prometheus" {
		t.Errorf("Metrics.Exporter = %q, want %q", tcfg.Metrics.Exporter, "prometheus")
	}
	if !tcfg.Tracing.Enabled {
		t.Error("Tracing.Enabled should carry over")
	}
	if err := tcfg.Validate(); err != nil {
		t.Errorf("converted telemetry config should validate, got: %v", err)
	}
}

func TestWatchPicksUpChanges(t *testing.T) {
	path := writeConfig(t, "listen_addr: \":8080\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 1)
	err := Watch(ctx, path, func(c *Config) {
		select {
		case changes <- c:
		default:
		}
	}, nil)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(path, []byte("listen_addr: \":8081\"\n"), 0644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case cfg := <-changes:
		if cfg.ListenAddr != ":8081" {
			t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":8081")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config change")
	}
}

func TestWatchIgnoresMalformedRewrite(t *testing.T) {
	path := writeConfig(t, "listen_addr: \":8080\"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errs := make(chan error, 1)
	err := Watch(ctx, path, func(c *Config) {
		t.Error("onChange fired for a malformed config")
	}, func(err error) {
		select {
		case errs <- err:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := os.WriteFile(path, []byte("listen_addr: [:::"), 0644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case <-errs:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch error")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nicelist.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
