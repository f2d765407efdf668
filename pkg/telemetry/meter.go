package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"google.golang.org/grpc/credentials/insecure"
)

// Meter wraps the OpenTelemetry meter provider with nicelist-specific
// functionality. The exporter destination is chosen entirely from
// configuration; callers only ever create instruments by name.
type Meter struct {
	provider     *sdkmetric.MeterProvider
	meter        metric.Meter
	config       MetricsConfig
	scrapeServer *http.Server
}

// NewMeter creates a new meter with the given configuration.
func NewMeter(cfg MetricsConfig, serviceName, serviceVersion, environment string, extraAttrs map[string]string) (*Meter, error) {
	if !cfg.Enabled {
		// Provider without readers: instruments work, records are dropped
		provider := sdkmetric.NewMeterProvider()
		return &Meter{
			provider: provider,
			meter:    provider.Meter(serviceName),
			config:   cfg,
		}, nil
	}

	// Create resource with service information
	attrs := []attribute.KeyValue{
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(serviceVersion),
		attribute.String("environment", environment),
	}
	for k, v := range extraAttrs {
		attrs = append(attrs, attribute.String(k, v))
	}
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(attrs...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create metric resource: %w", err)
	}

	m := &Meter{config: cfg}

	// Create reader based on configuration
	var reader sdkmetric.Reader
	switch cfg.Exporter {
	case "stdout":
		reader, err = createStdoutReader(cfg)
	case "otlp":
		reader, err = createOTLPReader(cfg)
	case "prometheus":
		reader, err = m.createPrometheusReader()
	case "none":
		// No reader - instruments are created but records are dropped
		reader = nil
	default:
		return nil, fmt.Errorf("unsupported metric exporter: %s", cfg.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	opts := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}
	if reader != nil {
		opts = append(opts, sdkmetric.WithReader(reader))
	}

	provider := sdkmetric.NewMeterProvider(opts...)

	// Set global meter provider
	otel.SetMeterProvider(provider)

	m.provider = provider
	m.meter = provider.Meter(serviceName)
	return m, nil
}

// createStdoutReader creates a periodic reader backed by the console exporter.
func createStdoutReader(cfg MetricsConfig) (sdkmetric.Reader, error) {
	exporter, err := stdoutmetric.New(
		stdoutmetric.WithPrettyPrint(),
	)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(
		exporter,
		sdkmetric.WithInterval(cfg.ExportInterval),
	), nil
}

// createOTLPReader creates a periodic reader backed by an OTLP gRPC exporter.
func createOTLPReader(cfg MetricsConfig) (sdkmetric.Reader, error) {
	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}

	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithTLSCredentials(insecure.NewCredentials()))
	}

	// Add custom headers if provided
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlpmetricgrpc.WithHeaders(cfg.Headers))
	}

	exporter, err := otlpmetricgrpc.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(
		exporter,
		sdkmetric.WithInterval(cfg.ExportInterval),
	), nil
}

// createPrometheusReader creates a pull-based reader exposing metrics on a
// dedicated scrape registry. The scrape server is started separately with
// StartScrapeServer.
func (m *Meter) createPrometheusReader() (sdkmetric.Reader, error) {
	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(
		otelprom.WithRegisterer(registry),
	)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(m.config.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))

	m.scrapeServer = &http.Server{
		Addr:              m.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return exporter, nil
}

// StartScrapeServer starts the Prometheus scrape endpoint, if configured.
// Serve errors are reported to errFn rather than failing the service.
func (m *Meter) StartScrapeServer(errFn func(error)) {
	if m.scrapeServer == nil {
		return
	}
	go func() {
		if err := m.scrapeServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if errFn != nil {
				errFn(err)
			}
		}
	}()
}

// Meter returns the underlying OpenTelemetry meter for creating instruments.
func (m *Meter) Meter() metric.Meter {
	return m.meter
}

// ForceFlush forces all pending metric records to be exported immediately.
func (m *Meter) ForceFlush(ctx context.Context) error {
	if m.provider == nil {
		return nil
	}
	return m.provider.ForceFlush(ctx)
}

// Shutdown gracefully shuts down the meter, flushing any pending records
// and stopping the scrape server if one was started.
func (m *Meter) Shutdown(ctx context.Context) error {
	if m.scrapeServer != nil {
		if err := m.scrapeServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	if m.provider == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}
