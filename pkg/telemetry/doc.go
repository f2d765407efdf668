// Package telemetry provides observability instrumentation for nicelist.
//
// The telemetry package integrates structured logging (zerolog), metrics
// (OpenTelemetry SDK with stdout, OTLP, and Prometheus exporters), and
// distributed tracing (OpenTelemetry) into a unified system.
//
// # Architecture
//
// The telemetry system is built on three pillars:
//
//  1. Structured Logging - Context-aware logging with zerolog
//  2. Metrics - OpenTelemetry instruments with configuration-selected exporters
//  3. Distributed Tracing - OpenTelemetry traces with multiple exporters
//
// The service itself only ever creates two instruments by name,
// "request-count" and "request-latency"; all transport decisions (console,
// collector, scrape endpoint) are deferred to the configured exporter.
//
// # Usage
//
// Initialize telemetry at application startup:
//
//	cfg := telemetry.DefaultConfig()
//	cfg.ServiceName = "nicelist"
//	cfg.Metrics.Exporter = "otlp"
//
//	tel, err := telemetry.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tel.Shutdown(context.Background())
//
// The instruments on tel.Instruments are created once and shared across
// all requests; recording on them is safe for concurrent use and never
// surfaces an error to the caller.
package telemetry
