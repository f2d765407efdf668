package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names. The service only names its instruments; the exporter
// destination is decided by configuration.
const (
	RequestCountName   = "request-count"
	RequestLatencyName = "request-latency"
)

// Common attribute keys for nicelist metrics.
var (
	// AttrSubject carries the name of the classified subject.
	AttrSubject = attribute.Key("name")

	// AttrError carries the error message on the failure path. It is kept
	// separate from the business attribute set so error diagnostics never
	// leak into success-path series.
	AttrError = attribute.Key("error")
)

// Instruments holds the process-wide metric instruments. They are created
// exactly once at startup and shared across all requests; both instruments
// are safe for concurrent recording.
type Instruments struct {
	requestCount   metric.Int64Counter
	requestLatency metric.Float64Histogram
}

// NewInstruments creates the request counter and latency histogram on the
// given meter.
func NewInstruments(meter metric.Meter) (*Instruments, error) {
	requestCount, err := meter.Int64Counter(
		RequestCountName,
		metric.WithDescription("Total number of classification requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	requestLatency, err := meter.Float64Histogram(
		RequestLatencyName,
		metric.WithDescription("Classification request latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create latency histogram: %w", err)
	}

	return &Instruments{
		requestCount:   requestCount,
		requestLatency: requestLatency,
	}, nil
}

// RecordRequest increments the request counter by one for the subject.
// Recording is fire-and-forget; it never blocks the request.
func (i *Instruments) RecordRequest(ctx context.Context, name string) {
	if i == nil || i.requestCount == nil {
		return
	}
	i.requestCount.Add(ctx, 1, metric.WithAttributes(AttrSubject.String(name)))
}

// RecordLatency records a successful request's elapsed time in milliseconds.
func (i *Instruments) RecordLatency(ctx context.Context, name string, ms float64) {
	if i == nil || i.requestLatency == nil {
		return
	}
	i.requestLatency.Record(ctx, ms, metric.WithAttributes(AttrSubject.String(name)))
}

// RecordFailure records a failed request's elapsed time in milliseconds
// together with the error message. The counter is not touched on failure.
func (i *Instruments) RecordFailure(ctx context.Context, name string, errMsg string, ms float64) {
	if i == nil || i.requestLatency == nil {
		return
	}
	i.requestLatency.Record(ctx, ms, metric.WithAttributes(
		AttrSubject.String(name),
		AttrError.String(errMsg),
	))
}
