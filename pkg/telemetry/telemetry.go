package telemetry

import (
	"context"
	"errors"
)

// Telemetry provides a unified telemetry interface combining logging,
// metrics, and tracing.
type Telemetry struct {
	Logger      *Logger
	Meter       *Meter
	Tracer      *Tracer
	Instruments *Instruments
	Config      *Config
}

// telemetryContextKey is the context key for telemetry instances.
type telemetryContextKey struct{}

// New creates a new telemetry instance from configuration. The request
// counter and latency histogram are created here, exactly once, and shared
// by every request for the lifetime of the process.
func New(cfg *Config) (*Telemetry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Initialize logger
	logger, err := NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	// Initialize meter provider
	meter, err := NewMeter(cfg.Metrics, cfg.ServiceName, cfg.ServiceVersion, cfg.Environment, cfg.ResourceAttributes)
	if err != nil {
		return nil, err
	}

	// Initialize tracer
	tracer, err := NewTracer(cfg.Tracing, cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, err
	}

	// Create the process-wide instruments
	instruments, err := NewInstruments(meter.Meter())
	if err != nil {
		return nil, err
	}

	return &Telemetry{
		Logger:      logger,
		Meter:       meter,
		Tracer:      tracer,
		Instruments: instruments,
		Config:      cfg,
	}, nil
}

// WithContext adds the telemetry instance to the context.
func (t *Telemetry) WithContext(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, telemetryContextKey{}, t)
	ctx = t.Logger.WithContext(ctx)
	return ctx
}

// FromTelemetryContext retrieves the telemetry instance from the context.
// If no telemetry is found, it returns nil.
func FromTelemetryContext(ctx context.Context) *Telemetry {
	if t, ok := ctx.Value(telemetryContextKey{}).(*Telemetry); ok {
		return t
	}
	return nil
}

// ForceFlush forces pending metric records and spans out to the exporters.
func (t *Telemetry) ForceFlush(ctx context.Context) error {
	return errors.Join(
		t.Meter.ForceFlush(ctx),
		t.Tracer.ForceFlush(ctx),
	)
}

// Shutdown gracefully shuts down all telemetry components in reverse order
// of initialization.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.Tracer.Shutdown(ctx),
		t.Meter.Shutdown(ctx),
	)
}
