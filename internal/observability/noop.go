package observability

import (
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// NewNoopTracer creates a tracer that does nothing.
func NewNoopTracer() *Tracer {
	return &Tracer{tracer: tracenoop.NewTracerProvider().Tracer("")}
}

// NewNoopMetrics creates metrics that do nothing.
func NewNoopMetrics() *Metrics {
	meter := metricnoop.NewMeterProvider().Meter("")
	m := &Metrics{}

	// The noop meter never returns errors.
	m.rpcDuration, _ = meter.Float64Histogram("odoo.rpc.duration") //nolint:errcheck
	m.rpcCount, _ = meter.Int64Counter("odoo.rpc.count")           //nolint:errcheck
	m.errorCount, _ = meter.Int64Counter("odoo.rpc.error.count")   //nolint:errcheck

	return m
}
