package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the converter-specific metric instruments.
type Metrics struct {
	rpcDuration metric.Float64Histogram
	rpcCount    metric.Int64Counter
	errorCount  metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) *Metrics {
	meter := mp.Meter(MeterName)
	m := &Metrics{}

	var err error

	m.rpcDuration, err = meter.Float64Histogram(
		"odoo.rpc.duration",
		metric.WithDescription("Duration of Odoo RPC calls in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		m.rpcDuration, _ = meter.Float64Histogram("odoo.rpc.duration")
	}

	m.rpcCount, err = meter.Int64Counter(
		"odoo.rpc.count",
		metric.WithDescription("Total number of Odoo RPC calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		m.rpcCount, _ = meter.Int64Counter("odoo.rpc.count")
	}

	m.errorCount, err = meter.Int64Counter(
		"odoo.rpc.error.count",
		metric.WithDescription("Total number of failed Odoo RPC calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		m.errorCount, _ = meter.Int64Counter("odoo.rpc.error.count")
	}

	return m
}

// RecordRPC records one RPC call with its duration and outcome.
func (m *Metrics) RecordRPC(ctx context.Context, service, method string, elapsed time.Duration, err error) {
	attrs := metric.WithAttributes(
		RPCServiceAttr(service),
		RPCMethodAttr(method),
	)
	m.rpcCount.Add(ctx, 1, attrs)
	m.rpcDuration.Record(ctx, float64(elapsed.Milliseconds()), attrs)
	if err != nil {
		m.errorCount.Add(ctx, 1, attrs)
	}
}
