package observability

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps an OpenTelemetry tracer with converter-specific span
// creation methods.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a new Tracer using the given TracerProvider.
func NewTracer(tp trace.TracerProvider) *Tracer {
	return &Tracer{tracer: tp.Tracer(TracerName)}
}

// StartRPC starts a span for one Odoo RPC call.
func (t *Tracer) StartRPC(ctx context.Context, service, method string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "odoo.rpc", trace.WithAttributes(
		RPCServiceAttr(service),
		RPCMethodAttr(method),
	))
}

// StartFieldsFetch starts a span for a fields_get metadata fetch.
func (t *Tracer) StartFieldsFetch(ctx context.Context, model string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "odoo.fields_get", trace.WithAttributes(
		ModelAttr(model),
	))
}

// StartValidate starts a span for a domain validation run.
func (t *Tracer) StartValidate(ctx context.Context, model string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "domain.validate", trace.WithAttributes(
		ModelAttr(model),
	))
}

// EndSpan ends a span, recording err when non-nil.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
