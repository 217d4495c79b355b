// Package observability provides OpenTelemetry instrumentation for the
// domain converter's RPC client and CLI.
//
// All instrumentation is opt-in. When no providers are configured the
// no-op constructors are used with zero overhead; the core parser and
// converter are never instrumented so they stay pure.
package observability

import "go.opentelemetry.io/otel/attribute"

// Instrumentation identity constants.
const (
	// TracerName is the instrumentation name for tracing.
	TracerName = "github.com/odoo-tools/domainconv"
	// MeterName is the instrumentation name for metrics.
	MeterName = "github.com/odoo-tools/domainconv"
)

// Semantic attribute keys.
const (
	AttrRPCService = "odoo.rpc.service"
	AttrRPCMethod  = "odoo.rpc.method"
	AttrModel      = "odoo.model"
	AttrDatabase   = "odoo.database"
	AttrCacheHit   = "odoo.fields.cache_hit"
)

// RPCServiceAttr returns the attribute for the RPC service name.
func RPCServiceAttr(service string) attribute.KeyValue {
	return attribute.String(AttrRPCService, service)
}

// RPCMethodAttr returns the attribute for the RPC method name.
func RPCMethodAttr(method string) attribute.KeyValue {
	return attribute.String(AttrRPCMethod, method)
}

// ModelAttr returns the attribute for an Odoo model name.
func ModelAttr(model string) attribute.KeyValue {
	return attribute.String(AttrModel, model)
}

// DatabaseAttr returns the attribute for the Odoo database name.
func DatabaseAttr(database string) attribute.KeyValue {
	return attribute.String(AttrDatabase, database)
}

// CacheHitAttr returns the attribute recording a fields-cache hit or miss.
func CacheHitAttr(hit bool) attribute.KeyValue {
	return attribute.Bool(AttrCacheHit, hit)
}
