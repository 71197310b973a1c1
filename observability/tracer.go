// Package observability provides the OpenTelemetry tracing helpers used
// to instrument provider invocations. It works against the global tracer
// provider; exporter wiring is the embedding application's job.
package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/kbukum/callkit"

// Span attribute keys for provider invocations.
const (
	AttrProvider     = "call.provider"
	AttrOperation    = "call.operation"
	AttrCallID       = "call.id"
	AttrErrorKind    = "call.error_kind"
	AttrUsedFallback = "call.used_fallback"
)

// StartSpan starts a span from the global tracer provider.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, opts...)
}

// SetAttribute sets a string attribute on the current span.
func SetAttribute(ctx context.Context, key, value string) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String(key, value))
}

// SetBoolAttribute sets a bool attribute on the current span.
func SetBoolAttribute(ctx context.Context, key string, value bool) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.Bool(key, value))
}

// SetError records an error on the current span and marks it failed.
func SetError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
