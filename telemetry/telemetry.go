// Package telemetry wires the harness's own tracer and meter providers and
// defines its metric instruments (step count, step duration, alert count,
// trace duration). Of these, only the alert count is recorded, by the
// safety coordinator.
package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/trinityguard/sentinel"

// NewTracerProvider builds a TracerProvider using a SimpleSpanProcessor
// over exporter, so spans are exported as soon as they complete rather
// than batched. A nil exporter yields a provider with no processor
// (spans are created but never exported — useful for unit tests that only
// check span attributes via a captured context).
func NewTracerProvider(ctx context.Context, serviceName string, exporter sdktrace.SpanExporter, logger *slog.Logger) *sdktrace.TracerProvider {
	if logger == nil {
		logger = slog.Default()
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceNameKey.String(serviceName)))
	if err != nil {
		logger.Warn("telemetry: failed to build resource, using default", "err", err)
		res = resource.Default()
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if exporter != nil {
		opts = append(opts, sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)))
	}

	return sdktrace.NewTracerProvider(opts...)
}

// Tracer returns the harness's named tracer from tp.
func Tracer(tp *sdktrace.TracerProvider) trace.Tracer {
	return tp.Tracer(instrumentationName)
}
