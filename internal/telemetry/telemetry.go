// Package telemetry wires store mutations to an OTLP trace endpoint.
// Export is opt-in: without OTEL_EXPORTER_OTLP_ENDPOINT set, Init is a no-op
// and Track falls back to the global (noop) tracer, so the store never pays
// for tracing it did not ask for.
package telemetry

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "griddeck/dashboard"

var provider *sdktrace.TracerProvider

// Init sets up the OTLP HTTP exporter if OTEL_EXPORTER_OTLP_ENDPOINT is set.
// Returns a shutdown function; both are nil-safe when export is disabled.
func Init(ctx context.Context) (func(context.Context) error, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // local collectors only
	)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "griddeck"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}

// tracer returns the configured tracer, or the global noop tracer when
// Init was skipped or disabled.
func tracer() oteltrace.Tracer {
	if provider != nil {
		return provider.Tracer(tracerName)
	}
	return otel.Tracer(tracerName)
}

// Track starts a span for one store mutation and returns a closer that ends
// it, recording the error (if any) on the way out. Intended for use with
// named error returns:
//
//	func (s *Store) AddWidget(...) (w Widget, err error) {
//		defer telemetry.Track("dashboard.add_widget")(&err)
//		...
//	}
func Track(op string, attrs ...attribute.KeyValue) func(*error) {
	_, span := tracer().Start(context.Background(), op, oteltrace.WithAttributes(attrs...))
	return func(errp *error) {
		if errp != nil && *errp != nil {
			span.RecordError(*errp)
			span.SetStatus(codes.Error, (*errp).Error())
		}
		span.End()
	}
}
