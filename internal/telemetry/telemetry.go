// Package telemetry provides OpenTelemetry tracing for maze generation.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "bspmaze"
	serviceVersion = "0.1.0"
)

// Option customizes Setup.
type Option func(*settings)

type settings struct {
	exporter sdktrace.SpanExporter
	sync     bool
}

// WithExporter replaces the OTLP HTTP exporter.
func WithExporter(exp sdktrace.SpanExporter) Option {
	return func(s *settings) { s.exporter = exp }
}

// WithSyncExport exports each span as it ends instead of batching.
func WithSyncExport() Option {
	return func(s *settings) { s.sync = true }
}

// Setup installs a global tracer provider. Without WithExporter it exports
// over OTLP HTTP, configured by the standard OTEL_* environment variables:
//   - OTEL_EXPORTER_OTLP_ENDPOINT: collector endpoint
//   - OTEL_EXPORTER_OTLP_HEADERS: extra headers, e.g. API keys
//
// Returns a shutdown function that should be called on application exit.
func Setup(ctx context.Context, opts ...Option) (shutdown func(context.Context) error, err error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	if s.exporter == nil {
		s.exporter, err = otlptracehttp.New(ctx)
		if err != nil {
			return nil, err
		}
	}

	// Own resource, not merged with Default(), to avoid schema URL conflicts
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("host.name", hostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.name", "go"),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	export := sdktrace.WithBatcher(s.exporter)
	if s.sync {
		export = sdktrace.WithSyncer(s.exporter)
	}
	tp := sdktrace.NewTracerProvider(export, sdktrace.WithResource(res))

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer for the given component.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("bspmaze/" + name)
}

// Enabled reports whether an OTLP endpoint has been configured.
func Enabled() bool {
	return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" ||
		os.Getenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT") != ""
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
