package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Instrumentation scope recorded on every span this package starts.
const instrumentationName = "github.com/Aleph-Alpha/searchspec/pkg/tracer"

// Logger defines the logging operations the tracer package reports
// exporter setup and shutdown diagnostics through.

//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=tracer
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Tracer provides a simplified API for distributed tracing with
// OpenTelemetry. It wraps the SDK TracerProvider and offers convenient
// methods for creating spans, recording errors, attaching attributes and
// propagating trace context across process boundaries.
//
// The zero value is not usable; construct instances with NewClient or
// NewClientWithProvider. A Tracer is safe for concurrent use.
type Tracer struct {
	tracer *trace.TracerProvider
	logger Logger
}

// NewClient builds a Tracer from configuration and installs it as the
// process-global OpenTelemetry provider, together with a W3C
// traceparent/baggage propagator.
//
// With export enabled, spans are batched to an OTLP/HTTP collector; a
// failure to initialize the exporter is fatal. With export disabled the
// provider records spans locally and drops them, which keeps the span
// helpers usable in development setups without a collector.
//
// Example:
//
//	tracerClient := tracer.NewClient(tracer.Config{
//	    ServiceName:  "searchspec",
//	    AppEnv:       "production",
//	    EnableExport: true,
//	}, log)
//
//	ctx, span := tracerClient.StartSpan(context.Background(), "compile-search")
//	defer span.End()
func NewClient(cfg Config, logger Logger) *Tracer {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		var clientOptions []otlptracehttp.Option
		if cfg.Endpoint != "" {
			clientOptions = append(clientOptions, otlptracehttp.WithEndpoint(cfg.Endpoint))
		}
		if cfg.Insecure {
			clientOptions = append(clientOptions, otlptracehttp.WithInsecure())
		}

		client := otlptracehttp.NewClient(clientOptions...)
		exporter, err := otlptrace.New(context.Background(), client)
		if err != nil {
			logger.Fatal("Cannot initialize the trace exporter", err, nil)
			return nil
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	attributes := []attribute.KeyValue{
		semconv.ServiceName(serviceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	}
	if cfg.ServiceVersion != "" {
		attributes = append(attributes, semconv.ServiceVersion(cfg.ServiceVersion))
	}
	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		attributes...,
	)))

	tp := trace.NewTracerProvider(options...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return &Tracer{tracer: tp, logger: logger}
}

// NewClientWithProvider wraps an already-built provider without touching
// the process-global OpenTelemetry state. Tests use it to drive the span
// helpers against an in-memory exporter; callers keep ownership of the
// provider's shutdown.
func NewClientWithProvider(tp *trace.TracerProvider, logger Logger) *Tracer {
	return &Tracer{tracer: tp, logger: logger}
}
