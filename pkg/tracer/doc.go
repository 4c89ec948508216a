// Package tracer provides distributed tracing functionality using OpenTelemetry.
//
// The tracer package offers a simplified interface for implementing distributed
// tracing in Go applications. It abstracts away the OpenTelemetry SDK setup and
// provides a small API for creating spans, recording failures and carrying trace
// context across process boundaries.
//
// Core Features:
//   - Simple span creation and management
//   - Error recording and status tracking
//   - Typed span attributes from plain maps
//   - Cross-service trace context propagation (W3C Trace Context)
//   - OTLP/HTTP export with batching, switchable per environment
//
// Basic Usage:
//
//	import (
//		"context"
//
//		"github.com/Aleph-Alpha/searchspec/pkg/logger"
//		"github.com/Aleph-Alpha/searchspec/pkg/tracer"
//	)
//
//	log := logger.NewLoggerClient(logger.Config{Level: "info"})
//
//	tracerClient := tracer.NewClient(tracer.Config{
//		ServiceName:  "searchspec",
//		AppEnv:       "development",
//		EnableExport: true,
//	}, log)
//
//	ctx, span := tracerClient.StartSpan(context.Background(), "search-documents")
//	defer span.End()
//
//	tracerClient.SetAttributes(span, map[string]interface{}{
//		"filter.count": 2,
//		"backend":      "postgres",
//	})
//
//	if err != nil {
//		tracerClient.RecordErrorOnSpan(span, err)
//		return nil, err
//	}
//
// Distributed Tracing Across Services:
//
//	// In the sending service
//	ctx, span := tracerClient.StartSpan(ctx, "enqueue-search")
//	defer span.End()
//
//	headers := tracerClient.GetCarrier(ctx)
//	for key, value := range headers {
//		req.Header.Set(key, value)
//	}
//
//	// In the receiving service
//	func handler(w http.ResponseWriter, r *http.Request) {
//		headers := make(map[string]string)
//		for key, values := range r.Header {
//			if len(values) > 0 {
//				headers[key] = values[0]
//			}
//		}
//
//		ctx := tracerClient.SetCarrierOnContext(r.Context(), headers)
//		ctx, span := tracerClient.StartSpan(ctx, "handle-search")
//		defer span.End()
//		// ...
//	}
//
// FX Module Integration:
//
// This package provides an fx module that builds the tracer from a
// tracer.Config in the container and flushes pending spans on shutdown:
//
//	app := fx.New(
//		logger.FXModule,
//		tracer.FXModule,
//		// ... other modules
//	)
//	app.Run()
//
// Testing:
//
// NewClientWithProvider accepts a prebuilt SDK provider, so tests can wire
// the span helpers to an in-memory exporter instead of a collector:
//
//	exporter := tracetest.NewInMemoryExporter()
//	provider := trace.NewTracerProvider(trace.WithSyncer(exporter))
//	tracerClient := tracer.NewClientWithProvider(provider, log)
//
// Best Practices:
//
//   - Create spans for significant operations in your code
//   - Always defer span.End() immediately after creating a span
//   - Use descriptive span names that identify the operation
//   - Record errors when operations fail
//   - Propagate trace context whenever a request leaves the process
//
// Thread Safety:
//
// All methods on the Tracer type and the returned spans are safe for
// concurrent use by multiple goroutines.
package tracer
