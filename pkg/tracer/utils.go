package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	traceSpan "go.opentelemetry.io/otel/trace"
)

// StartSpan creates a new span with the given name and returns an
// updated context containing it, along with the span itself. The span
// becomes a child of any span already present in the context; without
// one it starts a new trace.
//
// Parameters:
//   - ctx: The parent context, which may carry a parent span
//   - name: A descriptive name for the operation being traced
//
// Returns:
//   - context.Context: A new context containing the created span
//   - traceSpan.Span: The created span, which must be ended by the caller
//
// Example:
//
//	func (s *store) Search(ctx context.Context, req search.Request) (*search.Page[Document], error) {
//	    ctx, span := s.tracer.StartSpan(ctx, "search-documents")
//	    defer span.End()
//
//	    page, err := s.run(ctx, req)
//	    if err != nil {
//	        s.tracer.RecordErrorOnSpan(span, err)
//	        return nil, err
//	    }
//	    return page, nil
//	}
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span) {
	tracer := t.tracer.Tracer(instrumentationName)
	ctx, span := tracer.Start(ctx, name)
	return ctx, span
}

// RecordErrorOnSpan records an error on a span and sets its status to
// error, which marks the whole operation as failed in trace backends.
// A nil error leaves the span untouched.
//
// Parameters:
//   - span: The span on which to record the error
//   - err: The error to record on the span
//
// Example:
//
//	page, err := postgres.Search[Document](ctx, db, spec, req)
//	if err != nil {
//	    tracer.RecordErrorOnSpan(span, err)
//	    return nil, err
//	}
func (t *Tracer) RecordErrorOnSpan(span traceSpan.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetAttributes adds one or more attributes to a span. Attributes make
// traces searchable and give failed spans the context needed to debug
// them.
//
// Supported value types:
//   - string: Stored as string attributes
//   - int/int64: Stored as integer attributes
//   - float64: Stored as floating-point attributes
//   - bool: Stored as boolean attributes
//   - other types: Converted to strings using fmt.Sprint
//
// Example:
//
//	ctx, span := tracer.StartSpan(ctx, "compile-search")
//	defer span.End()
//
//	tracer.SetAttributes(span, map[string]interface{}{
//	    "filter.count": len(req.Filters),
//	    "sort.count":   len(req.Sorts),
//	    "page.size":    compiled.Page.Size,
//	    "backend":      "postgres",
//	})
func (t *Tracer) SetAttributes(span traceSpan.Span, attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}

	attributes := make([]attribute.KeyValue, 0, len(attrs))

	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			attributes = append(attributes, attribute.String(k, val))
		case int:
			attributes = append(attributes, attribute.Int(k, val))
		case int64:
			attributes = append(attributes, attribute.Int64(k, val))
		case float64:
			attributes = append(attributes, attribute.Float64(k, val))
		case bool:
			attributes = append(attributes, attribute.Bool(k, val))
		default:
			attributes = append(attributes, attribute.String(k, fmt.Sprint(val)))
		}
	}

	span.SetAttributes(attributes...)
}

// GetCarrier extracts the current trace context as a map that can travel
// across process boundaries, following the W3C Trace Context format. The
// map typically holds the "traceparent" header and, when present,
// "tracestate" and baggage entries.
//
// Parameters:
//   - ctx: The context carrying the current trace information
//
// Returns:
//   - map[string]string: The trace context headers
//
// Example:
//
//	// Hand the trace context to an outgoing HTTP request.
//	headers := tracer.GetCarrier(ctx)
//	for key, value := range headers {
//	    req.Header.Set(key, value)
//	}
func (t *Tracer) GetCarrier(ctx context.Context) map[string]string {
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	carrier := propagation.MapCarrier{}
	propagator.Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext is the complement of GetCarrier: it reads trace
// headers received from an upstream service and returns a context whose
// spans continue that trace instead of starting a fresh one.
//
// Parameters:
//   - ctx: The base context to inject trace information into
//   - carrier: A map of trace headers, for example from an HTTP request
//
// Returns:
//   - context.Context: A context linked to the upstream trace
//
// Example:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    headers := make(map[string]string)
//	    for key, values := range r.Header {
//	        if len(values) > 0 {
//	            headers[key] = values[0]
//	        }
//	    }
//
//	    ctx := tracer.SetCarrierOnContext(r.Context(), headers)
//	    ctx, span := tracer.StartSpan(ctx, "handle-search")
//	    defer span.End()
//	    // ...
//	}
func (t *Tracer) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	return propagator.Extract(ctx, propagation.MapCarrier(carrier))
}
