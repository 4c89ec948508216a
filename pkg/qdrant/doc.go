// Package qdrant executes compiled search specifications against the
// Qdrant vector database.
//
// The package wraps the official Qdrant gRPC client with lifecycle
// management and a predicate adapter: filters compiled by pkg/search
// lower to Qdrant payload filters, so the same declarative request that
// drives a relational query narrows a similarity search. It integrates
// with the fx dependency injection framework and supports builder-style
// configuration.
//
// Core Features:
//
//   - Managed client lifecycle with Fx integration and health checks
//   - Config struct supporting environment and YAML loading
//   - Collection bootstrap sized from configuration (cosine distance)
//   - Batched point upserts with payload metadata
//   - Filtered similarity search driven by compiled specifications
//   - Payload decoding from protobuf value trees to plain Go values
//
// Basic Usage:
//
//	import (
//	    "github.com/Aleph-Alpha/searchspec/pkg/qdrant"
//	    "github.com/Aleph-Alpha/searchspec/pkg/search"
//	)
//
//	client, err := qdrant.NewQdrantClient(qdrant.QdrantParams{
//	    Config: qdrant.FromEndpoint("localhost").
//	        WithCollection("operating_systems").
//	        WithVectorSize(4),
//	    Logger: log,
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	if err := client.EnsureCollection(ctx); err != nil {
//	    return err
//	}
//
//	// Upsert points with payloads
//	err = client.Upsert(ctx, []qdrant.Point{
//	    {ID: 1, Vector: vec, Payload: map[string]interface{}{"name": "Ubuntu", "usages": 2000}},
//	})
//
//	// Filtered similarity search
//	spec := search.NewSpecification(schema, log)
//	hits, err := client.SearchPoints(ctx, queryVector, spec, search.Request{
//	    Filters: []search.FilterRequest{
//	        {Key: "usages", Operator: search.OperatorBetween, FieldType: search.FieldTypeInteger, Value: 100, ValueTo: 250},
//	    },
//	})
//	for _, hit := range hits {
//	    fmt.Printf("id=%s score=%.4f name=%v\n", hit.ID, hit.Score, hit.Payload["name"])
//	}
//
// Filtering:
//
// BuildFilter lowers a compiled predicate to a *qdrant.Filter and can
// be used directly when composing custom queries:
//
//	compiled, err := spec.Compile(req)
//	filter, err := qdrant.BuildFilter(compiled.Predicate)
//
// Equality on strings, integers and booleans becomes an exact payload
// match; floats and timestamps become ranges with equal bounds; IN
// becomes a keyword or integer set match; BETWEEN becomes a closed
// range. Contains maps to Qdrant's full text match, which works on
// tokens rather than arbitrary substrings. Sort fragments cannot be
// honored, similarity order wins; they are logged and ignored.
//
// FX Module Integration:
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    // other modules...
//	)
//	app.Run()
//
// Configuration:
//
// The client can be configured via environment variables or YAML:
//
//	QDRANT_ENDPOINT=localhost
//	QDRANT_PORT=6334
//	QDRANT_API_KEY=your-api-key
//	QDRANT_COLLECTION=operating_systems
//	QDRANT_VECTOR_SIZE=1536
//
// Performance Considerations:
//
// Upsert splits large point sets into batches (default batch size 200)
// and waits for each batch to persist, which bounds memory usage and
// avoids timeouts when ingesting large datasets.
//
// Thread Safety:
//
// All exported methods on Client are safe for concurrent use by
// multiple goroutines.
//
// Package Layout:
//
//	qdrant/
//	├── setup.go         // Client construction and health checks
//	├── configs.go       // Configuration struct and builders
//	├── operations.go    // Collection and point operations
//	├── filters.go       // Predicate lowering to payload filters
//	├── search.go        // Filtered similarity search
//	├── utils.go         // Nested proto helpers
//	└── fx_module.go     // Fx wiring
package qdrant
