// Package search compiles declarative filter/sort requests into
// backend-agnostic query predicates.
//
// A client describes what it wants as data (a list of filters, a list of
// sorts, pagination parameters, typically decoded from a JSON body), and
// the compiler turns that description into a Predicate tree, an ordered
// list of Ordering fragments, and a normalized PageRequest. Execution
// backends (pkg/postgres, pkg/memory, pkg/qdrant) translate the compiled
// form into their native query representation; the core itself performs
// no I/O.
//
// Core Features:
//
//   - Closed filter vocabulary: EQUAL, NOT_EQUAL, LIKE, IN, BETWEEN
//   - Typed value coercion per declared FieldType (BOOLEAN, CHAR, DATE,
//     DOUBLE, INTEGER, LONG, STRING)
//   - Dotted-path field resolution against an explicit Schema descriptor
//   - Deterministic, fail-fast validation: unknown keys and unparseable
//     values are rejected before anything executes
//   - Stateless compilation, safe for unsynchronized concurrent use
//
// Basic Usage:
//
//	import "github.com/Aleph-Alpha/searchspec/pkg/search"
//
//	schema := search.NewSchema().
//		Field("name", search.FieldTypeString).
//		Field("usages", search.FieldTypeInteger).
//		Field("releaseDate", search.FieldTypeDate)
//
//	spec := search.NewSpecification(schema, log)
//
//	var req search.Request
//	if err := json.Unmarshal(body, &req); err != nil {
//		// ...
//	}
//
//	compiled, err := spec.Compile(req)
//	if err != nil {
//		if search.IsRequestError(err) {
//			// reject as a client error (HTTP 400 in a REST host)
//		}
//		// ...
//	}
//	// hand compiled.Predicate / compiled.Orderings / compiled.Page
//	// to an execution backend
//
// Wire Format:
//
// Request is designed to be decoded straight from a JSON body:
//
//	{
//	  "filters": [
//	    {"key": "name", "operator": "EQUAL", "field_type": "STRING", "value": "CentOS"},
//	    {"key": "usages", "operator": "BETWEEN", "field_type": "INTEGER",
//	     "value": 100, "value_to": 250}
//	  ],
//	  "sorts": [{"key": "releaseDate", "direction": "ASC"}],
//	  "page": 0,
//	  "size": 10
//	}
//
// Filters are combined with AND in declaration order; sort fragments are
// applied as a multi-key ordering with earlier entries taking precedence.
//
// Thread Safety:
//
// Schemas are built once and then only read; Specification carries no
// mutable state, so a single instance may compile independent requests
// from many goroutines without locking.
package search
