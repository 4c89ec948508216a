// Package memory provides an in-process execution backend for compiled
// search specifications. It evaluates predicates directly against Go
// values, which makes it the reference for the compiler's semantics and
// a practical backend for hosts that already hold their data in memory.
//
// Core Features:
//   - Generic Store over any item type (structs, pointers, string-keyed maps)
//   - Field access by resolved path, descending through nested values
//   - Stable multi-key sorting and offset/size pagination
//   - Same Page envelope as the database backends
//
// Basic Usage:
//
//	spec := search.NewSpecification(schema, log)
//	store := memory.NewStore(spec, distros)
//
//	page, err := store.Search(ctx, req)
//	if err != nil {
//	    return err
//	}
//	for _, distro := range page.Content {
//	    fmt.Println(distro.Name)
//	}
//
// Thread Safety:
// A Store is immutable after construction and safe for concurrent
// searches. The items slice is shared, not copied; callers must not
// mutate it while searches run.
package memory
