package memory

import (
	"context"
	"sort"

	"github.com/Aleph-Alpha/searchspec/pkg/search"
)

// Store evaluates search requests against a fixed slice of items.
type Store[T any] struct {
	spec  *search.Specification
	items []T
}

// NewStore creates a store over items. The slice is held by reference.
func NewStore[T any](spec *search.Specification, items []T) *Store[T] {
	return &Store[T]{spec: spec, items: items}
}

// Search compiles req and runs it: filter, stable multi-key sort,
// paginate. The context is consulted between phases so a cancelled
// caller does not pay for sorting a large result it no longer wants.
func (s *Store[T]) Search(ctx context.Context, req search.Request) (*search.Page[T], error) {
	compiled, err := s.spec.Compile(req)
	if err != nil {
		return nil, err
	}

	filtered := make([]T, 0, len(s.items))
	for _, item := range s.items {
		ok, err := matches(compiled.Predicate, item)
		if err != nil {
			return nil, err
		}
		if ok {
			filtered = append(filtered, item)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(compiled.Orderings) > 0 {
		orderings := compiled.Orderings
		sort.SliceStable(filtered, func(i, j int) bool {
			return less(filtered[i], filtered[j], orderings)
		})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := int64(len(filtered))
	content := pageWindow(filtered, compiled.Page)
	return search.NewPage(content, compiled.Page, total), nil
}

func pageWindow[T any](items []T, page search.PageRequest) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
