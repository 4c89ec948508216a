package search

// Page is the result envelope execution backends return: one window of
// content plus the totals needed to render pagination controls.
type Page[T any] struct {
	Content       []T
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// NewPage assembles a Page from a content window, the normalized page
// request that produced it and the unpaginated total.
func NewPage[T any](content []T, page PageRequest, total int64) *Page[T] {
	totalPages := 0
	if total > 0 && page.Size > 0 {
		totalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	}
	return &Page[T]{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
