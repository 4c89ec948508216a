package search

// Pagination defaults applied when a request leaves page or size unset.
const (
	DefaultPage = 0
	DefaultSize = 100
)

// Request is the declarative search payload, shaped for direct JSON
// decoding. Nil Filters or Sorts behave as empty; nil Page or Size fall
// back to the defaults.
type Request struct {
	Filters []FilterRequest `json:"filters"`
	Sorts   []SortRequest   `json:"sorts"`
	Page    *int            `json:"page"`
	Size    *int            `json:"size"`
}

// FilterRequest describes one filter condition. Value, ValueTo and
// Values stay loosely typed at this boundary; the declared FieldType
// coerces them when the filter compiles.
type FilterRequest struct {
	Key       string        `json:"key"`
	Operator  Operator      `json:"operator"`
	FieldType FieldType     `json:"field_type"`
	Value     interface{}   `json:"value,omitempty"`
	ValueTo   interface{}   `json:"value_to,omitempty"`
	Values    []interface{} `json:"values,omitempty"`
}

// SortRequest describes one sort key with its direction.
type SortRequest struct {
	Key       string        `json:"key"`
	Direction SortDirection `json:"direction"`
}

// PageRequest is a normalized, 0-based pagination window.
type PageRequest struct {
	Page int
	Size int
}

// Offset returns the number of rows the window skips.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// PageRequestOf normalizes raw pagination parameters. Nil, negative page
// and non-positive size all fall back to DefaultPage/DefaultSize.
func PageRequestOf(page, size *int) PageRequest {
	normalized := PageRequest{Page: DefaultPage, Size: DefaultSize}
	if page != nil && *page >= 0 {
		normalized.Page = *page
	}
	if size != nil && *size > 0 {
		normalized.Size = *size
	}
	return normalized
}
