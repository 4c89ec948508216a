package search

// SortDirection enumerates the two sort orders.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// Valid reports whether d is a member of the closed direction set.
func (d SortDirection) Valid() bool {
	switch d {
	case SortAsc, SortDesc:
		return true
	}
	return false
}

// Descending reports whether d sorts high-to-low.
func (d SortDirection) Descending() bool {
	return d == SortDesc
}

// Ordering is a single sort-key instruction. Backends apply a slice of
// these as a multi-key ordering, earlier entries taking precedence.
type Ordering struct {
	Field     *FieldRef
	Direction SortDirection
}
