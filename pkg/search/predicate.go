package search

// Predicate is a composable boolean constraint over entity fields. The
// variant set is closed: execution backends dispatch over the concrete
// types below and need no default behavior beyond rejecting the
// impossible.
type Predicate interface {
	isPredicate()
}

// True matches every row. It is the identity the filter fold starts
// from; a request without filters compiles to it.
type True struct{}

// And is the conjunction of two predicates. Compile builds a left-leaning
// chain of these, one link per filter in declaration order.
type And struct {
	Left  Predicate
	Right Predicate
}

// Match constrains a field to equal a typed value.
type Match struct {
	Field *FieldRef
	Value interface{}
}

// NotMatch constrains a field to differ from a typed value.
type NotMatch struct {
	Field *FieldRef
	Value interface{}
}

// Contains constrains the textual form of a field to contain Value,
// case-insensitively. Value is stored upper-cased; backends upper-case
// the field side to match.
type Contains struct {
	Field *FieldRef
	Value string
}

// In constrains a field to equal one of Values.
type In struct {
	Field  *FieldRef
	Values []interface{}
}

// Between constrains a field to the closed interval [Low, High]. Low and
// High share the field's coerced type (time.Time or a numeric kind).
type Between struct {
	Field *FieldRef
	Low   interface{}
	High  interface{}
}

func (True) isPredicate()     {}
func (And) isPredicate()      {}
func (Match) isPredicate()    {}
func (NotMatch) isPredicate() {}
func (Contains) isPredicate() {}
func (In) isPredicate()       {}
func (Between) isPredicate()  {}

// Conjuncts flattens the AND chain of p into its leaf predicates in
// declaration order. True leaves disappear; a predicate that is only
// True yields an empty slice.
func Conjuncts(p Predicate) []Predicate {
	switch v := p.(type) {
	case nil:
		return nil
	case True:
		return nil
	case And:
		return append(Conjuncts(v.Left), Conjuncts(v.Right)...)
	default:
		return []Predicate{p}
	}
}
