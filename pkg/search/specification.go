package search

import "fmt"

// Logger defines the logging operations the compiler emits diagnostics
// through. pkg/logger satisfies it; a nil logger disables logging.

//go:generate mockgen -source=specification.go -destination=mock_logger.go -package=search
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}
func (nopLogger) Fatal(string, error, ...map[string]interface{}) {}

// Specification compiles declarative search requests against a fixed
// schema. It carries no mutable state: Compile is a pure function of the
// schema and the request (plus log output), so one instance can serve
// concurrent compilations without locking.
type Specification struct {
	schema *Schema
	logger Logger
}

// NewSpecification creates a compiler for the given schema. Passing a
// nil logger disables diagnostics.
func NewSpecification(schema *Schema, logger Logger) *Specification {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Specification{schema: schema, logger: logger}
}

// Compiled is the backend-agnostic output of Compile.
type Compiled struct {
	// Predicate is the AND fold of every filter, starting from True.
	Predicate Predicate
	// Orderings holds one fragment per sort, in declaration order.
	Orderings []Ordering
	// Page is the normalized pagination window.
	Page PageRequest
}

// Compile validates and lowers a request. Filters fold left-to-right
// into a single predicate; sorts map to ordering fragments; pagination
// normalizes to defaults. The first problem aborts compilation, so a
// request either compiles completely or not at all; nothing is
// validated lazily at execution time.
func (s *Specification) Compile(req Request) (*Compiled, error) {
	var acc Predicate = True{}

	for _, f := range req.Filters {
		field, err := s.schema.Resolve(f.Key)
		if err != nil {
			return nil, err
		}

		s.logger.Debug("Applying filter", nil, map[string]interface{}{
			"key":        f.Key,
			"operator":   string(f.Operator),
			"field_type": string(f.FieldType),
		})

		acc, err = f.Operator.Apply(s.logger, field, f, acc)
		if err != nil {
			return nil, err
		}
	}

	orderings := make([]Ordering, 0, len(req.Sorts))
	for _, sort := range req.Sorts {
		if !sort.Direction.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSortDirection, string(sort.Direction))
		}
		field, err := s.schema.Resolve(sort.Key)
		if err != nil {
			return nil, err
		}
		orderings = append(orderings, Ordering{Field: field, Direction: sort.Direction})
	}

	return &Compiled{
		Predicate: acc,
		Orderings: orderings,
		Page:      PageRequestOf(req.Page, req.Size),
	}, nil
}
