package search

import (
	"errors"
	"fmt"
)

// Sentinel errors for malformed request input. They are wrapped with the
// offending detail via fmt.Errorf("%w: ...") so errors.Is keeps working.
var (
	// ErrUnknownOperator is returned when a filter carries an operator tag
	// outside the closed EQUAL/NOT_EQUAL/LIKE/IN/BETWEEN set.
	ErrUnknownOperator = errors.New("unknown operator")

	// ErrUnknownFieldType is returned when a filter carries a field type tag
	// outside the closed BOOLEAN/CHAR/DATE/DOUBLE/INTEGER/LONG/STRING set.
	ErrUnknownFieldType = errors.New("unknown field type")

	// ErrUnknownSortDirection is returned when a sort carries a direction
	// tag other than ASC or DESC.
	ErrUnknownSortDirection = errors.New("unknown sort direction")

	// ErrEmptyValue is returned when a filter is missing a value it
	// requires (absent value, empty CHAR input, empty IN list).
	ErrEmptyValue = errors.New("empty value")
)

// KeyNotFoundError reports a filter or sort key that does not resolve
// against the schema.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("%s is not a valid field key", e.Key)
}

// InvalidDataTypeError reports a value that cannot be coerced into the
// field type its filter declared.
type InvalidDataTypeError struct {
	Key       string
	FieldType FieldType

	cause error
}

func (e *InvalidDataTypeError) Error() string {
	return fmt.Sprintf("value for key %s cannot be parsed as %s", e.Key, e.FieldType)
}

func (e *InvalidDataTypeError) Unwrap() error {
	return e.cause
}

// IsRequestError reports whether err originates from malformed client
// input rather than a system failure. Hosts exposing the compiler over
// HTTP map these to a 400-class response.
func IsRequestError(err error) bool {
	var keyErr *KeyNotFoundError
	var typeErr *InvalidDataTypeError
	if errors.As(err, &keyErr) || errors.As(err, &typeErr) {
		return true
	}
	return errors.Is(err, ErrUnknownOperator) ||
		errors.Is(err, ErrUnknownFieldType) ||
		errors.Is(err, ErrUnknownSortDirection) ||
		errors.Is(err, ErrEmptyValue)
}
