package search

import (
	"fmt"
	"strings"
)

// Operator enumerates the filter comparison kinds. The set is closed;
// Apply dispatches over it with a single switch.
type Operator string

const (
	OperatorEqual    Operator = "EQUAL"
	OperatorNotEqual Operator = "NOT_EQUAL"
	OperatorLike     Operator = "LIKE"
	OperatorIn       Operator = "IN"
	OperatorBetween  Operator = "BETWEEN"
)

// Apply folds the fragment described by f onto acc and returns the new
// accumulator. Inputs are never mutated; on error the accumulator is
// discarded by the caller, so no partially-applied predicate escapes.
//
// BETWEEN only orders DATE and the numeric field types. For CHAR,
// BOOLEAN and STRING it adds no constraint and logs a diagnostic;
// STRING is excluded even though lexical ordering would be well defined.
func (op Operator) Apply(logger Logger, field *FieldRef, f FilterRequest, acc Predicate) (Predicate, error) {
	switch op {
	case OperatorEqual:
		v, err := coerce(logger, f.FieldType, f.Key, f.Value, false)
		if err != nil {
			return nil, err
		}
		return And{Left: acc, Right: Match{Field: field, Value: v}}, nil

	case OperatorNotEqual:
		v, err := coerce(logger, f.FieldType, f.Key, f.Value, false)
		if err != nil {
			return nil, err
		}
		return And{Left: acc, Right: NotMatch{Field: field, Value: v}}, nil

	case OperatorLike:
		v, err := coerce(logger, f.FieldType, f.Key, f.Value, true)
		if err != nil {
			return nil, err
		}
		needle, _ := rawString(v)
		return And{Left: acc, Right: Contains{Field: field, Value: needle}}, nil

	case OperatorIn:
		if len(f.Values) == 0 {
			return nil, &InvalidDataTypeError{Key: f.Key, FieldType: f.FieldType, cause: ErrEmptyValue}
		}
		values := make([]interface{}, 0, len(f.Values))
		for _, raw := range f.Values {
			v, err := coerce(logger, f.FieldType, f.Key, raw, false)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		return And{Left: acc, Right: In{Field: field, Values: values}}, nil

	case OperatorBetween:
		switch f.FieldType {
		case FieldTypeDate, FieldTypeDouble, FieldTypeInteger, FieldTypeLong:
			low, err := coerce(logger, f.FieldType, f.Key, f.Value, false)
			if err != nil {
				return nil, err
			}
			high, err := coerce(logger, f.FieldType, f.Key, f.ValueTo, false)
			if err != nil {
				return nil, err
			}
			return And{Left: acc, Right: Between{Field: field, Low: low, High: high}}, nil
		case FieldTypeBoolean, FieldTypeChar, FieldTypeString:
			logger.Warn("Range filter dropped for non-ordered field type", nil, map[string]interface{}{
				"key":        f.Key,
				"field_type": string(f.FieldType),
			})
			return acc, nil
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFieldType, string(f.FieldType))
		}

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, string(op))
	}
}

// coerce renders a raw request scalar to text and parses it under ft.
// Every failure mode surfaces as InvalidDataTypeError: a missing value,
// a strict parse failure, and the DATE layer's nil-on-failure result
// (which gets its diagnostic log entry here).
func coerce(logger Logger, ft FieldType, key string, raw interface{}, upper bool) (interface{}, error) {
	text, err := rawString(raw)
	if err != nil {
		return nil, &InvalidDataTypeError{Key: key, FieldType: ft, cause: err}
	}
	if upper {
		text = strings.ToUpper(text)
	}

	v, err := ft.Parse(text)
	if err != nil {
		return nil, &InvalidDataTypeError{Key: key, FieldType: ft, cause: err}
	}
	if v == nil {
		logger.Error("Could not parse value as date", nil, map[string]interface{}{
			"key":   key,
			"value": text,
		})
		return nil, &InvalidDataTypeError{Key: key, FieldType: ft}
	}
	return v, nil
}
