package search

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the textual form accepted and produced for DATE values:
// day-month-year with a 24-hour clock, e.g. "01-03-2022 00:10:00".
const DateLayout = "02-01-2006 15:04:05"

// FieldType declares how the raw value of a filter is coerced into a
// typed value. The set is closed; each variant is a stateless tag.
type FieldType string

const (
	FieldTypeBoolean FieldType = "BOOLEAN"
	FieldTypeChar    FieldType = "CHAR"
	FieldTypeDate    FieldType = "DATE"
	FieldTypeDouble  FieldType = "DOUBLE"
	FieldTypeInteger FieldType = "INTEGER"
	FieldTypeLong    FieldType = "LONG"
	FieldTypeString  FieldType = "STRING"
)

// Parse coerces the textual form of a value into the typed value of ft.
//
// BOOLEAN is permissive: anything but a case-insensitive "true" parses to
// false. CHAR takes the first rune and fails on empty input. DATE parses
// DateLayout and returns (nil, nil) on failure; callers treat the nil as
// an invalid value. DOUBLE, INTEGER and LONG parse strictly. STRING is
// the identity.
func (ft FieldType) Parse(raw string) (interface{}, error) {
	switch ft {
	case FieldTypeBoolean:
		return strings.EqualFold(raw, "true"), nil
	case FieldTypeChar:
		if raw == "" {
			return nil, ErrEmptyValue
		}
		return string([]rune(raw)[0]), nil
	case FieldTypeDate:
		t, err := time.Parse(DateLayout, raw)
		if err != nil {
			return nil, nil
		}
		return t, nil
	case FieldTypeDouble:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	case FieldTypeInteger:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	case FieldTypeLong:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	case FieldTypeString:
		return raw, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFieldType, string(ft))
	}
}

// rawString renders a loosely-typed request scalar into the textual form
// Parse consumes, so that {"value": 100} and {"value": "100"} behave
// identically. JSON numbers arrive as float64; integral ones must not
// grow a decimal point or exponent on the way through.
func rawString(v interface{}) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", ErrEmptyValue
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case int:
		return strconv.Itoa(t), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case json.Number:
		return t.String(), nil
	case time.Time:
		return t.Format(DateLayout), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return fmt.Sprintf("%v", t), nil
	}
}
