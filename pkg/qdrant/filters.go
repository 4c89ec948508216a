package qdrant

import (
	"fmt"
	"time"

	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/Aleph-Alpha/searchspec/pkg/search"
)

// BuildFilter lowers a compiled predicate to a Qdrant payload filter.
// Conjuncts become Must conditions and negated matches become MustNot;
// dotted keys address nested payload objects as-is. Contains lowers to
// a full text match, which matches whole tokens under the field's text
// index rather than arbitrary substrings. A predicate with no
// conditions yields a nil filter, meaning unfiltered.
func BuildFilter(pred search.Predicate) (*qdrant.Filter, error) {
	var must, mustNot []*qdrant.Condition

	for _, conjunct := range search.Conjuncts(pred) {
		switch p := conjunct.(type) {
		case search.Match:
			cond, err := matchCondition(p.Field, p.Value)
			if err != nil {
				return nil, err
			}
			must = append(must, cond)
		case search.NotMatch:
			cond, err := matchCondition(p.Field, p.Value)
			if err != nil {
				return nil, err
			}
			mustNot = append(mustNot, cond)
		case search.Contains:
			must = append(must, qdrant.NewMatchText(p.Field.Key, p.Value))
		case search.In:
			cond, err := setCondition(p.Field, p.Values)
			if err != nil {
				return nil, err
			}
			must = append(must, cond)
		case search.Between:
			cond, err := rangeCondition(p.Field, p.Low, p.High)
			if err != nil {
				return nil, err
			}
			must = append(must, cond)
		default:
			return nil, fmt.Errorf("unsupported predicate %T", conjunct)
		}
	}

	if len(must) == 0 && len(mustNot) == 0 {
		return nil, nil
	}

	return &qdrant.Filter{Must: must, MustNot: mustNot}, nil
}

// matchCondition builds the exact-match condition for a coerced scalar.
// Floats and timestamps have no exact-match condition in Qdrant; both
// lower to a range with equal bounds.
func matchCondition(field *search.FieldRef, value interface{}) (*qdrant.Condition, error) {
	switch v := value.(type) {
	case string:
		return qdrant.NewMatch(field.Key, v), nil
	case bool:
		return qdrant.NewMatchBool(field.Key, v), nil
	case int:
		return qdrant.NewMatchInt(field.Key, int64(v)), nil
	case int64:
		return qdrant.NewMatchInt(field.Key, v), nil
	case float64:
		return qdrant.NewRange(field.Key, &qdrant.Range{Gte: &v, Lte: &v}), nil
	case time.Time:
		ts := timestamppb.New(v)
		return qdrant.NewDatetimeRange(field.Key, &qdrant.DatetimeRange{Gte: ts, Lte: ts}), nil
	default:
		return nil, fmt.Errorf("no qdrant condition for %T value on field %q", value, field.Key)
	}
}

// setCondition builds the membership condition for IN values. Qdrant
// exposes set matches for keywords and integers only; mixed or other
// element types are rejected.
func setCondition(field *search.FieldRef, values []interface{}) (*qdrant.Condition, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("empty IN set for field %q", field.Key)
	}

	switch values[0].(type) {
	case string:
		keywords := make([]string, 0, len(values))
		for _, value := range values {
			s, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("mixed IN set for field %q", field.Key)
			}
			keywords = append(keywords, s)
		}
		return qdrant.NewMatchKeywords(field.Key, keywords...), nil
	case int, int64:
		ints := make([]int64, 0, len(values))
		for _, value := range values {
			switch n := value.(type) {
			case int:
				ints = append(ints, int64(n))
			case int64:
				ints = append(ints, n)
			default:
				return nil, fmt.Errorf("mixed IN set for field %q", field.Key)
			}
		}
		return qdrant.NewMatchInts(field.Key, ints...), nil
	default:
		return nil, fmt.Errorf("no qdrant set condition for %T values on field %q", values[0], field.Key)
	}
}

// rangeCondition builds the closed-interval condition for BETWEEN
// bounds, as a datetime range for timestamps and a numeric range
// otherwise.
func rangeCondition(field *search.FieldRef, low, high interface{}) (*qdrant.Condition, error) {
	if lo, ok := low.(time.Time); ok {
		hi, ok := high.(time.Time)
		if !ok {
			return nil, fmt.Errorf("mixed BETWEEN bounds for field %q", field.Key)
		}
		return qdrant.NewDatetimeRange(field.Key, &qdrant.DatetimeRange{
			Gte: timestamppb.New(lo),
			Lte: timestamppb.New(hi),
		}), nil
	}

	lo, err := toFloat(low)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field.Key, err)
	}
	hi, err := toFloat(high)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field.Key, err)
	}

	return qdrant.NewRange(field.Key, &qdrant.Range{Gte: &lo, Lte: &hi}), nil
}

// toFloat widens the numeric kinds the compiler produces into the
// float64 bounds Qdrant ranges use.
func toFloat(value interface{}) (float64, error) {
	switch n := value.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("no numeric range bound for %T", value)
	}
}
