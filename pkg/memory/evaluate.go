package memory

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Aleph-Alpha/searchspec/pkg/search"
)

// matches evaluates a compiled predicate against one item. A field the
// item does not carry satisfies no constraint, mirroring how SQL null
// comparisons exclude a row from both = and <>.
func matches(p search.Predicate, item interface{}) (bool, error) {
	switch v := p.(type) {
	case nil:
		return true, nil
	case search.True:
		return true, nil

	case search.And:
		left, err := matches(v.Left, item)
		if err != nil || !left {
			return false, err
		}
		return matches(v.Right, item)

	case search.Match:
		fv, ok := fieldValue(item, v.Field.Path)
		if !ok {
			return false, nil
		}
		c, ok := compare(fv, v.Value)
		return ok && c == 0, nil

	case search.NotMatch:
		fv, ok := fieldValue(item, v.Field.Path)
		if !ok {
			return false, nil
		}
		c, ok := compare(fv, v.Value)
		return ok && c != 0, nil

	case search.Contains:
		fv, ok := fieldValue(item, v.Field.Path)
		if !ok {
			return false, nil
		}
		return strings.Contains(strings.ToUpper(text(fv)), v.Value), nil

	case search.In:
		fv, ok := fieldValue(item, v.Field.Path)
		if !ok {
			return false, nil
		}
		for _, candidate := range v.Values {
			if c, ok := compare(fv, candidate); ok && c == 0 {
				return true, nil
			}
		}
		return false, nil

	case search.Between:
		fv, ok := fieldValue(item, v.Field.Path)
		if !ok {
			return false, nil
		}
		low, lok := compare(fv, v.Low)
		high, hok := compare(fv, v.High)
		return lok && hok && low >= 0 && high <= 0, nil

	default:
		return false, fmt.Errorf("unsupported predicate %T", p)
	}
}

// less orders a before b under the given ordering fragments, earlier
// fragments taking precedence. Items missing a sort field keep their
// relative position for that fragment.
func less(a, b interface{}, orderings []search.Ordering) bool {
	for _, o := range orderings {
		av, aok := fieldValue(a, o.Field.Path)
		bv, bok := fieldValue(b, o.Field.Path)
		if !aok || !bok {
			continue
		}
		c, ok := compare(av, bv)
		if !ok || c == 0 {
			continue
		}
		if o.Direction.Descending() {
			return c > 0
		}
		return c < 0
	}
	return false
}

// fieldValue walks path into item: struct fields match by json tag or
// case-insensitive name, string-keyed maps by key. Pointers and
// interfaces are dereferenced along the way; a nil link or unknown
// segment reports false.
func fieldValue(item interface{}, path []string) (interface{}, bool) {
	v := reflect.ValueOf(item)
	for _, segment := range path {
		for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
			if v.IsNil() {
				return nil, false
			}
			v = v.Elem()
		}

		switch v.Kind() {
		case reflect.Struct:
			field, ok := structField(v, segment)
			if !ok {
				return nil, false
			}
			v = field
		case reflect.Map:
			if v.Type().Key().Kind() != reflect.String {
				return nil, false
			}
			key := reflect.ValueOf(segment).Convert(v.Type().Key())
			v = v.MapIndex(key)
			if !v.IsValid() {
				return nil, false
			}
		default:
			return nil, false
		}
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

func structField(v reflect.Value, segment string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if jsonName(f) == segment || strings.EqualFold(f.Name, segment) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	return tag
}

// compare orders two coerced values: -1, 0 or 1 plus whether the pair is
// comparable at all. Numerics compare across kinds, times
// chronologically, strings lexically, bools false before true.
func compare(a, b interface{}) (int, bool) {
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		switch {
		case at.Before(bt):
			return -1, true
		case at.After(bt):
			return 1, true
		}
		return 0, true
	}

	if af, ok := toFloat64(a); ok {
		bf, ok := toFloat64(b)
		if !ok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	}

	if as, ok := asString(a); ok {
		bs, ok := asString(b)
		if !ok {
			return 0, false
		}
		return strings.Compare(as, bs), true
	}

	if ab, ok := a.(bool); ok {
		bb, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case ab == bb:
			return 0, true
		case !ab:
			return -1, true
		}
		return 1, true
	}

	return 0, false
}

func toFloat64(v interface{}) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func asString(v interface{}) (string, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func text(v interface{}) string {
	if s, ok := asString(v); ok {
		return s
	}
	if t, ok := v.(time.Time); ok {
		return t.Format(search.DateLayout)
	}
	return fmt.Sprint(v)
}
