package qdrant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/searchspec/pkg/search"
)

func osPayloadSchema() *search.Schema {
	company := search.NewSchema().
		Nested("company", search.NewSchema().
			Field("country", search.FieldTypeString))

	return search.NewSchema().
		Field("name", search.FieldTypeString).
		Field("kernel", search.FieldTypeString).
		Field("releaseDate", search.FieldTypeDate).
		Field("usages", search.FieldTypeInteger).
		Field("active", search.FieldTypeBoolean).
		Field("rating", search.FieldTypeDouble).
		Nested("maintainer", company)
}

func compileFilter(t *testing.T, filters []search.FilterRequest) search.Predicate {
	t.Helper()

	spec := search.NewSpecification(osPayloadSchema(), nil)
	compiled, err := spec.Compile(search.Request{Filters: filters})
	if err != nil {
		t.Fatalf("compile: unexpected error: %v", err)
	}
	return compiled.Predicate
}

func mustBuildFilter(t *testing.T, pred search.Predicate) *qdrant.Filter {
	t.Helper()

	filter, err := BuildFilter(pred)
	if err != nil {
		t.Fatalf("BuildFilter: unexpected error: %v", err)
	}
	if filter == nil {
		t.Fatal("expected a filter, got nil")
	}
	return filter
}

func fieldCondition(t *testing.T, cond *qdrant.Condition) *qdrant.FieldCondition {
	t.Helper()

	fc := cond.GetField()
	if fc == nil {
		t.Fatalf("expected a field condition, got %T", cond.ConditionOneOf)
	}
	return fc
}

func TestBuildFilterNoConditionsYieldsNil(t *testing.T) {
	pred := compileFilter(t, nil)

	filter, err := BuildFilter(pred)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter != nil {
		t.Errorf("expected nil filter for an unconstrained predicate, got %v", filter)
	}
}

func TestBuildFilterEqualString(t *testing.T) {
	pred := compileFilter(t, []search.FilterRequest{
		{Key: "name", Operator: search.OperatorEqual, FieldType: search.FieldTypeString, Value: "Ubuntu"},
	})

	filter := mustBuildFilter(t, pred)
	if len(filter.Must) != 1 || len(filter.MustNot) != 0 {
		t.Fatalf("expected 1 must and 0 must_not conditions, got %d and %d", len(filter.Must), len(filter.MustNot))
	}

	fc := fieldCondition(t, filter.Must[0])
	if fc.Key != "name" {
		t.Errorf("expected key %q, got %q", "name", fc.Key)
	}
	if got := fc.Match.GetKeyword(); got != "Ubuntu" {
		t.Errorf("expected keyword match %q, got %q", "Ubuntu", got)
	}
}

func TestBuildFilterEqualInteger(t *testing.T) {
	pred := compileFilter(t, []search.FilterRequest{
		{Key: "usages", Operator: search.OperatorEqual, FieldType: search.FieldTypeInteger, Value: 2000},
	})

	fc := fieldCondition(t, mustBuildFilter(t, pred).Must[0])
	if got := fc.Match.GetInteger(); got != 2000 {
		t.Errorf("expected integer match 2000, got %d", got)
	}
}

func TestBuildFilterEqualBoolean(t *testing.T) {
	pred := compileFilter(t, []search.FilterRequest{
		{Key: "active", Operator: search.OperatorEqual, FieldType: search.FieldTypeBoolean, Value: "true"},
	})

	fc := fieldCondition(t, mustBuildFilter(t, pred).Must[0])
	if got := fc.Match.GetBoolean(); !got {
		t.Error("expected boolean match true, got false")
	}
}

func TestBuildFilterEqualDouble(t *testing.T) {
	pred := compileFilter(t, []search.FilterRequest{
		{Key: "rating", Operator: search.OperatorEqual, FieldType: search.FieldTypeDouble, Value: 4.5},
	})

	fc := fieldCondition(t, mustBuildFilter(t, pred).Must[0])
	r := fc.Range
	if r == nil {
		t.Fatal("expected a range condition for a double equality")
	}
	if r.Gte == nil || *r.Gte != 4.5 || r.Lte == nil || *r.Lte != 4.5 {
		t.Errorf("expected equal range bounds 4.5, got gte=%v lte=%v", r.Gte, r.Lte)
	}
}

func TestBuildFilterEqualDate(t *testing.T) {
	pred := compileFilter(t, []search.FilterRequest{
		{Key: "releaseDate", Operator: search.OperatorEqual, FieldType: search.FieldTypeDate, Value: "23-09-2021 10:00:00"},
	})

	fc := fieldCondition(t, mustBuildFilter(t, pred).Must[0])
	dr := fc.DatetimeRange
	if dr == nil {
		t.Fatal("expected a datetime range condition for a date equality")
	}

	want := time.Date(2021, 9, 23, 10, 0, 0, 0, time.UTC)
	if dr.Gte == nil || !dr.Gte.AsTime().Equal(want) {
		t.Errorf("expected gte bound %v, got %v", want, dr.Gte.AsTime())
	}
	if dr.Lte == nil || !dr.Lte.AsTime().Equal(want) {
		t.Errorf("expected lte bound %v, got %v", want, dr.Lte.AsTime())
	}
}

func TestBuildFilterNotEqual(t *testing.T) {
	pred := compileFilter(t, []search.FilterRequest{
		{Key: "kernel", Operator: search.OperatorNotEqual, FieldType: search.FieldTypeString, Value: "5.10"},
	})

	filter := mustBuildFilter(t, pred)
	if len(filter.Must) != 0 || len(filter.MustNot) != 1 {
		t.Fatalf("expected 0 must and 1 must_not conditions, got %d and %d", len(filter.Must), len(filter.MustNot))
	}

	fc := fieldCondition(t, filter.MustNot[0])
	if got := fc.Match.GetKeyword(); got != "5.10" {
		t.Errorf("expected keyword match %q, got %q", "5.10", got)
	}
}

func TestBuildFilterLikeBecomesTextMatch(t *testing.T) {
	pred := compileFilter(t, []search.FilterRequest{
		{Key: "name", Operator: search.OperatorLike, FieldType: search.FieldTypeString, Value: "cent"},
	})

	fc := fieldCondition(t, mustBuildFilter(t, pred).Must[0])
	if got := fc.Match.GetText(); got != "CENT" {
		t.Errorf("expected text match %q, got %q", "CENT", got)
	}
}

func TestBuildFilterInStrings(t *testing.T) {
	pred := compileFilter(t, []search.FilterRequest{
		{Key: "kernel", Operator: search.OperatorIn, FieldType: search.FieldTypeString, Values: []interface{}{"5.13", "5.8"}},
	})

	fc := fieldCondition(t, mustBuildFilter(t, pred).Must[0])
	keywords := fc.Match.GetKeywords()
	if keywords == nil {
		t.Fatal("expected a keywords match")
	}
	if len(keywords.Strings) != 2 || keywords.Strings[0] != "5.13" || keywords.Strings[1] != "5.8" {
		t.Errorf("expected keywords [5.13 5.8], got %v", keywords.Strings)
	}
}

func TestBuildFilterInIntegers(t *testing.T) {
	pred := compileFilter(t, []search.FilterRequest{
		{Key: "usages", Operator: search.OperatorIn, FieldType: search.FieldTypeInteger, Values: []interface{}{100, 250}},
	})

	fc := fieldCondition(t, mustBuildFilter(t, pred).Must[0])
	ints := fc.Match.GetIntegers()
	if ints == nil {
		t.Fatal("expected an integers match")
	}
	if len(ints.Integers) != 2 || ints.Integers[0] != 100 || ints.Integers[1] != 250 {
		t.Errorf("expected integers [100 250], got %v", ints.Integers)
	}
}

func TestBuildFilterBetweenIntegers(t *testing.T) {
	pred := compileFilter(t, []search.FilterRequest{
		{Key: "usages", Operator: search.OperatorBetween, FieldType: search.FieldTypeInteger, Value: 100, ValueTo: 250},
	})

	fc := fieldCondition(t, mustBuildFilter(t, pred).Must[0])
	r := fc.Range
	if r == nil {
		t.Fatal("expected a range condition")
	}
	if r.Gte == nil || *r.Gte != 100 {
		t.Errorf("expected gte bound 100, got %v", r.Gte)
	}
	if r.Lte == nil || *r.Lte != 250 {
		t.Errorf("expected lte bound 250, got %v", r.Lte)
	}
}

func TestBuildFilterBetweenDates(t *testing.T) {
	pred := compileFilter(t, []search.FilterRequest{
		{
			Key:       "releaseDate",
			Operator:  search.OperatorBetween,
			FieldType: search.FieldTypeDate,
			Value:     "01-01-2021 00:00:00",
			ValueTo:   "31-12-2021 23:59:59",
		},
	})

	fc := fieldCondition(t, mustBuildFilter(t, pred).Must[0])
	dr := fc.DatetimeRange
	if dr == nil {
		t.Fatal("expected a datetime range condition")
	}

	wantLow := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	wantHigh := time.Date(2021, 12, 31, 23, 59, 59, 0, time.UTC)
	if dr.Gte == nil || !dr.Gte.AsTime().Equal(wantLow) {
		t.Errorf("expected gte bound %v, got %v", wantLow, dr.Gte.AsTime())
	}
	if dr.Lte == nil || !dr.Lte.AsTime().Equal(wantHigh) {
		t.Errorf("expected lte bound %v, got %v", wantHigh, dr.Lte.AsTime())
	}
}

func TestBuildFilterNestedKeyStaysDotted(t *testing.T) {
	pred := compileFilter(t, []search.FilterRequest{
		{Key: "maintainer.company.country", Operator: search.OperatorEqual, FieldType: search.FieldTypeString, Value: "ZA"},
	})

	fc := fieldCondition(t, mustBuildFilter(t, pred).Must[0])
	if fc.Key != "maintainer.company.country" {
		t.Errorf("expected dotted payload key %q, got %q", "maintainer.company.country", fc.Key)
	}
}

func TestBuildFilterCombined(t *testing.T) {
	pred := compileFilter(t, []search.FilterRequest{
		{Key: "name", Operator: search.OperatorLike, FieldType: search.FieldTypeString, Value: "ubu"},
		{Key: "kernel", Operator: search.OperatorNotEqual, FieldType: search.FieldTypeString, Value: "4.19"},
		{Key: "usages", Operator: search.OperatorBetween, FieldType: search.FieldTypeInteger, Value: 100, ValueTo: 5000},
	})

	filter := mustBuildFilter(t, pred)
	if len(filter.Must) != 2 {
		t.Errorf("expected 2 must conditions, got %d", len(filter.Must))
	}
	if len(filter.MustNot) != 1 {
		t.Errorf("expected 1 must_not condition, got %d", len(filter.MustNot))
	}

	if got := fieldCondition(t, filter.Must[0]).Key; got != "name" {
		t.Errorf("expected first must condition on %q, got %q", "name", got)
	}
	if got := fieldCondition(t, filter.Must[1]).Key; got != "usages" {
		t.Errorf("expected second must condition on %q, got %q", "usages", got)
	}
	if got := fieldCondition(t, filter.MustNot[0]).Key; got != "kernel" {
		t.Errorf("expected must_not condition on %q, got %q", "kernel", got)
	}
}

func TestBuildFilterInRejectsUnsupportedSets(t *testing.T) {
	field := &search.FieldRef{Key: "usages", Path: []string{"usages"}, Type: search.FieldTypeInteger}

	tests := []struct {
		name   string
		values []interface{}
	}{
		{name: "empty set", values: nil},
		{name: "mixed strings and integers", values: []interface{}{"a", 1}},
		{name: "mixed integers and strings", values: []interface{}{1, "a"}},
		{name: "unsupported element type", values: []interface{}{true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFilter(search.In{Field: field, Values: tt.values})
			if err == nil {
				t.Errorf("expected an error for %s, got nil", tt.name)
			}
		})
	}
}

func TestSearchPointsRejectsEmptyVector(t *testing.T) {
	c := &Client{cfg: &Config{Collection: "operating_systems"}}
	spec := search.NewSpecification(osPayloadSchema(), nil)

	_, err := c.SearchPoints(context.Background(), nil, spec, search.Request{})
	if err == nil {
		t.Fatal("expected an error for an empty vector, got nil")
	}
}

func TestSearchPointsCompileErrorPropagates(t *testing.T) {
	c := &Client{cfg: &Config{Collection: "operating_systems"}}
	spec := search.NewSpecification(osPayloadSchema(), nil)

	_, err := c.SearchPoints(context.Background(), []float32{0.1, 0.2}, spec, search.Request{
		Filters: []search.FilterRequest{
			{Key: "flavour", Operator: search.OperatorEqual, FieldType: search.FieldTypeString, Value: "x"},
		},
	})

	var keyErr *search.KeyNotFoundError
	if !errors.As(err, &keyErr) {
		t.Fatalf("expected a KeyNotFoundError, got %v", err)
	}
	if keyErr.Key != "flavour" {
		t.Errorf("expected offending key %q, got %q", "flavour", keyErr.Key)
	}
}
