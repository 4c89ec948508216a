package qdrant

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestParseScoredPoints(t *testing.T) {
	results := []*qdrant.ScoredPoint{
		{
			Id:    qdrant.NewIDNum(3),
			Score: 0.87,
			Payload: qdrant.NewValueMap(map[string]any{
				"name":   "CentOS",
				"usages": 40,
				"rating": 4.5,
				"active": true,
				"maintainer": map[string]any{
					"company": map[string]any{"country": "US"},
				},
				"tags": []any{"linux", "rpm"},
			}),
		},
		{
			Id:    qdrant.NewID("3fa85f64-5717-4562-b3fc-2c963f66afa6"),
			Score: 0.41,
		},
	}

	points := parseScoredPoints(results)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}

	first := points[0]
	if first.ID != "3" {
		t.Errorf("expected numeric id rendered as %q, got %q", "3", first.ID)
	}
	if first.Score != 0.87 {
		t.Errorf("expected score 0.87, got %v", first.Score)
	}
	if got := first.Payload["name"]; got != "CentOS" {
		t.Errorf("expected name %q, got %v", "CentOS", got)
	}
	if got := first.Payload["usages"]; got != int64(40) {
		t.Errorf("expected usages int64(40), got %v (%T)", got, got)
	}
	if got := first.Payload["rating"]; got != 4.5 {
		t.Errorf("expected rating 4.5, got %v", got)
	}
	if got := first.Payload["active"]; got != true {
		t.Errorf("expected active true, got %v", got)
	}

	maintainer, ok := first.Payload["maintainer"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected nested maintainer map, got %T", first.Payload["maintainer"])
	}
	company, ok := maintainer["company"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected nested company map, got %T", maintainer["company"])
	}
	if got := company["country"]; got != "US" {
		t.Errorf("expected country %q, got %v", "US", got)
	}

	tags, ok := first.Payload["tags"].([]interface{})
	if !ok {
		t.Fatalf("expected tags list, got %T", first.Payload["tags"])
	}
	if len(tags) != 2 || tags[0] != "linux" || tags[1] != "rpm" {
		t.Errorf("expected tags [linux rpm], got %v", tags)
	}

	second := points[1]
	if second.ID != "3fa85f64-5717-4562-b3fc-2c963f66afa6" {
		t.Errorf("expected uuid id passed through, got %q", second.ID)
	}
	if second.Payload != nil {
		t.Errorf("expected nil payload for a payload-less point, got %v", second.Payload)
	}
}
