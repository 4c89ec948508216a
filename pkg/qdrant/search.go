package qdrant

import (
	"context"
	"fmt"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/searchspec/pkg/search"
)

// ScoredPoint is one similarity hit with its payload decoded to plain
// Go values. Numeric point ids are rendered in decimal, UUID ids as-is.
type ScoredPoint struct {
	ID      string
	Score   float32
	Payload map[string]interface{}
}

// SearchPoints runs a filtered similarity query over the configured
// collection. The request's filters lower to a payload filter and its
// page window to limit and offset. Similarity order always wins: a
// non-empty sorts list is logged and ignored.
func (c *Client) SearchPoints(ctx context.Context, vector []float32, spec *search.Specification, req search.Request) ([]ScoredPoint, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("search vector must not be empty")
	}

	compiled, err := spec.Compile(req)
	if err != nil {
		return nil, err
	}

	if len(compiled.Orderings) > 0 {
		c.logger.Warn("Sort fragments ignored for vector search", nil, map[string]interface{}{
			"sorts": len(compiled.Orderings),
		})
	}

	filter, err := BuildFilter(compiled.Predicate)
	if err != nil {
		return nil, err
	}

	limit := uint64(compiled.Page.Size)
	offset := uint64(compiled.Page.Offset())

	resp, err := c.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.cfg.Collection,
		Query:          qdrant.NewQuery(vector...),
		Filter:         filter,
		Limit:          &limit,
		Offset:         &offset,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query failed: %w", err)
	}

	c.logger.Debug("Vector search completed", nil, map[string]interface{}{
		"collection": c.cfg.Collection,
		"results":    len(resp),
	})

	return parseScoredPoints(resp), nil
}

// parseScoredPoints converts SDK results into the package's plain form.
func parseScoredPoints(results []*qdrant.ScoredPoint) []ScoredPoint {
	points := make([]ScoredPoint, 0, len(results))
	for _, r := range results {
		points = append(points, ScoredPoint{
			ID:      pointIDString(r.Id),
			Score:   r.Score,
			Payload: payloadMap(r.Payload),
		})
	}
	return points
}

func pointIDString(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return strconv.FormatUint(v.Num, 10)
	case *qdrant.PointId_Uuid:
		return v.Uuid
	default:
		return ""
	}
}

// payloadMap unwraps a protobuf payload tree into plain Go values.
func payloadMap(payload map[string]*qdrant.Value) map[string]interface{} {
	if len(payload) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(payload))
	for key, value := range payload {
		out[key] = payloadValue(value)
	}
	return out
}

func payloadValue(value *qdrant.Value) interface{} {
	if value == nil {
		return nil
	}
	switch v := value.Kind.(type) {
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_BoolValue:
		return v.BoolValue
	case *qdrant.Value_IntegerValue:
		return v.IntegerValue
	case *qdrant.Value_DoubleValue:
		return v.DoubleValue
	case *qdrant.Value_StringValue:
		return v.StringValue
	case *qdrant.Value_StructValue:
		return payloadMap(v.StructValue.Fields)
	case *qdrant.Value_ListValue:
		items := make([]interface{}, 0, len(v.ListValue.Values))
		for _, item := range v.ListValue.Values {
			items = append(items, payloadValue(item))
		}
		return items
	default:
		return nil
	}
}
