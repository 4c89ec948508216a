package qdrant

import (
	"context"
	"fmt"
	"slices"

	"github.com/qdrant/go-client/qdrant"
)

// defaultBatchSize caps how many points a single upsert request carries.
const defaultBatchSize = 200

// Point is one vector with its identifier and payload. Payload values
// may nest maps and slices; they are converted to Qdrant's value tree
// on upsert.
type Point struct {
	ID      uint64
	Vector  []float32
	Payload map[string]interface{}
}

// Collection summarizes a Qdrant collection's state.
type Collection struct {
	Name       string
	Status     string
	Points     uint64
	VectorSize uint64
	Distance   string
}

// EnsureCollection creates the configured collection if it does not
// exist yet, sized from the configuration and using cosine distance.
// Safe to call on every startup.
func (c *Client) EnsureCollection(ctx context.Context) error {
	name := c.cfg.Collection
	if name == "" {
		return fmt.Errorf("collection name is not configured")
	}

	collections, err := c.api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	if slices.Contains(collections, name) {
		c.logger.Debug("Collection already exists", nil, map[string]interface{}{
			"collection": name,
		})
		return nil
	}

	if c.cfg.VectorSize == 0 {
		return fmt.Errorf("vector size is not configured for collection %q", name)
	}

	err = c.api.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     c.cfg.VectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %q: %w", name, err)
	}

	c.logger.Info("Created collection", nil, map[string]interface{}{
		"collection":  name,
		"vector_size": c.cfg.VectorSize,
	})

	return nil
}

// Upsert writes points into the configured collection in batches,
// waiting for each batch to persist before sending the next.
func (c *Client) Upsert(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	for start := 0; start < len(points); start += defaultBatchSize {
		end := start + defaultBatchSize
		if end > len(points) {
			end = len(points)
		}

		if err := c.upsertBatch(ctx, points[start:end]); err != nil {
			return fmt.Errorf("batch upsert failed at [%d:%d]: %w", start, end, err)
		}

		c.logger.Debug("Upserted batch", nil, map[string]interface{}{
			"collection": c.cfg.Collection,
			"from":       start,
			"to":         end,
		})
	}

	return nil
}

func (c *Client) upsertBatch(ctx context.Context, batch []Point) error {
	points := make([]*qdrant.PointStruct, 0, len(batch))
	for _, p := range batch {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(p.ID),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(p.Payload),
		})
	}

	wait := true
	_, err := c.api.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.cfg.Collection,
		Points:         points,
		Wait:           &wait,
	})
	return err
}

// Delete removes points from the configured collection by id, waiting
// for completion.
func (c *Client) Delete(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}

	pointIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		pointIDs = append(pointIDs, qdrant.NewIDNum(id))
	}

	wait := true
	resp, err := c.api.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: c.cfg.Collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: pointIDs},
			},
		},
		Wait: &wait,
	})
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	c.logger.Debug("Deleted points", nil, map[string]interface{}{
		"collection": c.cfg.Collection,
		"count":      len(ids),
		"status":     resp.Status.String(),
	})

	return nil
}

// GetCollection retrieves a summary of the configured collection.
func (c *Client) GetCollection(ctx context.Context) (*Collection, error) {
	name := c.cfg.Collection
	if name == "" {
		return nil, fmt.Errorf("collection name is not configured")
	}

	info, err := c.api.GetCollectionInfo(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection %q: %w", name, err)
	}

	size, distance := extractVectorDetails(info)

	return &Collection{
		Name:       name,
		Status:     info.Status.String(),
		Points:     derefUint64(info.PointsCount),
		VectorSize: size,
		Distance:   distance,
	}, nil
}

// ListCollections returns the names of all collections on the server.
func (c *Client) ListCollections(ctx context.Context) ([]string, error) {
	collections, err := c.api.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return collections, nil
}
