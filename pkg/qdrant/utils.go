package qdrant

import (
	"github.com/qdrant/go-client/qdrant"
)

// API exposes the underlying SDK client for operations this wrapper
// does not cover.
func (c *Client) API() *qdrant.Client {
	return c.api
}

// extractVectorDetails digs the vector dimension and distance metric
// out of the nested oneof wrappers of a collection description. Missing
// or unexpected shapes yield zero values.
func extractVectorDetails(info *qdrant.CollectionInfo) (uint64, string) {
	if info == nil ||
		info.Config == nil ||
		info.Config.Params == nil ||
		info.Config.Params.VectorsConfig == nil ||
		info.Config.Params.VectorsConfig.Config == nil {
		return 0, ""
	}

	if cfg, ok := info.Config.Params.VectorsConfig.Config.(*qdrant.VectorsConfig_Params); ok {
		return cfg.Params.Size, cfg.Params.Distance.String()
	}

	return 0, ""
}

// derefUint64 dereferences v, returning 0 for nil.
func derefUint64(v *uint64) uint64 {
	if v != nil {
		return *v
	}
	return 0
}
