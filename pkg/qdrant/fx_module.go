package qdrant

import (
	"context"
	"sync"

	"go.uber.org/fx"
)

// FXModule integrates the Qdrant client into an Fx application.
//
// The module:
//  1. Provides the NewQdrantClient factory to the dependency injection
//     container, making *Client available to other components.
//  2. Invokes RegisterQdrantLifecycle to close the connection on
//     shutdown.
//
// Usage:
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    // other modules...
//	)
//
// Dependencies required by this module:
//   - a *qdrant.Config instance in the container
//   - a qdrant.Logger implementation in the container
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewQdrantClient,
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// QdrantParams defines the dependencies needed to construct the client.
type QdrantParams struct {
	fx.In
	Config *Config
	Logger Logger
}

// RegisterQdrantLifecycle bootstraps the configured collection on
// startup and closes the client exactly once on shutdown.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *Client) {
	var once sync.Once

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if client.cfg.Collection == "" {
				return nil
			}
			return client.EnsureCollection(ctx)
		},
		OnStop: func(ctx context.Context) error {
			once.Do(client.Close)
			return nil
		},
	})
}
