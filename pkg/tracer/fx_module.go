package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides the tracer to an fx application and flushes it on
// shutdown.
//
// Dependencies required from the container: a tracer.Config and a
// tracer.Logger.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle shuts the provider down when the app stops, so
// batched spans reach the exporter before the process exits.
func RegisterTracerLifecycle(lifecycle fx.Lifecycle, tracer *Tracer) {
	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			tracer.logger.Info("Shutting down tracer", nil, nil)
			if tracer.tracer == nil {
				tracer.logger.Warn("Tracer provider was nil during shutdown", nil, nil)
				return nil
			}
			return tracer.tracer.Shutdown(ctx)
		},
	})
}
