package metrics

import (
	"context"
	"net/http"

	"go.uber.org/fx"
)

// Logger defines the logging operations the metrics package reports
// server lifecycle events through.

//go:generate mockgen -source=fx_module.go -destination=mock_logger.go -package=metrics
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// FXModule provides the metrics server to an fx application and ties
// the exposition endpoint to the app lifecycle.
//
// Dependencies required from the container: a metrics.Config and a
// metrics.Logger.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle serves the scrape endpoint for the lifetime
// of the app. OnStart launches the HTTP server in a background
// goroutine so startup does not block on the listener; OnStop shuts it
// down gracefully.
func RegisterMetricsLifecycle(lifecycle fx.Lifecycle, metrics *Metrics, logger Logger) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
					"address": metrics.Server.Addr,
					"service": metrics.serviceName,
				})

				if err := metrics.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Metrics server stopped unexpectedly", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down Prometheus metrics server", nil, nil)
			return metrics.Server.Shutdown(ctx)
		},
	})
}
