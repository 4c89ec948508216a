package postgres

import (
	"context"
	"sync"

	"go.uber.org/fx"
)

// FXModule provides the Postgres wrapper to an fx application and ties
// the connection monitor and retry goroutines to the app lifecycle.
//
// Dependencies required from the container: a postgres.Config and a
// postgres.Logger.
var FXModule = fx.Module("postgres",
	fx.Provide(
		NewPostgres,
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// RegisterPostgresLifecycle starts MonitorConnection and RetryConnection
// on app start and stops them on shutdown, waiting for both goroutines
// to drain before returning. The goroutines outlive the start hook's
// context; only the shutdown signal ends them.
func RegisterPostgresLifecycle(lifecycle fx.Lifecycle, postgres *Postgres, logger Logger) {
	wg := &sync.WaitGroup{}
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				postgres.MonitorConnection(context.Background())
			}()

			wg.Add(1)
			go func() {
				defer wg.Done()
				postgres.RetryConnection(context.Background(), logger)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			postgres.closeShutdownOnce.Do(func() {
				close(postgres.shutdownSignal)
			})
			wg.Wait()
			return nil
		},
	})
}
