package bootstrap

import (
	"context"
	"time"

	"roombook/internal/infra/ratelimit"
	"roombook/internal/pkg/clock"
	"roombook/internal/pkg/config"
	"roombook/internal/usecase/commands"

	"go.uber.org/fx"
)

var RateLimitModule = fx.Module("ratelimit",
	fx.Provide(
		fx.Annotate(
			NewRateLimitStore,
			fx.As(new(commands.RateLimitStore)),
		),
	),
)

// NewRateLimitStore builds the in-memory store and registers a background
// sweep of expired windows tied to the app lifecycle.
func NewRateLimitStore(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) *ratelimit.MemoryStore {
	store := ratelimit.NewMemoryStore(cfg.RateLimit, clk)

	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				ticker := time.NewTicker(cfg.RateLimit.Window)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						store.Sweep()
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			close(done)
			return nil
		},
	})

	return store
}
