package bootstrap

import (
	"context"
	"log/slog"

	"coach-booking/internal/infra/cache"
	"coach-booking/internal/pkg/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewCacheStore,
	),
)

// NewCacheStore returns a nil Store when REDIS_ADDR is unset; readers then go straight to Postgres.
func NewCacheStore(lc fx.Lifecycle, cfg config.Config) (cache.Store, error) {
	if !cfg.Cache.Enabled() {
		slog.Info("Availability cache disabled")
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DB.ConnectTimeout)
	defer cancel()

	client, err := cache.NewRedisClient(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return closeRedis(client)
		},
	})

	return cache.NewRedisStore(client, "coach-booking:"), nil
}

func closeRedis(client *redis.Client) error {
	if err := client.Close(); err != nil {
		slog.Warn("Failed to close redis client", "error", err.Error())
		return err
	}
	slog.Info("Redis client closed")
	return nil
}
