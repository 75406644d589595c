package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lm-inventario/internal/application/inventory"
	"github.com/jhoicas/lm-inventario/internal/domain/repository"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/memory"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/metrics"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/postgres/migrations"
	"github.com/jhoicas/lm-inventario/internal/infrastructure/ratelimit"
	"github.com/jhoicas/lm-inventario/pkg/config"
)

// storage agrupa los repositorios del driver elegido.
type storage struct {
	products      repository.ProductRepository
	categories    repository.CategoryRepository
	movements     repository.MovementRepository
	notifications repository.NotificationRepository
	activity      repository.ActivityLogRepository
	users         repository.UserRepository
	txRunner      inventory.TxRunner

	ping  func(context.Context) error
	close func()
}

func openStorage(ctx context.Context, cfg *config.Config, reg prometheus.Registerer, log zerolog.Logger) (*storage, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("usando almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			products:      memory.NewProductRepository(s),
			categories:    memory.NewCategoryRepository(s),
			movements:     memory.NewMovementRepository(s),
			notifications: memory.NewNotificationRepository(s),
			activity:      memory.NewActivityLogRepository(s),
			users:         memory.NewUserRepository(s),
			txRunner:      memory.NewTxRunner(s),
			ping:          func(context.Context) error { return nil },
			close:         func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.DB.Migrate {
		if err := postgres.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
	}
	reg.MustRegister(metrics.NewPoolStatsCollector(pool))

	return &storage{
		products:      postgres.NewProductRepository(pool),
		categories:    postgres.NewCategoryRepository(pool),
		movements:     postgres.NewMovementRepository(pool),
		notifications: postgres.NewNotificationRepository(pool),
		activity:      postgres.NewActivityLogRepository(pool),
		users:         postgres.NewUserRepository(pool),
		txRunner:      postgres.NewTxRunner(pool, cfg.DB.LockTimeoutMS),
		ping:          pool.Ping,
		close:         pool.Close,
	}, nil
}

// newRateLimitStore devuelve el store configurado y su función de cierre.
func newRateLimitStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ratelimit.Store, func()) {
	if cfg.RateLimit.Backend != config.RateLimitRedis {
		return ratelimit.NewMemoryStore(), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// el middleware deja pasar las peticiones mientras Redis no responda
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible al iniciar")
	}
	return ratelimit.NewRedisStore(client, "lm:ratelimit:"), func() { _ = client.Close() }
}
