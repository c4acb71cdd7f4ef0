package benchmark

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark/cache"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/store"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/usecase"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgconfig"
)

// Defaults holds the configuration defaults of the benchmark module.
var Defaults = map[string]any{
	"benchmark.text_message":         usecase.DefaultTextMessage,
	"benchmark.queries_param":        usecase.DefaultQueriesParam,
	"benchmark.cached_queries_param": usecase.DefaultCachedQueriesParam,
	"benchmark.world_rows":           usecase.DefaultWorldRows,
	"benchmark.backends":             string(entity.BackendMemory),
	"benchmark.template_engines":     []string{string(entity.TemplateEngineGo), string(entity.TemplateEngineMinify)},

	"postgres.max_conns": 0,
	"mongodb.database":   "hello_world",
	"mongodb.max_pool":   0,

	"cache.driver":           cache.DriverMemory,
	"cache.warm_up":          false,
	"cache.redis.address":    "localhost:6379",
	"cache.redis.key_prefix": "world:",
	"cache.redis.pool_size":  0,
	"cache.redis.ttl":        "0s",
	"cache.redis.db":         0,
	"cache.redis.password":   "",

	"modules.benchmark.enabled": true,
}

func settingsFromConfig(cfg pkgconfig.Config) (usecase.Settings, error) {
	settings := usecase.Settings{
		TextMessage:        cfg.GetString("benchmark.text_message"),
		QueriesParam:       cfg.GetString("benchmark.queries_param"),
		CachedQueriesParam: cfg.GetString("benchmark.cached_queries_param"),
		WorldRows:          int(cfg.GetInt("benchmark.world_rows")),
	}

	if err := settings.Validate(); err != nil {
		return usecase.Settings{}, fmt.Errorf("invalid benchmark settings: %w", err)
	}

	return settings, nil
}

func backendsFromConfig(cfg pkgconfig.Config) ([]entity.Backend, error) {
	names := cfg.GetArray("benchmark.backends")
	if len(names) == 0 {
		return nil, fmt.Errorf("no backend configured")
	}

	backends := make([]entity.Backend, 0, len(names))
	for _, name := range names {
		b, err := entity.ParseBackend(name)
		if err != nil {
			return nil, err
		}
		backends = append(backends, b)
	}

	return backends, nil
}

func enginesFromConfig(cfg pkgconfig.Config) ([]entity.TemplateEngine, error) {
	names := cfg.GetArray("benchmark.template_engines")

	engines := make([]entity.TemplateEngine, 0, len(names))
	for _, name := range names {
		e, err := entity.ParseTemplateEngine(name)
		if err != nil {
			return nil, err
		}
		engines = append(engines, e)
	}

	return engines, nil
}

func storeOptions(cfg pkgconfig.Config, settings usecase.Settings, random usecase.Random) store.Options {
	return store.Options{
		WorldRows: settings.WorldRows,
		Random:    random,
		Postgres: store.PostgresOptions{
			DSN:      cfg.GetString("postgres.dsn"),
			MaxConns: int32(cfg.GetInt("postgres.max_conns")),
		},
		Mongo: store.MongoOptions{
			URI:      cfg.GetString("mongodb.uri"),
			Database: cfg.GetString("mongodb.database"),
			MaxPool:  uint64(max(cfg.GetInt("mongodb.max_pool"), 0)),
		},
	}
}

// newWorldCache builds the world cache of one backend. Redis keys are
// namespaced by backend so backends never read each other's worlds.
func newWorldCache(ctx context.Context, cfg pkgconfig.Config, backend entity.Backend, rows int) (cache.WorldCache, error) {
	driver, err := cache.ParseDriver(cfg.GetString("cache.driver"))
	if err != nil {
		return nil, err
	}

	if driver == cache.DriverMemory {
		return cache.NewMemory(rows), nil
	}

	return cache.NewRedis(ctx, cache.RedisOptions{
		Address:   cfg.GetString("cache.redis.address"),
		Password:  cfg.GetString("cache.redis.password"),
		DB:        int(cfg.GetInt("cache.redis.db")),
		PoolSize:  int(cfg.GetInt("cache.redis.pool_size")),
		TTL:       cfg.GetDuration("cache.redis.ttl"),
		KeyPrefix: string(backend) + ":" + cfg.GetString("cache.redis.key_prefix"),
	})
}
