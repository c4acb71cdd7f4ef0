package benchmark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/inbound"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/render"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/store"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/usecase"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgroutine"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	Random    usecase.Random
}

// New opens the configured backends, registers the benchmark routes and
// returns the closer of every opened resource.
func New(dep Dependency) (func(context.Context) error, error) {
	settings, err := settingsFromConfig(dep.Config)
	if err != nil {
		return nil, err
	}

	backends, err := backendsFromConfig(dep.Config)
	if err != nil {
		return nil, err
	}

	engineIDs, err := enginesFromConfig(dep.Config)
	if err != nil {
		return nil, err
	}

	engines, err := render.NewRegistry(engineIDs)
	if err != nil {
		return nil, err
	}

	if dep.Random == nil {
		dep.Random = usecase.NewPooledRandom()
	}

	stores, err := openStores(dep.Context, dep.Config, backends, settings, dep.Random)
	if err != nil {
		return nil, err
	}

	uc := usecase.New(usecase.Dependency{
		Settings:  settings,
		Random:    dep.Random,
		Resources: engines.Resources(),
	})

	if err := inbound.RegisterHTTPEndpoint(dep.Router, uc, stores, engines); err != nil {
		return nil, errors.Join(err, stores.Close())
	}

	if dep.Config.GetBool("cache.warm_up") {
		warmUp(dep.Context, dep.Goroutine, stores)
	}

	return func(context.Context) error { return stores.Close() }, nil
}

func openStores(ctx context.Context, cfg pkgconfig.Config, backends []entity.Backend, settings usecase.Settings, random usecase.Random) (*store.Registry, error) {
	opts := storeOptions(cfg, settings, random)
	reg := store.NewRegistry()

	for _, backend := range backends {
		if _, ok := reg.Cached(backend); ok {
			continue
		}

		db, err := store.Open(ctx, backend, opts)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("open %s: %w", backend, err), reg.Close())
		}

		wc, err := newWorldCache(ctx, cfg, backend, settings.WorldRows)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("open %s cache: %w", backend, err), db.Close(), reg.Close())
		}

		if err := reg.Register(backend, store.NewCached(db, wc)); err != nil {
			return nil, errors.Join(err, reg.Close())
		}

		slog.InfoContext(ctx, "backend ready", "backend", backend)
	}

	return reg, nil
}

func warmUp(ctx context.Context, runner *pkgroutine.Manager, stores *store.Registry) {
	for _, backend := range stores.IDs() {
		cached, _ := stores.Cached(backend)

		runner.Go(ctx, "warm up "+string(backend)+" cache", func(ctx context.Context) error {
			n, err := cached.WarmUp(ctx)
			if err != nil {
				return fmt.Errorf("warm up %s cache: %w", backend, err)
			}

			slog.InfoContext(ctx, "world cache warmed up", "backend", backend, "worlds", n)
			return nil
		})
	}
}

// Seed creates the schema of every configured database backend and loads the
// standard fortunes plus freshly drawn worlds.
func Seed(ctx context.Context, cfg pkgconfig.Config) error {
	settings, err := settingsFromConfig(cfg)
	if err != nil {
		return err
	}

	backends, err := backendsFromConfig(cfg)
	if err != nil {
		return err
	}

	random := usecase.NewPooledRandom()
	opts := storeOptions(cfg, settings, random)

	for _, backend := range backends {
		if backend == entity.BackendMemory {
			continue
		}

		db, err := store.Open(ctx, backend, opts)
		if err != nil {
			return fmt.Errorf("open %s: %w", backend, err)
		}

		seeder, ok := db.(store.Seeder)
		if !ok {
			_ = db.Close()
			continue
		}

		err = seeder.Seed(ctx, store.StandardFortunes(), store.RandomWorlds(settings.WorldRows, random))
		if cerr := db.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("seed %s: %w", backend, err)
		}

		slog.InfoContext(ctx, "backend seeded", "backend", backend, "worlds", settings.WorldRows)
	}

	return nil
}
