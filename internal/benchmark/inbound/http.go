package inbound

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/usecase"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgrouter"
)

type uc interface {
	Settings() usecase.Settings
	Resource(engine entity.TemplateEngine) (string, error)
	Fortunes(ctx context.Context, store usecase.Store, engine usecase.TemplateEngine, resource string) (string, error)
	World(ctx context.Context, store usecase.Store) (entity.World, error)
	Worlds(ctx context.Context, store usecase.Store, count int) ([]entity.World, error)
	CachedWorlds(ctx context.Context, store usecase.Store, count int) ([]entity.World, error)
	UpdateWorlds(ctx context.Context, store usecase.Store, count int) ([]entity.World, error)
}

// Stores resolves the configured backends.
type Stores interface {
	IDs() []entity.Backend
	Get(id entity.Backend) (usecase.Store, error)
}

// Engines resolves the configured template engines.
type Engines interface {
	IDs() []entity.TemplateEngine
	Get(id entity.TemplateEngine) (usecase.TemplateEngine, error)
}

// RegisterHTTPEndpoint adds every benchmark route to r. Backends and engines
// are resolved here, once; a path naming anything else is answered by the
// router's not found handler.
func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, stores Stores, engines Engines) error {
	end := &HTTPEndpoint{uc: uc, settings: uc.Settings()}

	r.GET("/plaintext", end.Plaintext)
	r.GET("/json", end.JSON)

	for _, backend := range stores.IDs() {
		store, err := stores.Get(backend)
		if err != nil {
			return err
		}

		prefix := "/" + string(backend)
		r.GET(prefix+"/db", end.DB(store))
		r.GET(prefix+"/query", end.Query(store))   // ?queries=
		r.GET(prefix+"/cached", end.Cached(store)) // ?count=
		r.GET(prefix+"/update", end.Update(store)) // ?queries=

		for _, id := range engines.IDs() {
			engine, err := engines.Get(id)
			if err != nil {
				return err
			}
			resource, err := uc.Resource(id)
			if err != nil {
				return fmt.Errorf("register %s fortunes: %w", id, err)
			}

			r.GET(prefix+"/"+string(id)+"/fortunes", end.Fortunes(store, engine, resource))
		}
	}

	return nil
}
