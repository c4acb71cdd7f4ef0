package store

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/usecase"
)

// Options configures every backend Open can build.
type Options struct {
	WorldRows int
	Random    usecase.Random
	Postgres  PostgresOptions
	Mongo     MongoOptions
}

// Open connects to a backend. The memory backend starts seeded with the
// standard fortunes and WorldRows random worlds.
func Open(ctx context.Context, backend entity.Backend, opts Options) (Database, error) {
	switch backend {
	case entity.BackendMemory:
		return NewInMemoryStore(StandardFortunes(), RandomWorlds(opts.WorldRows, opts.Random)), nil
	case entity.BackendPostgreSQL:
		return NewPostgresStore(ctx, opts.Postgres)
	case entity.BackendMongoDB:
		return NewMongoStore(ctx, opts.Mongo)
	default:
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownBackend, backend)
	}
}
