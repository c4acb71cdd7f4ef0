// Package store holds the backends of the database benchmarks.
package store

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/usecase"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgerror"
	"go.mongodb.org/mongo-driver/mongo"
)

// Database is one persistence backend.
//
// FindWorlds returns one world per id in the order of ids and fails with
// pkgerror.ErrNotFound when a row is missing.
type Database interface {
	FindAllFortunes(ctx context.Context) ([]entity.Fortune, error)
	FindWorlds(ctx context.Context, ids []int) ([]entity.World, error)
	ReplaceWorlds(ctx context.Context, worlds []entity.World) error
	AllWorlds(ctx context.Context) ([]entity.World, error)
	Close() error
}

// Seeder creates the schema of a backend and loads its rows, replacing any
// rows already present.
type Seeder interface {
	Seed(ctx context.Context, fortunes []entity.Fortune, worlds []entity.World) error
}

// connErr marks errors caused by an unreachable database as unavailable.
func connErr(err error) error {
	if err == nil {
		return nil
	}

	var (
		dialErr    *net.OpError
		connectErr *pgconn.ConnectError
	)
	if errors.As(err, &connectErr) || errors.As(err, &dialErr) || mongo.IsNetworkError(err) {
		return pkgerror.NewUnavailable(err)
	}

	return err
}

// latestByID orders worlds by id and keeps the last value given for each id.
func latestByID(worlds []entity.World) []entity.World {
	sorted := usecase.SortedByID(worlds)

	out := sorted[:0]
	for _, w := range sorted {
		if n := len(out); n > 0 && out[n-1].ID == w.ID {
			out[n-1] = w
			continue
		}
		out = append(out, w)
	}

	return out
}

// uniqueIDs returns ids without duplicates, keeping the first occurrence.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
