package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark/cache"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
)

const warmUpChunk = 1000

// Cached adds a read-through world cache to a Database. Cache failures are
// logged and fall back to the database.
type Cached struct {
	Database
	cache cache.WorldCache
}

func NewCached(db Database, c cache.WorldCache) *Cached {
	return &Cached{Database: db, cache: c}
}

func (c *Cached) FindCachedWorlds(ctx context.Context, ids []int) ([]entity.World, error) {
	found, err := c.cache.GetMany(ctx, ids)
	if err != nil {
		slog.WarnContext(ctx, "world cache read failed", "error", err)
		found = make(map[int]entity.World, len(ids))
	}

	var missing []int
	for _, id := range uniqueIDs(ids) {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		loaded, err := c.Database.FindWorlds(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, w := range loaded {
			found[w.ID] = w
		}
		if err := c.cache.SetMany(ctx, loaded); err != nil {
			slog.WarnContext(ctx, "world cache write failed", "error", err)
		}
	}

	worlds := make([]entity.World, len(ids))
	for i, id := range ids {
		worlds[i] = found[id]
	}

	return worlds, nil
}

// WarmUp copies every world of the database into the cache and returns how
// many were stored.
func (c *Cached) WarmUp(ctx context.Context) (int, error) {
	worlds, err := c.Database.AllWorlds(ctx)
	if err != nil {
		return 0, fmt.Errorf("load worlds: %w", err)
	}

	for start := 0; start < len(worlds); start += warmUpChunk {
		if err := ctx.Err(); err != nil {
			return start, err
		}

		end := min(start+warmUpChunk, len(worlds))
		if err := c.cache.SetMany(ctx, worlds[start:end]); err != nil {
			return start, fmt.Errorf("cache worlds: %w", err)
		}
	}

	return len(worlds), nil
}

func (c *Cached) Close() error {
	return errors.Join(c.Database.Close(), c.cache.Close())
}
