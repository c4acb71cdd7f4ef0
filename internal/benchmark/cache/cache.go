// Package cache holds world lookups for the cached-queries benchmark.
//
// Entries map a world id to its random number. Drivers decide expiry; nothing
// here is invalidated when worlds are replaced.
package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
)

// WorldCache stores worlds by id.
type WorldCache interface {
	// GetMany returns the cached subset of ids. Missing ids are simply absent
	// from the result.
	GetMany(ctx context.Context, ids []int) (map[int]entity.World, error)
	SetMany(ctx context.Context, worlds []entity.World) error
	Close() error
}

// Driver names accepted by the cache.driver configuration key.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// ParseDriver validates a configured driver name.
func ParseDriver(name string) (string, error) {
	switch d := strings.ToLower(strings.TrimSpace(name)); d {
	case "", DriverMemory:
		return DriverMemory, nil
	case DriverRedis:
		return DriverRedis, nil
	default:
		return "", fmt.Errorf("unknown cache driver %q", name)
	}
}
