package app

import (
	"context"
	"errors"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark"
)

// Seed loads the benchmark tables of every configured database backend.
func Seed(ctx context.Context, configPath string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	return errors.Join(benchmark.Seed(ctx, cfg), cfg.Close())
}
