package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.benchmark.enabled") {
		closer, err := benchmark.New(benchmark.Dependency{
			Config:    a.config,
			Router:    a.router,
			Goroutine: a.goroutine,
			Context:   a.ctx,
		})
		if err != nil {
			slog.Error("failed to init module benchmark", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			if a.closerFn == nil {
				a.closerFn = map[string]func(context.Context) error{}
			}
			a.closerFn["Benchmark"] = closer
		}
	}
}
