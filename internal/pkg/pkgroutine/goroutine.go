package pkgroutine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 10

// Manager runs named tasks in goroutines with a configurable concurrency limit.
//
// It collects errors returned by tasks and can be waited on using Wait.
type Manager struct {
	mu   sync.Mutex
	errs []error
	wg   sync.WaitGroup
	sema chan struct{}
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}

	return &Manager{
		sema: make(chan struct{}, maxGoroutine),
	}
}

// Go schedules f under the given task name.
//
// It blocks until a slot is free or pCtx is done; in the latter case the task
// is dropped and false is returned.
func (g *Manager) Go(pCtx context.Context, name string, f func(ctx context.Context) error) bool {
	select {
	case g.sema <- struct{}{}:
	case <-pCtx.Done():
		slog.WarnContext(pCtx, "task canceled before start", "task", name, "because", pCtx.Err())
		return false
	}

	g.wg.Add(1)
	go func() {
		start := time.Now()
		defer g.wg.Done()
		defer func() {
			<-g.sema

			if rvr := recover(); rvr != nil {
				slog.ErrorContext(pCtx, "panic occurred in task", "task", name, "because", rvr, "stack", string(debug.Stack()))
				g.collect(fmt.Errorf("task %s panicked: %v", name, rvr))
			}
		}()

		if err := pCtx.Err(); err != nil {
			slog.WarnContext(pCtx, "task canceled", "task", name, "because", err)
			return
		}

		if err := f(pCtx); err != nil {
			g.collect(fmt.Errorf("task %s: %w", name, err))
			return
		}

		slog.DebugContext(pCtx, "task finished", "task", name, "latency_ms", time.Since(start).Milliseconds())
	}()

	return true
}

func (g *Manager) collect(err error) {
	g.mu.Lock()
	g.errs = append(g.errs, err)
	g.mu.Unlock()
}

// Wait blocks until all scheduled tasks finish and returns any collected errors.
func (g *Manager) Wait() error {
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	return errors.Join(g.errs...)
}
