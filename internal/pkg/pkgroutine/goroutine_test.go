package pkgroutine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewManagerDefaultMax(t *testing.T) {
	mgr := NewManager(0)
	if got := cap(mgr.sema); got != DefaultMaxGoroutine {
		t.Fatalf("expected cap %d, got %d", DefaultMaxGoroutine, got)
	}
}

func TestManagerCollectsErrors(t *testing.T) {
	mgr := NewManager(2)
	errOne := errors.New("one")
	errTwo := errors.New("two")

	mgr.Go(context.Background(), "first", func(ctx context.Context) error {
		return errOne
	})
	mgr.Go(context.Background(), "second", func(ctx context.Context) error {
		return errTwo
	})

	joined := mgr.Wait()
	if joined == nil {
		t.Fatalf("expected errors")
	}
	if !errors.Is(joined, errOne) || !errors.Is(joined, errTwo) {
		t.Fatalf("expected both errors, got %v", joined)
	}
	if !strings.Contains(joined.Error(), "task first") {
		t.Fatalf("expected task name in error, got %v", joined)
	}
}

func TestManagerRecoversPanics(t *testing.T) {
	mgr := NewManager(1)
	mgr.Go(context.Background(), "warmup", func(ctx context.Context) error {
		panic("boom")
	})

	err := mgr.Wait()
	if err == nil || !strings.Contains(err.Error(), "panicked") {
		t.Fatalf("expected panic to be reported, got %v", err)
	}
}

func TestManagerSkipsCanceledContext(t *testing.T) {
	mgr := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	mgr.Go(ctx, "late", func(ctx context.Context) error {
		ran = true
		return nil
	})

	if err := mgr.Wait(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if ran {
		t.Fatal("expected task not to run on a canceled context")
	}
}
