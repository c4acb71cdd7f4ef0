package cache

import (
	"context"
	"sync"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
)

// Memory is an in-process WorldCache without expiry.
type Memory struct {
	mu     sync.RWMutex
	worlds map[int]int
}

func NewMemory(capacity int) *Memory {
	return &Memory{worlds: make(map[int]int, max(capacity, 0))}
}

func (m *Memory) GetMany(_ context.Context, ids []int) (map[int]entity.World, error) {
	found := make(map[int]entity.World, len(ids))

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range ids {
		if n, ok := m.worlds[id]; ok {
			found[id] = entity.World{ID: id, RandomNumber: n}
		}
	}

	return found, nil
}

func (m *Memory) SetMany(_ context.Context, worlds []entity.World) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, w := range worlds {
		m.worlds[w.ID] = w.RandomNumber
	}

	return nil
}

// Len returns the number of cached worlds.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.worlds)
}

func (m *Memory) Close() error {
	return nil
}
