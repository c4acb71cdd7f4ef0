package store

import (
	"context"
	"slices"
	"sync"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgerror"
)

// InMemoryStore keeps fortunes and worlds in process. World ids are dense,
// numbers[i] holds the random number of world i+1.
type InMemoryStore struct {
	mu       sync.RWMutex
	fortunes []entity.Fortune
	numbers  []int
}

func NewInMemoryStore(fortunes []entity.Fortune, worlds []entity.World) *InMemoryStore {
	s := &InMemoryStore{}
	s.load(fortunes, worlds)
	return s
}

func (s *InMemoryStore) load(fortunes []entity.Fortune, worlds []entity.World) {
	rows := 0
	for _, w := range worlds {
		rows = max(rows, w.ID)
	}

	numbers := make([]int, rows)
	for i := range numbers {
		numbers[i] = -1
	}
	for _, w := range worlds {
		if w.ID > 0 {
			numbers[w.ID-1] = w.RandomNumber
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.fortunes = slices.Clone(fortunes)
	s.numbers = numbers
}

func (s *InMemoryStore) FindAllFortunes(ctx context.Context) ([]entity.Fortune, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.fortunes), nil
}

func (s *InMemoryStore) FindWorlds(ctx context.Context, ids []int) ([]entity.World, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	worlds := make([]entity.World, len(ids))
	for i, id := range ids {
		n, ok := s.number(id)
		if !ok {
			return nil, pkgerror.ErrNotFound
		}
		worlds[i] = entity.World{ID: id, RandomNumber: n}
	}

	return worlds, nil
}

func (s *InMemoryStore) ReplaceWorlds(ctx context.Context, worlds []entity.World) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range worlds {
		if _, ok := s.number(w.ID); !ok {
			return pkgerror.ErrNotFound
		}
	}
	for _, w := range worlds {
		s.numbers[w.ID-1] = w.RandomNumber
	}

	return nil
}

func (s *InMemoryStore) AllWorlds(ctx context.Context) ([]entity.World, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	worlds := make([]entity.World, 0, len(s.numbers))
	for i, n := range s.numbers {
		if n >= 0 {
			worlds = append(worlds, entity.World{ID: i + 1, RandomNumber: n})
		}
	}

	return worlds, nil
}

func (s *InMemoryStore) Seed(ctx context.Context, fortunes []entity.Fortune, worlds []entity.World) error {
	s.load(fortunes, worlds)
	return nil
}

func (s *InMemoryStore) Close() error {
	return nil
}

func (s *InMemoryStore) number(id int) (int, bool) {
	if id < 1 || id > len(s.numbers) || s.numbers[id-1] < 0 {
		return 0, false
	}
	return s.numbers[id-1], true
}
