package store

import (
	"errors"
	"fmt"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/usecase"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgerror"
)

// Registry maps backend identifiers to their stores. It is filled once at
// startup and only read afterwards.
type Registry struct {
	order  []entity.Backend
	stores map[entity.Backend]*Cached
}

func NewRegistry() *Registry {
	return &Registry{stores: make(map[entity.Backend]*Cached)}
}

func (r *Registry) Register(id entity.Backend, s *Cached) error {
	if _, ok := r.stores[id]; ok {
		return fmt.Errorf("backend %q registered twice", id)
	}

	r.stores[id] = s
	r.order = append(r.order, id)
	return nil
}

// Get resolves a registered backend.
func (r *Registry) Get(id entity.Backend) (usecase.Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return nil, pkgerror.NewLookup(fmt.Errorf("%w: %q", entity.ErrUnknownBackend, id))
	}
	return s, nil
}

// IDs returns the registered backends in registration order.
func (r *Registry) IDs() []entity.Backend {
	return append([]entity.Backend(nil), r.order...)
}

// Cached returns the cached store of a registered backend.
func (r *Registry) Cached(id entity.Backend) (*Cached, bool) {
	s, ok := r.stores[id]
	return s, ok
}

func (r *Registry) Close() error {
	var errs []error
	for _, id := range r.order {
		if err := r.stores[id].Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}
