package render

import (
	"fmt"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/usecase"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgerror"
)

// Registry maps template engine identifiers to their engines, in configured order.
type Registry struct {
	order   []entity.TemplateEngine
	engines map[entity.TemplateEngine]usecase.TemplateEngine
}

// NewRegistry builds the requested engines. Duplicates are ignored.
func NewRegistry(ids []entity.TemplateEngine) (*Registry, error) {
	base, err := NewGoTemplate()
	if err != nil {
		return nil, err
	}

	r := &Registry{engines: make(map[entity.TemplateEngine]usecase.TemplateEngine, len(ids))}
	for _, id := range ids {
		if _, ok := r.engines[id]; ok {
			continue
		}

		switch id {
		case entity.TemplateEngineGo:
			r.engines[id] = base
		case entity.TemplateEngineMinify:
			r.engines[id] = NewMinified(base)
		default:
			return nil, fmt.Errorf("%w: %q", entity.ErrUnknownTemplateEngine, id)
		}
		r.order = append(r.order, id)
	}

	return r, nil
}

// IDs returns the registered engines in configured order.
func (r *Registry) IDs() []entity.TemplateEngine {
	return append([]entity.TemplateEngine(nil), r.order...)
}

// Get resolves a registered engine.
func (r *Registry) Get(id entity.TemplateEngine) (usecase.TemplateEngine, error) {
	engine, ok := r.engines[id]
	if !ok {
		return nil, pkgerror.NewLookup(fmt.Errorf("%w: %q", entity.ErrUnknownTemplateEngine, id))
	}
	return engine, nil
}

// Resources maps every registered engine to its fortunes template.
func (r *Registry) Resources() map[entity.TemplateEngine]string {
	resources := make(map[entity.TemplateEngine]string, len(r.order))
	for _, id := range r.order {
		resources[id] = FortunesResource
	}
	return resources
}
