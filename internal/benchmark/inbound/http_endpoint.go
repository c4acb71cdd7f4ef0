package inbound

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/usecase"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgrouter"
)

type HTTPEndpoint struct {
	uc       uc
	settings usecase.Settings
}

func (h *HTTPEndpoint) Plaintext(context.Context, *http.Request) (any, error) {
	return pkgrouter.Text(h.settings.TextMessage), nil
}

func (h *HTTPEndpoint) JSON(context.Context, *http.Request) (any, error) {
	return Message{Message: h.settings.TextMessage}, nil
}

func (h *HTTPEndpoint) Fortunes(store usecase.Store, engine usecase.TemplateEngine, resource string) pkgrouter.Handler {
	return func(ctx context.Context, _ *http.Request) (any, error) {
		page, err := h.uc.Fortunes(ctx, store, engine, resource)
		if err != nil {
			return nil, err
		}

		return pkgrouter.HTML(page), nil
	}
}

func (h *HTTPEndpoint) DB(store usecase.Store) pkgrouter.Handler {
	return func(ctx context.Context, _ *http.Request) (any, error) {
		world, err := h.uc.World(ctx, store)
		if err != nil {
			return nil, err
		}

		return toHTTPWorld(world), nil
	}
}

func (h *HTTPEndpoint) Query(store usecase.Store) pkgrouter.Handler {
	return h.worlds(store, h.settings.QueriesParam, h.uc.Worlds)
}

func (h *HTTPEndpoint) Cached(store usecase.Store) pkgrouter.Handler {
	return h.worlds(store, h.settings.CachedQueriesParam, h.uc.CachedWorlds)
}

func (h *HTTPEndpoint) Update(store usecase.Store) pkgrouter.Handler {
	return h.worlds(store, h.settings.QueriesParam, h.uc.UpdateWorlds)
}

type worldsFunc func(ctx context.Context, store usecase.Store, count int) ([]entity.World, error)

func (h *HTTPEndpoint) worlds(store usecase.Store, param string, fetch worldsFunc) pkgrouter.Handler {
	return func(ctx context.Context, r *http.Request) (any, error) {
		worlds, err := fetch(ctx, store, queriesCount(r.URL.Query().Get(param)))
		if err != nil {
			return nil, err
		}

		out := make([]World, len(worlds))
		for i, w := range worlds {
			out[i] = toHTTPWorld(w)
		}

		return out, nil
	}
}

// queriesCount parses a query count; absent or malformed values, padded ones
// included, count as the minimum and the result is clamped to
// [MinQueries, MaxQueries].
func queriesCount(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return usecase.MinQueries
	}

	return min(max(n, usecase.MinQueries), usecase.MaxQueries)
}
