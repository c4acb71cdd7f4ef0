package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/shandysiswandi/gobenchmark/internal/benchmark/cache"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/render"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/store"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/usecase"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgrouter"
)

const worldRows = 100

type recordingStore struct {
	usecase.Store

	mu       sync.Mutex
	replaced [][]entity.World
}

func (s *recordingStore) ReplaceWorlds(ctx context.Context, worlds []entity.World) error {
	s.mu.Lock()
	s.replaced = append(s.replaced, worlds)
	s.mu.Unlock()
	return s.Store.ReplaceWorlds(ctx, worlds)
}

type brokenStore struct{ usecase.Store }

func (brokenStore) FindWorlds(context.Context, []int) ([]entity.World, error) {
	return nil, errors.New("connection reset by peer")
}

type unreachableStore struct{ usecase.Store }

func (unreachableStore) FindAllFortunes(context.Context) ([]entity.Fortune, error) {
	return nil, pkgerror.NewUnavailable(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))
}

type fixedStores map[entity.Backend]usecase.Store

func (f fixedStores) IDs() []entity.Backend {
	ids := make([]entity.Backend, 0, len(f))
	for _, id := range entity.Backends() {
		if _, ok := f[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (f fixedStores) Get(id entity.Backend) (usecase.Store, error) {
	s, ok := f[id]
	if !ok {
		return nil, entity.ErrUnknownBackend
	}
	return s, nil
}

func newBenchmarkRouter(t *testing.T) (*pkgrouter.Router, *recordingStore) {
	t.Helper()

	db := store.NewInMemoryStore(store.StandardFortunes(), store.RandomWorlds(worldRows, nil))
	recording := &recordingStore{Store: store.NewCached(db, cache.NewMemory(worldRows))}

	engines, err := render.NewRegistry(entity.TemplateEngines())
	if err != nil {
		t.Fatalf("render.NewRegistry() err = %v", err)
	}

	settings := usecase.DefaultSettings()
	settings.WorldRows = worldRows
	uc := usecase.New(usecase.Dependency{Settings: settings, Resources: engines.Resources()})

	router := pkgrouter.NewRouter(pkgrouter.Options{})
	stores := fixedStores{entity.BackendMemory: recording, entity.BackendPostgreSQL: brokenStore{recording}}
	if err := RegisterHTTPEndpoint(router, uc, stores, engines); err != nil {
		t.Fatalf("RegisterHTTPEndpoint() err = %v", err)
	}

	return router, recording
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeWorlds(t *testing.T, rec *httptest.ResponseRecorder) []World {
	t.Helper()

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != pkgrouter.ContentTypeJSON {
		t.Fatalf("unexpected content type %q", got)
	}

	var worlds []World
	if err := json.Unmarshal(rec.Body.Bytes(), &worlds); err != nil {
		t.Fatalf("decode worlds: %v", err)
	}
	for _, w := range worlds {
		if w.ID < 1 || w.ID > worldRows || w.RandomNumber < 1 || w.RandomNumber > worldRows {
			t.Fatalf("world out of range: %+v", w)
		}
	}
	return worlds
}

func TestPlaintextAndJSON(t *testing.T) {
	router, _ := newBenchmarkRouter(t)

	rec := get(t, router, "/plaintext")
	if rec.Code != http.StatusOK || rec.Body.String() != "Hello, World!" {
		t.Fatalf("unexpected plaintext response %d %q", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "text/plain" {
		t.Fatalf("unexpected plaintext content type %q", got)
	}

	rec = get(t, router, "/json")
	if rec.Body.String() != `{"message":"Hello, World!"}` {
		t.Fatalf("unexpected json body %q", rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected json content type %q", got)
	}
}

func TestDBReturnsOneWorld(t *testing.T) {
	router, _ := newBenchmarkRouter(t)

	rec := get(t, router, "/memory/db")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	var world World
	if err := json.Unmarshal(rec.Body.Bytes(), &world); err != nil {
		t.Fatalf("decode world: %v", err)
	}
	if world.ID < 1 || world.ID > worldRows {
		t.Fatalf("world id out of range: %d", world.ID)
	}
	if !strings.Contains(rec.Body.String(), `"randomNumber":`) {
		t.Fatalf("expected randomNumber field: %s", rec.Body.String())
	}
}

func TestQueryCountClamping(t *testing.T) {
	router, _ := newBenchmarkRouter(t)

	cases := map[string]int{
		"/memory/query":              1,
		"/memory/query?queries=":     1,
		"/memory/query?queries=foo":  1,
		"/memory/query?queries=0":    1,
		"/memory/query?queries=-3":   1,
		"/memory/query?queries=1":    1,
		"/memory/query?queries=20":   20,
		"/memory/query?queries=500":  500,
		"/memory/query?queries=501":  500,
		"/memory/query?queries=9999": 500,
		"/memory/query?count=20":     1,
		"/memory/cached?count=7":     7,
		"/memory/cached?queries=7":   1,
		"/memory/cached?count=600":   500,

		"/memory/query?queries=%2012%20": 1,
	}

	for target, want := range cases {
		if got := len(decodeWorlds(t, get(t, router, target))); got != want {
			t.Fatalf("%s: expected %d worlds, got %d", target, want, got)
		}
	}
}

func TestUpdateReplacesOnce(t *testing.T) {
	router, recording := newBenchmarkRouter(t)

	worlds := decodeWorlds(t, get(t, router, "/memory/update?queries=5"))
	if len(worlds) != 5 {
		t.Fatalf("expected 5 worlds, got %d", len(worlds))
	}
	if len(recording.replaced) != 1 {
		t.Fatalf("expected one replace call, got %d", len(recording.replaced))
	}

	replaced := make([]World, len(recording.replaced[0]))
	for i, w := range recording.replaced[0] {
		replaced[i] = toHTTPWorld(w)
	}
	if !reflect.DeepEqual(replaced, worlds) {
		t.Fatalf("response %+v differs from replaced batch %+v", worlds, replaced)
	}
}

func TestFortunes(t *testing.T) {
	router, _ := newBenchmarkRouter(t)

	for _, engine := range []string{"gotemplate", "minify"} {
		rec := get(t, router, "/memory/"+engine+"/fortunes")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: unexpected status %d", engine, rec.Code)
		}
		if got := rec.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
			t.Fatalf("%s: unexpected content type %q", engine, got)
		}

		body := rec.Body.String()
		if got := strings.Count(body, "<tr><td>"); got != 13 {
			t.Fatalf("%s: expected 13 rows, got %d", engine, got)
		}
		if !strings.Contains(body, "<td>0</td><td>Additional fortune added at request time.</td>") {
			t.Fatalf("%s: missing request-time fortune:\n%s", engine, body)
		}
		if strings.Contains(body, "<script>") {
			t.Fatalf("%s: fortune markup must be escaped", engine)
		}

		first := strings.Index(body, "A bad random number generator")
		last := strings.Index(body, "フレームワークのベンチマーク")
		extra := strings.Index(body, "Additional fortune")
		if first < 0 || first > extra || extra > last {
			t.Fatalf("%s: rows not sorted by message:\n%s", engine, body)
		}
	}
}

func TestUnknownSegmentsFail(t *testing.T) {
	router, _ := newBenchmarkRouter(t)

	for _, target := range []string{"/cassandra/db", "/mongodb/query", "/memory/pebble/fortunes", "/Memory/db"} {
		rec := get(t, router, target)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", target, rec.Code)
		}
		if rec.Body.Len() == 0 {
			t.Fatalf("%s: expected a failure body", target)
		}
	}
}

func TestStoreFailureIsInternalError(t *testing.T) {
	router, _ := newBenchmarkRouter(t)

	rec := get(t, router, "/postgresql/query?queries=3")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Body.String() != `{"message":"Internal server error"}` {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestUnreachableStoreIsServiceUnavailable(t *testing.T) {
	engines, err := render.NewRegistry(entity.TemplateEngines())
	if err != nil {
		t.Fatalf("render.NewRegistry() err = %v", err)
	}

	uc := usecase.New(usecase.Dependency{Settings: usecase.DefaultSettings(), Resources: engines.Resources()})
	db := store.NewCached(store.NewInMemoryStore(nil, nil), cache.NewMemory(0))

	router := pkgrouter.NewRouter(pkgrouter.Options{})
	if err := RegisterHTTPEndpoint(router, uc, fixedStores{entity.BackendMongoDB: unreachableStore{db}}, engines); err != nil {
		t.Fatalf("RegisterHTTPEndpoint() err = %v", err)
	}

	rec := get(t, router, "/mongodb/gotemplate/fortunes")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if rec.Body.String() != `{"message":"Service unavailable"}` {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

type noEngines struct{}

func (noEngines) IDs() []entity.TemplateEngine { return []entity.TemplateEngine{entity.TemplateEngineMinify} }

func (noEngines) Get(entity.TemplateEngine) (usecase.TemplateEngine, error) {
	return nil, entity.ErrUnknownTemplateEngine
}

type brokenStores struct{}

func (brokenStores) IDs() []entity.Backend { return []entity.Backend{entity.BackendMongoDB} }

func (brokenStores) Get(entity.Backend) (usecase.Store, error) { return nil, entity.ErrUnknownBackend }

func TestRegisterFailsOnUnresolvedIdentifiers(t *testing.T) {
	uc := usecase.New(usecase.Dependency{Settings: usecase.DefaultSettings()})
	db := store.NewCached(store.NewInMemoryStore(nil, nil), cache.NewMemory(0))
	stores := fixedStores{entity.BackendMemory: db}

	err := RegisterHTTPEndpoint(pkgrouter.NewRouter(pkgrouter.Options{}), uc, brokenStores{}, noEngines{})
	if !errors.Is(err, entity.ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}

	err = RegisterHTTPEndpoint(pkgrouter.NewRouter(pkgrouter.Options{}), uc, stores, noEngines{})
	if !errors.Is(err, entity.ErrUnknownTemplateEngine) {
		t.Fatalf("expected ErrUnknownTemplateEngine, got %v", err)
	}

	engines, err := render.NewRegistry([]entity.TemplateEngine{entity.TemplateEngineGo})
	if err != nil {
		t.Fatalf("render.NewRegistry() err = %v", err)
	}
	err = RegisterHTTPEndpoint(pkgrouter.NewRouter(pkgrouter.Options{}), uc, stores, engines)
	if !errors.Is(err, usecase.ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
}

func TestQueriesCount(t *testing.T) {
	cases := map[string]int{"": 1, " 12 ": 1, "12": 12, "+7": 7, "1.5": 1, "0": 1, "-1": 1, "500": 500, "501": 500, "99999999999999999999": 1}
	for raw, want := range cases {
		if got := queriesCount(raw); got != want {
			t.Fatalf("queriesCount(%q) = %d, want %d", raw, got, want)
		}
	}
}
