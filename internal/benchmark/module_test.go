package benchmark

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark/entity"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgroutine"
)

type mapConfig map[string]any

func (c mapConfig) value(key string) any {
	if v, ok := c[key]; ok {
		return v
	}
	return Defaults[key]
}

func (c mapConfig) Close() error { return nil }

func (c mapConfig) GetInt(key string) int64 {
	v, _ := c.value(key).(int)
	return int64(v)
}

func (c mapConfig) GetBool(key string) bool {
	v, _ := c.value(key).(bool)
	return v
}

func (c mapConfig) GetString(key string) string {
	v, _ := c.value(key).(string)
	return v
}

func (c mapConfig) GetDuration(key string) time.Duration {
	d, _ := time.ParseDuration(c.GetString(key))
	return d
}

func (c mapConfig) GetArray(key string) []string {
	switch v := c.value(key).(type) {
	case []string:
		return v
	case string:
		return strings.Split(v, ",")
	}
	return nil
}

func TestNewRegistersRoutes(t *testing.T) {
	runner := pkgroutine.NewManager(4)
	router := pkgrouter.NewRouter(pkgrouter.Options{})

	closer, err := New(Dependency{
		Config:    mapConfig{"benchmark.world_rows": 50, "cache.warm_up": true},
		Goroutine: runner,
		Router:    router,
		Context:   context.Background(),
	})
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}

	if err := runner.Wait(); err != nil {
		t.Fatalf("warm up err = %v", err)
	}

	for _, target := range []string{"/plaintext", "/json", "/memory/db", "/memory/cached?count=5", "/memory/minify/fortunes"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: unexpected status %d", target, rec.Code)
		}
	}

	if err := closer(context.Background()); err != nil {
		t.Fatalf("closer err = %v", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cases := map[string]mapConfig{
		"unknown backend": {"benchmark.backends": "memory,cassandra"},
		"unknown engine":  {"benchmark.template_engines": "pebble"},
		"no rows":         {"benchmark.world_rows": -1},
		"no backend":      {"benchmark.backends": ""},
		"bad cache":       {"cache.driver": "memcached"},
	}

	for name, cfg := range cases {
		_, err := New(Dependency{
			Config:    cfg,
			Goroutine: pkgroutine.NewManager(1),
			Router:    pkgrouter.NewRouter(pkgrouter.Options{}),
			Context:   context.Background(),
		})
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestSeedSkipsMemory(t *testing.T) {
	if err := Seed(context.Background(), mapConfig{"benchmark.backends": string(entity.BackendMemory)}); err != nil {
		t.Fatalf("Seed() err = %v", err)
	}
}

func TestRedisCacheKeysArePerBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := mapConfig{"cache.driver": "redis", "cache.redis.address": mr.Addr()}

	wc, err := newWorldCache(context.Background(), cfg, entity.BackendPostgreSQL, 100)
	if err != nil {
		t.Fatalf("newWorldCache() err = %v", err)
	}
	if err := wc.SetMany(context.Background(), []entity.World{{ID: 9, RandomNumber: 90}}); err != nil {
		t.Fatalf("SetMany() err = %v", err)
	}

	if got, err := mr.Get(string(entity.BackendPostgreSQL) + ":world:9"); err != nil || got != "90" {
		t.Fatalf("expected backend-prefixed key, got %q, %v (keys %v)", got, err, mr.Keys())
	}
}
