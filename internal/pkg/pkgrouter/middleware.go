package pkgrouter

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkglog"
)

// Middleware wraps an http.Handler, typically to add cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware in order, returning the final wrapped handler.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Generator generates a unique string (used for correlation/request IDs).
type Generator interface {
	Generate() string
}

// Observer receives one observation per finished request.
type Observer interface {
	Observe(route, method string, status int, elapsed time.Duration)
}

const (
	// HeaderCorrelationID is the canonical header used to track requests end-to-end.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is an accepted alternative header name used by some proxies.
	HeaderRequestID = "X-Request-ID"
)

type routeContextKey struct{}

// RoutePattern returns the registered path of the route serving r, or the raw
// URL path when the request did not go through Router.Handle.
func RoutePattern(r *http.Request) string {
	if route, ok := r.Context().Value(routeContextKey{}).(string); ok {
		return route
	}
	return r.URL.Path
}

func withRoutePattern(route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), routeContextKey{}, route)))
		})
	}
}

func middlewareServerHeader(name string) Middleware {
	value := []string{name}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header()["Server"] = value
			next.ServeHTTP(w, r)
		})
	}
}

func normalizeCID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.ContainsAny(v, "\r\n") {
		return ""
	}
	const maxLen = 128
	if len(v) > maxLen {
		v = v[:maxLen]
	}
	return v
}

func middlewareCorrelationID(uid Generator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := normalizeCID(r.Header.Get(HeaderCorrelationID))
			if cid == "" {
				cid = normalizeCID(r.Header.Get(HeaderRequestID))
			}
			if cid == "" && uid != nil {
				cid = uid.Generate()
			}

			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(pkglog.SetCorrelationID(r.Context(), cid))
			}

			next.ServeHTTP(w, r)
		})
	}
}

func middlewareMetrics(obs Observer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(rec, r)

			obs.Observe(RoutePattern(r), r.Method, rec.statusCode(), time.Since(start))
		})
	}
}
