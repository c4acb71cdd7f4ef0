package pkgrouter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/segmentio/encoding/json"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgerror"
)

const (
	ContentTypeText = "text/plain"
	ContentTypeJSON = "application/json"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// Handler is the application-style handler used by this router.
//
// It returns a response payload or an error. Text and HTML payloads are
// written verbatim; anything else is JSON encoded.
type Handler func(ctx context.Context, r *http.Request) (any, error)

// Text is a payload written as text/plain.
type Text string

// HTML is a payload written as text/html; charset=utf-8.
type HTML string

// Options configures NewRouter. Every field is optional.
type Options struct {
	// ID generates correlation IDs for requests that do not carry one.
	ID Generator
	// ServerName is sent in the Server response header when not empty.
	ServerName string
	// Metrics receives one observation per finished request.
	Metrics Observer
}

// Router is an http.Handler that wraps httprouter and a middleware chain.
type Router struct {
	hr  *httprouter.Router
	mws []Middleware
}

// NewRouter builds the default application router with standard middleware.
func NewRouter(opts Options) *Router {
	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      false,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, errorResponse{Message: "endpoint not found"}, http.StatusNotFound)
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, errorResponse{Message: "method not allowed"}, http.StatusMethodNotAllowed)
		}),
	}

	mws := []Middleware{middlewareRecoverer}
	if opts.ServerName != "" {
		mws = append(mws, middlewareServerHeader(opts.ServerName))
	}
	mws = append(mws, middlewareCorrelationID(opts.ID))
	if opts.Metrics != nil {
		mws = append(mws, middlewareMetrics(opts.Metrics))
	}
	mws = append(mws, middlewareLogging)

	ro := &Router{hr: hr, mws: mws}

	ro.Handle(http.MethodGet, "/health", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, errorResponse{Message: "server is running well"}, http.StatusOK)
	}))

	return ro
}

// GET registers a GET endpoint using the application Handler signature.
func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.Handle(http.MethodGet, path, http.HandlerFunc(func(w http.ResponseWriter, re *http.Request) {
		resp, err := h(re.Context(), re)
		if err != nil {
			writeError(re.Context(), w, err)
			return
		}
		writeResponse(w, resp)
	}), mws...)
}

// Handle registers a raw http.Handler with the router.
//
// The registered path is stored in the request context (see RoutePattern) so
// logs and metrics group requests by route rather than by raw URL.
func (r *Router) Handle(method, path string, h http.Handler, mws ...Middleware) {
	chain := make([]Middleware, 0, len(r.mws)+len(mws)+1)
	chain = append(chain, withRoutePattern(path))
	chain = append(chain, r.mws...)
	chain = append(chain, mws...)

	r.hr.Handler(method, path, Chain(h, chain...))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var gerr *pkgerror.Error
	if !errors.As(err, &gerr) {
		slog.ErrorContext(ctx, "request failed", "error", err)
		writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		return
	}

	if gerr.StatusCode() >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "request failed", "error", gerr.String())
	}

	writeJSON(w, errorResponse{Message: gerr.Msg()}, gerr.StatusCode())
}

func writeResponse(w http.ResponseWriter, resp any) {
	switch body := resp.(type) {
	case nil:
		w.WriteHeader(http.StatusNoContent)
	case Text:
		writeBody(w, ContentTypeText, []byte(body), http.StatusOK)
	case HTML:
		writeBody(w, ContentTypeHTML, []byte(body), http.StatusOK)
	default:
		writeJSON(w, resp, http.StatusOK)
	}
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("server: failed to encode data to json", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeBody(w, ContentTypeJSON, body, code)
}

func writeBody(w http.ResponseWriter, contentType string, body []byte, code int) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		slog.Debug("server: failed to write response body", "error", err)
	}
}
