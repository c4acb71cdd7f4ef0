package app

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"os"

	"github.com/rs/cors"
	"github.com/shandysiswandi/gobenchmark/internal/benchmark"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkglog"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkguid"
)

var defaults = map[string]any{
	"service":   "gobenchmark",
	"log.level": "info",
	"tz":        "UTC",

	"server.address.http":         ":8080",
	"server.name":                 "gobenchmark",
	"server.timeout.read_header":  "5s",
	"server.timeout.read":         "10s",
	"server.timeout.write":        "30s",
	"server.timeout.idle":         "120s",
	"server.cors.allowed_origins": "*",

	"metrics.enabled":   true,
	"metrics.namespace": "gobenchmark",

	"goroutine.max": 16,
}

// LoadConfig reads the configuration file with the application and module
// defaults applied, then initializes logging from it.
func LoadConfig(path string) (pkgconfig.Config, error) {
	all := maps.Clone(defaults)
	maps.Copy(all, benchmark.Defaults)

	cfg, err := pkgconfig.NewViper(path, all)
	if err != nil {
		return nil, err
	}

	pkglog.InitLogging(cfg.GetString("service"), cfg.GetString("log.level"))

	return cfg, nil
}

func (a *App) initConfig() {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	a.config = cfg
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(int(a.config.GetInt("goroutine.max")))
	a.uuid = pkguid.NewUUID()

	if a.config.GetBool("metrics.enabled") {
		a.metrics = pkgmetrics.New(a.config.GetString("metrics.namespace"))
	}
}

func (a *App) initHTTPServer() {
	opts := pkgrouter.Options{
		ID:         a.uuid,
		ServerName: a.config.GetString("server.name"),
	}
	if a.metrics != nil {
		opts.Metrics = a.metrics
	}

	a.router = pkgrouter.NewRouter(opts)
	if a.metrics != nil {
		a.router.Handle(http.MethodGet, "/metrics", a.metrics.Handler())
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("server.cors.allowed_origins"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: a.config.GetDuration("server.timeout.read_header"),
		ReadTimeout:       a.config.GetDuration("server.timeout.read"),
		WriteTimeout:      a.config.GetDuration("server.timeout.write"),
		IdleTimeout:       a.config.GetDuration("server.timeout.idle"),
	}
}

//nolint:unparam // is always nil
func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn[closerHTTPServer] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
