package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gobenchmark/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	configPath string
	config     pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	goroutine *pkgroutine.Manager
	metrics   *pkgmetrics.Metrics

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

func New(configPath string) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:        ctx,
		cancel:     cancel,
		configPath: configPath,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
