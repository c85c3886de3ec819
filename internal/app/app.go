// Package app wires configuration, shared libraries, the secret store, and
// the HTTP surface into a runnable service.
package app

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/secretdeck/secretdeck/internal/pkg/clock"
	"github.com/secretdeck/secretdeck/internal/pkg/config"
	"github.com/secretdeck/secretdeck/internal/pkg/goroutine"
	"github.com/secretdeck/secretdeck/internal/pkg/instrument"
	"github.com/secretdeck/secretdeck/internal/pkg/router"
	"github.com/secretdeck/secretdeck/internal/pkg/secretstore"
	"github.com/secretdeck/secretdeck/internal/pkg/uid"
	"github.com/secretdeck/secretdeck/internal/pkg/validator"
)

type closer struct {
	name string
	fn   func(context.Context) error
}

// App owns every long-lived dependency and manages the service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	config config.Config
	ins    instrument.Instrumentation

	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID

	cacheConn   *redis.Client
	secretStore secretstore.Store

	router     *router.Router
	httpServer *http.Server
	sseServer  *http.Server

	closers []closer
}

// New initializes the application with default wiring and returns an App
// instance. Initialization failures log and exit; there is no degraded mode.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{ctx: ctx, cancel: cancel}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initCache()
	app.initSecretStore()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
