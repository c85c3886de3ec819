package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/secretdeck/secretdeck/internal/pkg/clock"
	"github.com/secretdeck/secretdeck/internal/pkg/config"
	"github.com/secretdeck/secretdeck/internal/pkg/goroutine"
	"github.com/secretdeck/secretdeck/internal/pkg/instrument"
	"github.com/secretdeck/secretdeck/internal/pkg/router"
	"github.com/secretdeck/secretdeck/internal/pkg/secretstore"
	"github.com/secretdeck/secretdeck/internal/pkg/uid"
	"github.com/secretdeck/secretdeck/internal/pkg/validator"
)

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	if os.Getenv("LOCAL") == "true" {
		return "./config/config.yaml"
	}
	return "/config/config.yaml"
}

func (a *App) initConfig() {
	cfg, err := config.NewViper(configPath())
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}

	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))

	v10, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = v10
}

func (a *App) initCache() {
	opt, err := redis.ParseURL(a.config.GetString("redis.url"))
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("failed to init redis", "error", err)
		os.Exit(1)
	}

	a.cacheConn = rdb
}

func (a *App) initSecretStore() {
	driver := a.config.GetString("secretstore.driver")

	// The static driver keeps the monitored secrets inline in the config
	// file, keyed by the same names the panel watches.
	static := make(map[string]map[string]string)
	if driver == secretstore.DriverStatic {
		for _, name := range a.config.GetArray("panel.secrets") {
			static[name] = a.config.GetMap("secretstore.static." + name)
		}
	}

	store, err := secretstore.NewFromDriver(driver, secretstore.FactoryOptions{
		Static: static,
		File: secretstore.FileOptions{
			Path:  a.config.GetString("secretstore.file.path"),
			Watch: a.config.GetBool("secretstore.file.watch"),
		},
		Redis: secretstore.RedisOptions{
			Client:    a.cacheConn,
			KeyPrefix: a.config.GetString("secretstore.redis.key_prefix"),
		},
	})
	if err != nil {
		slog.Error("failed to init secret store", "error", err, "driver", driver)
		os.Exit(1)
	}

	a.secretStore = store
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})

	startedAt := a.clock.Now()
	a.router.GET("/health", func(_ *router.Request) (any, error) {
		return map[string]any{
			"status":         "ok",
			"uptime_seconds": int64(a.clock.Now().Sub(startedAt).Seconds()),
		}, nil
	})

	handler := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           handler,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}

	// The SSE server carries long-lived streams, so it gets no write or
	// idle timeouts.
	a.sseServer = &http.Server{
		Addr:              a.config.GetString("app.server.sse.address"),
		Handler:           handler,
		ReadHeaderTimeout: a.config.GetSecond("app.server.sse.read_header_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []closer{
		{name: "Instrument", fn: a.ins.Shutdown},
		{name: "SecretStore", fn: func(context.Context) error { return a.secretStore.Close() }},
		{name: "Redis", fn: func(context.Context) error { return a.cacheConn.Close() }},
		{name: "Config", fn: func(context.Context) error { return a.config.Close() }},
	}
}
