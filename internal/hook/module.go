// Package hook receives webhook envelopes and keeps the most recent ones
// for display.
package hook

import (
	"github.com/redis/go-redis/v9"
	"github.com/secretdeck/secretdeck/internal/hook/inbound"
	"github.com/secretdeck/secretdeck/internal/hook/outbound/cache"
	"github.com/secretdeck/secretdeck/internal/hook/usecase"
	"github.com/secretdeck/secretdeck/internal/pkg/clock"
	"github.com/secretdeck/secretdeck/internal/pkg/config"
	"github.com/secretdeck/secretdeck/internal/pkg/instrument"
	"github.com/secretdeck/secretdeck/internal/pkg/router"
	"github.com/secretdeck/secretdeck/internal/pkg/uid"
	"github.com/secretdeck/secretdeck/internal/pkg/validator"
)

type Dependency struct {
	Redis      *redis.Client
	Config     config.Config
	Instrument instrument.Instrumentation
	UUID       uid.StringID
	Clock      clock.Clocker
	Validator  validator.Validator
	Router     *router.Router
}

func New(dep Dependency) error {
	repoCache := cache.NewCache(dep.Redis, dep.Instrument, cache.Options{
		Key:       dep.Config.GetString("hook.cache_key"),
		MaxEvents: dep.Config.GetInt64("hook.max_events"),
		TTL:       dep.Config.GetMinute("hook.ttl_minutes"),
	})

	uc := usecase.NewHook(usecase.Dependency{
		RepoCache:  repoCache,
		Config:     dep.Config,
		UUID:       dep.UUID,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
