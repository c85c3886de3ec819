// Package panel displays monitored secrets and their live one-time codes.
package panel

import (
	"context"

	"github.com/secretdeck/secretdeck/internal/panel/inbound"
	"github.com/secretdeck/secretdeck/internal/panel/outbound/store"
	"github.com/secretdeck/secretdeck/internal/panel/usecase"
	"github.com/secretdeck/secretdeck/internal/pkg/clock"
	"github.com/secretdeck/secretdeck/internal/pkg/config"
	"github.com/secretdeck/secretdeck/internal/pkg/goroutine"
	"github.com/secretdeck/secretdeck/internal/pkg/instrument"
	"github.com/secretdeck/secretdeck/internal/pkg/router"
	"github.com/secretdeck/secretdeck/internal/pkg/secretstore"
	"github.com/secretdeck/secretdeck/internal/pkg/validator"
)

type Dependency struct {
	Ctx         context.Context
	SecretStore secretstore.Store
	Config      config.Config
	Instrument  instrument.Instrumentation
	Clock       clock.Clocker
	Goroutine   *goroutine.Manager
	Validator   validator.Validator
	Router      *router.Router
}

func New(dep Dependency) error {
	repoStore := store.NewStore(dep.SecretStore, dep.Instrument)

	uc := usecase.NewPanel(usecase.Dependency{
		RepoStore:  repoStore,
		Config:     dep.Config,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
		Names:      dep.Config.GetArray("panel.secrets"),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	if dep.Ctx != nil {
		dep.Goroutine.Go(dep.Ctx, uc.RunRefresher)
		dep.Goroutine.Go(dep.Ctx, uc.RunTicker)
	}

	return nil
}
