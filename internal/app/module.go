package app

import (
	"log/slog"
	"os"

	"github.com/secretdeck/secretdeck/internal/hook"
	"github.com/secretdeck/secretdeck/internal/panel"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.panel.enabled") {
		if err := panel.New(panel.Dependency{
			Ctx:         a.ctx,
			SecretStore: a.secretStore,
			Config:      a.config,
			Instrument:  a.ins,
			Clock:       a.clock,
			Goroutine:   a.goroutine,
			Validator:   a.validator,
			Router:      a.router,
		}); err != nil {
			slog.Error("failed to init module panel", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.hook.enabled") {
		if err := hook.New(hook.Dependency{
			Redis:      a.cacheConn,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
			Router:     a.router,
		}); err != nil {
			slog.Error("failed to init module hook", "error", err)
			os.Exit(1)
		}
	}
}
