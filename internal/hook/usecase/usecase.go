package usecase

import (
	"context"

	"github.com/secretdeck/secretdeck/internal/hook/entity"
	"github.com/secretdeck/secretdeck/internal/pkg/clock"
	"github.com/secretdeck/secretdeck/internal/pkg/config"
	"github.com/secretdeck/secretdeck/internal/pkg/instrument"
	"github.com/secretdeck/secretdeck/internal/pkg/uid"
	"github.com/secretdeck/secretdeck/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoCache interface {
	Push(ctx context.Context, event entity.Event) error
	Recent(ctx context.Context, limit int64) ([]entity.Event, error)
}

type Usecase struct {
	repoCache repoCache
	cfg       config.Config
	uuid      uid.StringID
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoCache  repoCache
	Config     config.Config
	UUID       uid.StringID
	Clock      clock.Clocker
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func NewHook(dep Dependency) *Usecase {
	return &Usecase{
		repoCache: dep.RepoCache,
		cfg:       dep.Config,
		uuid:      dep.UUID,
		clock:     dep.Clock,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("hook.usecase").Start(ctx, name)
}
