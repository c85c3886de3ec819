package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/secretdeck/secretdeck/internal/panel/entity"
	"github.com/secretdeck/secretdeck/internal/pkg/clock"
	"github.com/secretdeck/secretdeck/internal/pkg/config"
	"github.com/secretdeck/secretdeck/internal/pkg/instrument"
	"github.com/secretdeck/secretdeck/internal/pkg/secretstore"
	"github.com/secretdeck/secretdeck/internal/pkg/totp"
	"github.com/secretdeck/secretdeck/internal/pkg/validator"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/trace"
)

type repoStore interface {
	Fetch(ctx context.Context, name string) (map[string]string, error)
}

// rawSecret is a fetched-but-unclassified secret kept in the snapshot so the
// stream ticker can recompute codes without touching the store every second.
type rawSecret struct {
	name string
	data map[string]string
	err  string
}

type Usecase struct {
	repoStore repoStore
	cfg       config.Config
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation
	names     []string

	snapMu   sync.RWMutex
	snapshot []rawSecret

	streamMu sync.RWMutex
	streams  map[*subscriber]struct{}
}

type Dependency struct {
	RepoStore  repoStore
	Config     config.Config
	Clock      clock.Clocker
	Validator  validator.Validator
	Instrument instrument.Instrumentation
	// Names is the ordered list of monitored secret names.
	Names []string
}

func NewPanel(dep Dependency) *Usecase {
	return &Usecase{
		repoStore: dep.RepoStore,
		cfg:       dep.Config,
		clock:     dep.Clock,
		validator: dep.Validator,
		ins:       dep.Instrument,
		names:     dep.Names,
		streams:   make(map[*subscriber]struct{}),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("panel.usecase").Start(ctx, name)
}

// fetchSecret fetches one secret with a short fibonacci backoff so a blip in
// the backing store does not surface as an error row.
func (s *Usecase) fetchSecret(ctx context.Context, name string) (map[string]string, error) {
	var data map[string]string

	b := retry.NewFibonacci(100 * time.Millisecond)
	b = retry.WithCappedDuration(time.Second, b)
	b = retry.WithMaxRetries(3, b)

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		fetched, err := s.repoStore.Fetch(ctx, name)
		if errors.Is(err, secretstore.ErrNotFound) {
			return err
		}
		if err != nil {
			return retry.RetryableError(err)
		}
		data = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// classify turns raw secret data into display fields, evaluated at now.
// Field keys are sorted so rendering order is stable across refreshes.
func classify(data map[string]string, now int64) []entity.Field {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]entity.Field, 0, len(keys))
	for _, key := range keys {
		value := data[key]

		if !totp.IsURI(value) {
			fields = append(fields, entity.Field{
				Name:  key,
				Kind:  entity.FieldKindPlain,
				Value: value,
			})
			continue
		}

		params, err := totp.ParseURI(value)
		if err != nil {
			fields = append(fields, entity.Field{
				Name:  key,
				Kind:  entity.FieldKindInvalid,
				Error: err.Error(),
			})
			continue
		}

		code := totp.Generate(params, now)
		fields = append(fields, entity.Field{
			Name:       key,
			Kind:       entity.FieldKindTOTP,
			Issuer:     params.Issuer,
			Label:      params.Label,
			Code:       code.Value,
			ValidFrom:  code.ValidFrom,
			ValidUntil: code.ValidUntil,
			Remaining:  code.Remaining(now),
		})
	}

	return fields
}

func (s *Usecase) setSnapshot(raw []rawSecret) {
	s.snapMu.Lock()
	s.snapshot = raw
	s.snapMu.Unlock()
}

func (s *Usecase) getSnapshot() []rawSecret {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snapshot
}
