// Package store adapts the shared secret store to the panel usecase, adding
// tracing around each fetch.
package store

import (
	"context"
	"errors"

	"github.com/secretdeck/secretdeck/internal/pkg/instrument"
	"github.com/secretdeck/secretdeck/internal/pkg/secretstore"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Store struct {
	backend secretstore.Store
	ins     instrument.Instrumentation
}

func NewStore(backend secretstore.Store, ins instrument.Instrumentation) *Store {
	return &Store{backend: backend, ins: ins}
}

func (s *Store) Fetch(ctx context.Context, name string) (_ map[string]string, err error) {
	ctx, span := s.ins.Tracer("panel.outbound.store").Start(ctx, "Fetch",
		trace.WithAttributes(attribute.String("secret.name", name)))
	defer func() {
		if err != nil && !errors.Is(err, secretstore.ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	return s.backend.Fetch(ctx, name)
}
