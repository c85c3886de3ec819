package usecase

import (
	"context"
	"log/slog"

	"github.com/secretdeck/secretdeck/internal/hook/entity"
	"github.com/secretdeck/secretdeck/internal/pkg/goerror"
)

type ReceiveInput struct {
	Name   string            `validate:"required,max=253"`
	Fields map[string]string `validate:"omitempty,max=64"`
}

// Receive stores a webhook envelope verbatim. The envelope content is not
// interpreted; only the name is required.
func (s *Usecase) Receive(ctx context.Context, in ReceiveInput) (_ *entity.Event, err error) {
	ctx, span := s.startSpan(ctx, "Receive")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	event := entity.Event{
		ID:         s.uuid.Generate(),
		Name:       in.Name,
		Fields:     in.Fields,
		ReceivedAt: s.clock.Now(),
	}

	if err := s.repoCache.Push(ctx, event); err != nil {
		slog.ErrorContext(ctx, "failed to store webhook event", "name", in.Name, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &event, nil
}
