package usecase

import (
	"context"
	"log/slog"

	"github.com/secretdeck/secretdeck/internal/hook/entity"
	"github.com/secretdeck/secretdeck/internal/pkg/goerror"
)

type ListEventsInput struct {
	Limit int64 `validate:"omitempty,gte=1,lte=100"`
}

// ListEvents returns the most recent webhook envelopes, newest first.
func (s *Usecase) ListEvents(ctx context.Context, in ListEventsInput) (_ []entity.Event, err error) {
	ctx, span := s.startSpan(ctx, "ListEvents")
	defer span.End()

	if in.Limit == 0 {
		in.Limit = 20
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	events, err := s.repoCache.Recent(ctx, in.Limit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list webhook events", "error", err)
		return nil, goerror.NewServer(err)
	}

	return events, nil
}
