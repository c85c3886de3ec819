package inbound

import (
	"context"

	"github.com/secretdeck/secretdeck/internal/hook/entity"
	"github.com/secretdeck/secretdeck/internal/hook/usecase"
)

type uc interface {
	Receive(ctx context.Context, in usecase.ReceiveInput) (*entity.Event, error)
	ListEvents(ctx context.Context, in usecase.ListEventsInput) ([]entity.Event, error)
}
