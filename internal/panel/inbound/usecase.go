package inbound

import (
	"context"

	"github.com/secretdeck/secretdeck/internal/panel/entity"
	"github.com/secretdeck/secretdeck/internal/panel/usecase"
)

type ucStream interface {
	StreamCodes(ctx context.Context) <-chan usecase.StreamEvent
}

type uc interface {
	ucStream

	ListSecrets(ctx context.Context) ([]entity.Secret, error)
	SecretCodes(ctx context.Context, in usecase.SecretCodesInput) (*entity.Secret, error)
}
