package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/secretdeck/secretdeck/internal/panel/entity"
	"github.com/secretdeck/secretdeck/internal/pkg/goerror"
	"github.com/secretdeck/secretdeck/internal/pkg/secretstore"
	"github.com/samber/lo"
)

type SecretCodesInput struct {
	Name string `validate:"required,secretname"`
}

// SecretCodes returns the current one-time codes for a single secret. Plain
// fields are excluded; invalid TOTP fields keep their error marker.
func (s *Usecase) SecretCodes(ctx context.Context, in SecretCodesInput) (_ *entity.Secret, err error) {
	ctx, span := s.startSpan(ctx, "SecretCodes")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if !lo.Contains(s.names, in.Name) {
		return nil, goerror.NewBusiness("secret is not monitored", goerror.CodeNotFound)
	}

	data, err := s.fetchSecret(ctx, in.Name)
	if err != nil {
		if errors.Is(err, secretstore.ErrNotFound) {
			return nil, goerror.NewBusiness("secret not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to fetch secret", "name", in.Name, "error", err)
		return nil, goerror.NewServer(err)
	}

	fields := lo.Filter(classify(data, s.clock.Now().Unix()), func(f entity.Field, _ int) bool {
		return f.Kind != entity.FieldKindPlain
	})

	return &entity.Secret{Name: in.Name, Fields: fields}, nil
}
