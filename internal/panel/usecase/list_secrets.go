package usecase

import (
	"context"
	"log/slog"

	"github.com/secretdeck/secretdeck/internal/panel/entity"
)

// ListSecrets fetches every monitored secret and classifies its fields. A
// secret that cannot be fetched becomes an error row; it never fails the
// whole listing.
func (s *Usecase) ListSecrets(ctx context.Context) (_ []entity.Secret, err error) {
	ctx, span := s.startSpan(ctx, "ListSecrets")
	defer span.End()

	raw := make([]rawSecret, 0, len(s.names))
	for _, name := range s.names {
		data, err := s.fetchSecret(ctx, name)
		if err != nil {
			slog.ErrorContext(ctx, "failed to fetch secret", "name", name, "error", err)
			raw = append(raw, rawSecret{name: name, err: err.Error()})
			continue
		}
		raw = append(raw, rawSecret{name: name, data: data})
	}

	s.setSnapshot(raw)

	return s.buildSecrets(raw), nil
}

func (s *Usecase) buildSecrets(raw []rawSecret) []entity.Secret {
	now := s.clock.Now().Unix()

	secrets := make([]entity.Secret, 0, len(raw))
	for _, r := range raw {
		if r.err != "" {
			secrets = append(secrets, entity.Secret{Name: r.name, Error: r.err})
			continue
		}
		secrets = append(secrets, entity.Secret{
			Name:   r.name,
			Fields: classify(r.data, now),
		})
	}

	return secrets
}
