package usecase

import (
	"context"
	"log/slog"
	"time"
)

const defaultRefreshInterval = 30 * time.Second

// RunRefresher keeps the snapshot warm by refetching all monitored secrets
// on a fixed interval. The stream ticker reads from this snapshot so code
// arithmetic never waits on the store.
func (s *Usecase) RunRefresher(ctx context.Context) error {
	interval := s.cfg.GetSecond("panel.refresh_interval")
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	s.refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *Usecase) refresh(ctx context.Context) {
	raw := make([]rawSecret, 0, len(s.names))
	for _, name := range s.names {
		data, err := s.fetchSecret(ctx, name)
		if err != nil {
			slog.WarnContext(ctx, "snapshot refresh failed for secret", "name", name, "error", err)
			raw = append(raw, rawSecret{name: name, err: err.Error()})
			continue
		}
		raw = append(raw, rawSecret{name: name, data: data})
	}

	s.setSnapshot(raw)
}
