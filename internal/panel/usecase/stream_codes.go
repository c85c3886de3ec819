package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/secretdeck/secretdeck/internal/panel/entity"
)

// StreamEvent is one SSE frame: the full classified view of every monitored
// secret, evaluated at At.
type StreamEvent struct {
	At      int64        `json:"at"`
	Secrets []SecretView `json:"secrets"`
}

type SecretView struct {
	Name   string      `json:"name"`
	Fields []FieldView `json:"fields,omitempty"`
	Error  string      `json:"error,omitempty"`
}

type FieldView struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Value      string `json:"value,omitempty"`
	Issuer     string `json:"issuer,omitempty"`
	Label      string `json:"label,omitempty"`
	Code       string `json:"code,omitempty"`
	ValidUntil int64  `json:"valid_until,omitempty"`
	Remaining  int64  `json:"remaining,omitempty"`
	Error      string `json:"error,omitempty"`
}

type subscriber struct {
	ch     chan StreamEvent
	closed atomic.Bool
}

// StreamCodes registers a code stream and closes it when ctx is done.
func (s *Usecase) StreamCodes(ctx context.Context) <-chan StreamEvent {
	sub := &subscriber{ch: make(chan StreamEvent, 4)}

	s.streamMu.Lock()
	s.streams[sub] = struct{}{}
	s.streamMu.Unlock()

	go func() {
		<-ctx.Done()
		s.streamMu.Lock()
		delete(s.streams, sub)
		s.streamMu.Unlock()
		sub.closed.Store(true)
		close(sub.ch)
	}()

	return sub.ch
}

// RunTicker recomputes codes from the snapshot once per second and publishes
// them to all subscribers. It only does work while someone is listening.
func (s *Usecase) RunTicker(ctx context.Context) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.streamMu.RLock()
			listeners := len(s.streams)
			s.streamMu.RUnlock()
			if listeners == 0 {
				continue
			}

			s.publish(s.buildStreamEvent())
		}
	}
}

func (s *Usecase) publish(evt StreamEvent) {
	s.streamMu.RLock()
	defer s.streamMu.RUnlock()

	for sub := range s.streams {
		if sub.closed.Load() {
			continue
		}

		// Slow consumers drop frames instead of blocking the ticker.
		select {
		case sub.ch <- evt:
		default:
		}
	}
}

func (s *Usecase) buildStreamEvent() StreamEvent {
	now := s.clock.Now().Unix()
	secrets := s.buildSecrets(s.getSnapshot())

	views := make([]SecretView, 0, len(secrets))
	for _, sec := range secrets {
		views = append(views, toSecretView(sec))
	}

	return StreamEvent{At: now, Secrets: views}
}

func toSecretView(sec entity.Secret) SecretView {
	view := SecretView{Name: sec.Name, Error: sec.Error}
	for _, f := range sec.Fields {
		view.Fields = append(view.Fields, FieldView{
			Name:       f.Name,
			Kind:       string(f.Kind),
			Value:      f.Value,
			Issuer:     f.Issuer,
			Label:      f.Label,
			Code:       f.Code,
			ValidUntil: f.ValidUntil,
			Remaining:  f.Remaining,
			Error:      f.Error,
		})
	}
	return view
}
