package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/secretdeck/secretdeck/internal/hook/entity"
	"github.com/secretdeck/secretdeck/internal/pkg/clock"
	"github.com/secretdeck/secretdeck/internal/pkg/goerror"
	"github.com/secretdeck/secretdeck/internal/pkg/instrument"
	"github.com/secretdeck/secretdeck/internal/pkg/uid"
	"github.com/secretdeck/secretdeck/internal/pkg/validator"
)

type fakeCache struct {
	events  []entity.Event
	pushErr error
	limit   int64
}

func (f *fakeCache) Push(_ context.Context, event entity.Event) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.events = append([]entity.Event{event}, f.events...)
	return nil
}

func (f *fakeCache) Recent(_ context.Context, limit int64) ([]entity.Event, error) {
	f.limit = limit
	if limit > int64(len(f.events)) {
		limit = int64(len(f.events))
	}
	return f.events[:limit], nil
}

func newTestUsecase(t *testing.T, cache *fakeCache) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	return NewHook(Dependency{
		RepoCache:  cache,
		UUID:       uid.NewUUID(),
		Clock:      clock.Fixed{At: time.Unix(1700000000, 0)},
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})
}

func TestReceiveStoresEnvelope(t *testing.T) {
	cache := &fakeCache{}
	uc := newTestUsecase(t, cache)

	event, err := uc.Receive(context.Background(), ReceiveInput{
		Name:   "deploy-finished",
		Fields: map[string]string{"env": "prod"},
	})
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}

	if event.ID == "" {
		t.Error("event should be assigned an id")
	}
	if !event.ReceivedAt.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("received_at = %v", event.ReceivedAt)
	}
	if len(cache.events) != 1 || cache.events[0].Name != "deploy-finished" {
		t.Fatalf("cache = %+v", cache.events)
	}
	if cache.events[0].Fields["env"] != "prod" {
		t.Errorf("fields not stored verbatim: %+v", cache.events[0].Fields)
	}
}

func TestReceiveRequiresName(t *testing.T) {
	uc := newTestUsecase(t, &fakeCache{})

	_, err := uc.Receive(context.Background(), ReceiveInput{Fields: map[string]string{"k": "v"}})
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Type() != goerror.TypeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReceivePushFailure(t *testing.T) {
	uc := newTestUsecase(t, &fakeCache{pushErr: errors.New("redis down")})

	_, err := uc.Receive(context.Background(), ReceiveInput{Name: "x"})
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Type() != goerror.TypeServer {
		t.Fatalf("expected server error, got %v", err)
	}
}

func TestListEventsDefaultLimit(t *testing.T) {
	cache := &fakeCache{}
	uc := newTestUsecase(t, cache)

	if _, err := uc.ListEvents(context.Background(), ListEventsInput{}); err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if cache.limit != 20 {
		t.Errorf("default limit = %d, want 20", cache.limit)
	}
}

func TestListEventsLimitBounds(t *testing.T) {
	uc := newTestUsecase(t, &fakeCache{})

	for _, limit := range []int64{-1, 101} {
		_, err := uc.ListEvents(context.Background(), ListEventsInput{Limit: limit})
		var gerr *goerror.Error
		if !errors.As(err, &gerr) || gerr.Type() != goerror.TypeValidation {
			t.Errorf("limit %d: expected validation error, got %v", limit, err)
		}
	}
}

func TestListEventsNewestFirst(t *testing.T) {
	cache := &fakeCache{}
	uc := newTestUsecase(t, cache)

	for _, name := range []string{"first", "second"} {
		if _, err := uc.Receive(context.Background(), ReceiveInput{Name: name}); err != nil {
			t.Fatalf("Receive %s: %v", name, err)
		}
	}

	events, err := uc.ListEvents(context.Background(), ListEventsInput{Limit: 10})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 || events[0].Name != "second" || events[1].Name != "first" {
		t.Fatalf("unexpected order: %+v", events)
	}
}
