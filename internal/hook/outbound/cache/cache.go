// Package cache stores received webhook envelopes in a bounded redis list.
// It is a display cache, not durable storage.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/secretdeck/secretdeck/internal/hook/entity"
	"github.com/secretdeck/secretdeck/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultMaxEvents = 100
	defaultTTL       = 24 * time.Hour
)

type Cache struct {
	client    *redis.Client
	ins       instrument.Instrumentation
	key       string
	maxEvents int64
	ttl       time.Duration
}

type Options struct {
	// Key is the redis list key. Defaults to "hook:events".
	Key string
	// MaxEvents bounds the list length. Defaults to 100.
	MaxEvents int64
	// TTL refreshes on every push. Defaults to 24h.
	TTL time.Duration
}

func NewCache(client *redis.Client, ins instrument.Instrumentation, opts Options) *Cache {
	if opts.Key == "" {
		opts.Key = "hook:events"
	}
	if opts.MaxEvents <= 0 {
		opts.MaxEvents = defaultMaxEvents
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}

	return &Cache{
		client:    client,
		ins:       ins,
		key:       opts.Key,
		maxEvents: opts.MaxEvents,
		ttl:       opts.TTL,
	}
}

type storedEvent struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Fields     map[string]string `json:"fields,omitempty"`
	ReceivedAt time.Time         `json:"received_at"`
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("hook.outbound.cache").Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Push prepends the event and trims the list to its bound.
func (c *Cache) Push(ctx context.Context, event entity.Event) (err error) {
	ctx, span := c.startSpan(ctx, "Push")
	defer func() { endSpan(span, err) }()

	payload, err := json.Marshal(storedEvent{
		ID:         event.ID,
		Name:       event.Name,
		Fields:     event.Fields,
		ReceivedAt: event.ReceivedAt,
	})
	if err != nil {
		return err
	}

	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, c.key, payload)
	pipe.LTrim(ctx, c.key, 0, c.maxEvents-1)
	pipe.Expire(ctx, c.key, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Recent returns up to limit events, newest first.
func (c *Cache) Recent(ctx context.Context, limit int64) (_ []entity.Event, err error) {
	ctx, span := c.startSpan(ctx, "Recent")
	defer func() { endSpan(span, err) }()

	if limit <= 0 || limit > c.maxEvents {
		limit = c.maxEvents
	}

	rows, err := c.client.LRange(ctx, c.key, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]entity.Event, 0, len(rows))
	for _, row := range rows {
		var se storedEvent
		if err := json.Unmarshal([]byte(row), &se); err != nil {
			// skip corrupted entries rather than failing the listing
			continue
		}
		events = append(events, entity.Event{
			ID:         se.ID,
			Name:       se.Name,
			Fields:     se.Fields,
			ReceivedAt: se.ReceivedAt,
		})
	}

	return events, nil
}
