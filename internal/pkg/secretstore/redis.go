package secretstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis serves secrets from redis hashes keyed <prefix><name>.
type Redis struct {
	client    *redis.Client
	keyPrefix string
}

// ErrMissingClient indicates the redis driver was selected without a connection.
var ErrMissingClient = errors.New("secretstore: redis client not configured")

// NewRedis wraps a shared redis client as a secret store.
func NewRedis(opts RedisOptions) (*Redis, error) {
	if opts.Client == nil {
		return nil, ErrMissingClient
	}

	return &Redis{client: opts.Client, keyPrefix: opts.KeyPrefix}, nil
}

// Fetch returns all fields of the hash backing the named secret.
func (r *Redis) Fetch(ctx context.Context, name string) (map[string]string, error) {
	fields, err := r.client.HGetAll(ctx, r.keyPrefix+name).Result()
	if err != nil {
		return nil, fmt.Errorf("secretstore: fetch %s: %w", name, err)
	}
	if len(fields) == 0 {
		// HGetAll cannot distinguish a missing key from an empty hash.
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return fields, nil
}

// Close is a no-op: the client is shared and closed by the application.
func (r *Redis) Close() error {
	return nil
}
