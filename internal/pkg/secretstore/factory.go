package secretstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	// DriverStatic serves secrets inlined in the service configuration.
	DriverStatic = "static"
	// DriverFile serves secrets from a watched YAML file.
	DriverFile = "file"
	// DriverRedis serves secrets from redis hashes.
	DriverRedis = "redis"
)

// ErrUnknownDriver indicates an unsupported secret store driver.
var ErrUnknownDriver = errors.New("secretstore: unknown driver")

// FactoryOptions groups configuration for secret store drivers.
type FactoryOptions struct {
	// Static holds the inline name -> fields maps.
	Static map[string]map[string]string
	// File configures the YAML file backend.
	File FileOptions
	// Redis configures the redis backend.
	Redis RedisOptions
}

// RedisOptions configures the redis driver.
type RedisOptions struct {
	// Client is the shared redis connection.
	Client *redis.Client
	// KeyPrefix is prepended to secret names to form hash keys.
	KeyPrefix string
}

// NewFromDriver constructs a Store implementation by driver name.
func NewFromDriver(driver string, opts FactoryOptions) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverStatic:
		return NewStatic(opts.Static), nil
	case DriverFile:
		return NewFile(opts.File)
	case DriverRedis:
		return NewRedis(opts.Redis)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
