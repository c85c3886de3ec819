package config

import (
	"io"
	"time"
)

// Config defines the typed accessors the service uses for runtime
// configuration. Implementations handle retrieval and type conversion,
// returning zero values when a key is absent or malformed.
type Config interface {
	io.Closer

	// GetBool retrieves the configuration value for key as a bool.
	GetBool(key string) bool

	// GetString retrieves the configuration value for key as a string.
	GetString(key string) string

	// GetInt retrieves the configuration value for key as an int.
	GetInt(key string) int

	// GetInt64 retrieves the configuration value for key as an int64.
	GetInt64(key string) int64

	// GetFloat64 retrieves the configuration value for key as a float64.
	GetFloat64(key string) float64

	// GetSecond retrieves the configuration value for key as whole seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the configuration value for key as whole minutes.
	GetMinute(key string) time.Duration

	// GetArray retrieves the configuration value for key as a string slice.
	// The value is stored with format <element1>,<element2>,...
	GetArray(key string) []string

	// GetMap retrieves the configuration value for key as a string map.
	// The value is a nested mapping in the configuration document.
	GetMap(key string) map[string]string
}
