package config

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper
}

// NewViper loads configuration from the given file and returns a
// Viper-backed Config that reloads itself when the file changes. The format
// is inferred from the filename extension.
func NewViper(pathFile string) (*Viper, error) {
	v := viper.New()
	v.SetConfigFile(pathFile)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", pathFile, "err", err)
			return
		}
		slog.Info("config reloaded", "path", pathFile)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory; configType should be a
// format supported by Viper (e.g. "yaml", "json", "toml"). Used by tests.
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config type is required")
	}

	v := viper.New()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

// GetBool returns the value for key as a bool.
func (vc *Viper) GetBool(key string) bool { return vc.v.GetBool(key) }

// GetString returns the value for key as a string.
func (vc *Viper) GetString(key string) string { return vc.v.GetString(key) }

// GetInt returns the value for key as an int.
func (vc *Viper) GetInt(key string) int { return vc.v.GetInt(key) }

// GetInt64 returns the value for key as an int64.
func (vc *Viper) GetInt64(key string) int64 { return vc.v.GetInt64(key) }

// GetFloat64 returns the value for key as a float64.
func (vc *Viper) GetFloat64(key string) float64 { return vc.v.GetFloat64(key) }

// GetSecond interprets the value for key as a count of seconds.
func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

// GetMinute interprets the value for key as a count of minutes.
func (vc *Viper) GetMinute(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Minute
}

// GetArray returns the comma-separated value for key as a slice, with empty
// elements dropped.
func (vc *Viper) GetArray(key string) []string {
	raw := strings.TrimSpace(vc.v.GetString(key))
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetMap returns the nested mapping under key as a string map.
func (vc *Viper) GetMap(key string) map[string]string {
	return vc.v.GetStringMapString(key)
}

// Close implements io.Closer for interface compatibility.
func (vc *Viper) Close() error {
	return nil
}
