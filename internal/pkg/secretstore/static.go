package secretstore

import (
	"context"
	"fmt"
	"maps"
)

// Static serves secrets from an in-memory snapshot supplied at construction.
//
// It backs local development and tests, and doubles as the driver for
// secrets inlined directly in the service configuration.
type Static struct {
	secrets map[string]map[string]string
}

// NewStatic copies the given name -> fields maps into a Static store.
func NewStatic(secrets map[string]map[string]string) *Static {
	copied := make(map[string]map[string]string, len(secrets))
	for name, fields := range secrets {
		copied[name] = maps.Clone(fields)
	}

	return &Static{secrets: copied}
}

// Fetch returns the field map of one secret.
func (s *Static) Fetch(_ context.Context, name string) (map[string]string, error) {
	fields, ok := s.secrets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return maps.Clone(fields), nil
}

// Close implements io.Closer; a static store holds no resources.
func (s *Static) Close() error {
	return nil
}
