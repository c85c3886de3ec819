package secretstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound indicates the named secret does not exist in the store.
var ErrNotFound = errors.New("secretstore: secret not found")

// Store supplies raw key/value maps for named secrets.
//
// Implementations are read-only views over whatever system actually holds
// the material; the service never mutates secrets.
type Store interface {
	io.Closer

	// Fetch returns the field map of one secret. A missing secret yields
	// ErrNotFound; the returned map is a copy the caller may keep.
	Fetch(ctx context.Context, name string) (map[string]string, error)
}
