package storage

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidContentType = errors.New("invalid_content_type")
	ErrObjectTooLarge     = errors.New("object_too_large")
	ErrUnavailable        = errors.New("storage_unavailable")
)

// DefaultURLExpiry is how long a derived display URL stays valid.
const DefaultURLExpiry = 900 * time.Second

type URLOptions struct {
	ExpiresIn   time.Duration
	ContentType string
}

// Gateway stores uploaded assets under opaque keys and derives time-limited
// display URLs from them. Only the key is ever persisted; a URL must be
// re-derived on every read because it expires.
type Gateway interface {
	// Store writes the object and returns its opaque key.
	Store(ctx context.Context, data []byte, contentType string) (string, error)

	// URLFor returns a temporary URL for the key. An empty URL with a nil
	// error means "unavailable for display"; callers degrade to a
	// placeholder instead of failing the read.
	URLFor(ctx context.Context, key string, opts URLOptions) (string, error)
}
