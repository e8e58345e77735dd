package slugs

import (
	"context"
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"
)

var (
	// ErrEmptySlug means the name produced no usable slug characters.
	ErrEmptySlug = errors.New("empty_slug")
	// ErrExhausted means no unique slug was found within the attempt bound.
	ErrExhausted = errors.New("slug_generation_exhausted")
)

// maxAttempts bounds the total number of candidates tried, base slug included.
const maxAttempts = 5

const suffixLen = 4

// ExistsFunc reports whether a slug is already taken within the caller's
// uniqueness scope. The scope (global, per-parent, own-id exclusion) is
// entirely the closure's concern.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Resolve produces a slug for name that is unique within the scope described
// by exists, appending a short random suffix on collision.
//
// The existence check and the subsequent insert are not atomic; a concurrent
// writer can claim the slug in between. That race is accepted given the low
// per-scope write rate.
func Resolve(ctx context.Context, name string, exists ExistsFunc) (string, error) {
	base := Generate(name)
	if base == "" {
		return "", ErrEmptySlug
	}

	candidate := base
	for attempt := 0; attempt < maxAttempts; attempt++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + randomSuffix()
	}

	return "", ErrExhausted
}

// randomSuffix returns suffixLen lowercase base32 characters taken from the
// random tail of a ULID.
func randomSuffix() string {
	id := ulid.Make().String()
	return strings.ToLower(id[len(id)-suffixLen:])
}
