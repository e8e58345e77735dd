package session

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Propagator refreshes every cached session of a user after the user's
// owned-entity set changes, so the next request in the same logical session
// observes the change.
//
// Callers invoke it synchronously after a successful write. A propagation
// failure must not roll back the committed write; it only leaves session
// state stale until the next natural refresh, and is surfaced through logs.
type Propagator interface {
	UpdateAllSessionsOfUser(ctx context.Context, userID snowflake.ID) error
}

// Noop is used where no session backend is configured (tests, CLIs).
type Noop struct{}

func (Noop) UpdateAllSessionsOfUser(ctx context.Context, userID snowflake.ID) error {
	return nil
}
