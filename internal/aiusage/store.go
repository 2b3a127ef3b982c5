package aiusage

import (
	"context"
	"time"
)

// Store is the append-only audit store behind usage logging and rate limiting.
// Rate-limit correctness assumes read-after-write consistency and monotonic
// timestamps from the backing store.
type Store interface {
	Insert(ctx context.Context, rec Record) error
	// CountSince returns the number of records for (userID, op) with
	// CreatedAt >= since.
	CountSince(ctx context.Context, userID string, op Operation, since time.Time) (int, error)
	// OldestSince returns the CreatedAt of the oldest record for (userID, op)
	// with CreatedAt >= since. ok is false when no such record exists.
	OldestSince(ctx context.Context, userID string, op Operation, since time.Time) (oldest time.Time, ok bool, err error)
}
