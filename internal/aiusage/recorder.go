package aiusage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"jobtrack-backend/internal/shared/telemetry"
)

// Recorder appends audit records. Writes are fire-and-forget: a failed insert
// must never fail the operation being audited, so errors are logged and
// swallowed. The insert itself is synchronous to keep read-after-write
// visibility for the rate limiter.
type Recorder struct {
	Store Store
	Now   func() time.Time
}

// NewRecorder constructs a Recorder over the given store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{Store: store, Now: time.Now}
}

// Record fills in the record identity fields, clamps text samples, and appends
// the record to the store.
func (r *Recorder) Record(ctx context.Context, rec Record) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now().UTC()
	}
	rec.ClampSamples()

	if err := r.Store.Insert(ctx, rec); err != nil {
		telemetry.Error("aiusage.record_failed", map[string]any{
			"user_id":   rec.UserID,
			"operation": rec.Operation,
			"success":   rec.Success,
			"error":     err.Error(),
		})
	}
}

func (r *Recorder) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
