package aiusage

import (
	"context"
	"fmt"
	"time"

	"jobtrack-backend/internal/shared/telemetry"
)

// Window is the sliding accounting window for rate limiting, anchored to
// "now minus one hour" and recomputed on every check.
const Window = time.Hour

// RateLimiter enforces per-(user, operation) hourly quotas against the audit
// store. Under concurrent bursts it is an abuse deterrent, not an atomic hard
// cap; small overshoot under race is acceptable.
type RateLimiter struct {
	Store  Store
	Limits map[Operation]int
	Now    func() time.Time
}

// NewRateLimiter constructs a limiter with the given per-operation limits.
// Limits keyed by operation name (as produced by config) are accepted too.
func NewRateLimiter(store Store, limits map[string]int) *RateLimiter {
	typed := make(map[Operation]int, len(limits))
	for op, limit := range limits {
		typed[Operation(op)] = limit
	}
	return &RateLimiter{Store: store, Limits: typed, Now: time.Now}
}

// Limit returns the configured hourly limit for op (0 when unknown).
func (l *RateLimiter) Limit(op Operation) int {
	return l.Limits[op]
}

// Check returns a *RateLimitError when the user has exhausted the hourly quota
// for op. A store error fails closed: Check gates a billable call and must
// never let an ungated call through because bookkeeping is unavailable.
func (l *RateLimiter) Check(ctx context.Context, userID string, op Operation) error {
	limit, ok := l.Limits[op]
	if !ok || limit <= 0 {
		return fmt.Errorf("no rate limit configured for operation %q", op)
	}

	now := l.now()
	since := now.Add(-Window)

	count, err := l.Store.CountSince(ctx, userID, op, since)
	if err != nil {
		return fmt.Errorf("rate limit check for %s: %w", op, err)
	}
	if count < limit {
		return nil
	}

	// The quota frees up when the oldest counted record ages out of the
	// window, not an hour from now.
	resetAt := now.Add(Window)
	oldest, found, err := l.Store.OldestSince(ctx, userID, op, since)
	if err == nil && found {
		resetAt = oldest.Add(Window)
	} else if err != nil {
		telemetry.Warn("aiusage.reset_time_lookup_failed", map[string]any{
			"user_id":   userID,
			"operation": op,
			"error":     err.Error(),
		})
	}

	return &RateLimitError{Operation: op, Limit: limit, ResetAt: resetAt}
}

// RemainingQuota returns how many calls the user has left in the current
// window. A store error fails open (full limit): this path only feeds
// dashboards and must not block usage on bookkeeping unavailability.
func (l *RateLimiter) RemainingQuota(ctx context.Context, userID string, op Operation) int {
	limit := l.Limits[op]
	if limit <= 0 {
		return 0
	}

	count, err := l.Store.CountSince(ctx, userID, op, l.now().Add(-Window))
	if err != nil {
		telemetry.Warn("aiusage.remaining_quota_failed", map[string]any{
			"user_id":   userID,
			"operation": op,
			"error":     err.Error(),
		})
		return limit
	}
	if count >= limit {
		return 0
	}
	return limit - count
}

func (l *RateLimiter) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}
