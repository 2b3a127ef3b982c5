package aiusage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func seedRecords(t *testing.T, store *MemoryStore, userID string, op Operation, times ...time.Time) {
	t.Helper()
	for i, ts := range times {
		err := store.Insert(context.Background(), Record{
			ID:        fmt.Sprintf("rec-%d", i),
			UserID:    userID,
			Operation: op,
			CreatedAt: ts,
			Success:   true,
		})
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
}

func TestCheckAllowsUnderLimit(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedRecords(t, store, "user-1", OpResumeParse,
		now.Add(-30*time.Minute), now.Add(-10*time.Minute))

	limiter := NewRateLimiter(store, map[string]int{"resume_parse": 10})
	limiter.Now = func() time.Time { return now }

	if err := limiter.Check(context.Background(), "user-1", OpResumeParse); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestCheckDeniesAtLimitWithOldestReset(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	oldest := now.Add(-50 * time.Minute)

	times := []time.Time{oldest}
	for i := 1; i < 10; i++ {
		times = append(times, oldest.Add(time.Duration(i)*time.Minute))
	}
	seedRecords(t, store, "user-1", OpResumeParse, times...)

	limiter := NewRateLimiter(store, map[string]int{"resume_parse": 10})
	limiter.Now = func() time.Time { return now }

	err := limiter.Check(context.Background(), "user-1", OpResumeParse)
	var rateErr *RateLimitError
	if !errors.As(err, &rateErr) {
		t.Fatalf("Check = %v, want *RateLimitError", err)
	}
	if rateErr.Limit != 10 {
		t.Fatalf("Limit = %d, want 10", rateErr.Limit)
	}
	if rateErr.Operation != OpResumeParse {
		t.Fatalf("Operation = %q, want %q", rateErr.Operation, OpResumeParse)
	}
	want := oldest.Add(Window)
	if !rateErr.ResetAt.Equal(want) {
		t.Fatalf("ResetAt = %v, want %v", rateErr.ResetAt, want)
	}
}

func TestCheckIgnoresRecordsOutsideWindow(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	var times []time.Time
	for i := 0; i < 10; i++ {
		times = append(times, now.Add(-2*time.Hour).Add(time.Duration(i)*time.Minute))
	}
	seedRecords(t, store, "user-1", OpSummarizeNotes, times...)

	limiter := NewRateLimiter(store, map[string]int{"summarize_notes": 10})
	limiter.Now = func() time.Time { return now }

	if err := limiter.Check(context.Background(), "user-1", OpSummarizeNotes); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestCheckScopesByUserAndOperation(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	var times []time.Time
	for i := 0; i < 10; i++ {
		times = append(times, now.Add(-20*time.Minute).Add(time.Duration(i)*time.Second))
	}
	seedRecords(t, store, "user-1", OpResumeParse, times...)

	limiter := NewRateLimiter(store, map[string]int{"resume_parse": 10, "summarize_notes": 10})
	limiter.Now = func() time.Time { return now }

	if err := limiter.Check(context.Background(), "user-2", OpResumeParse); err != nil {
		t.Fatalf("Check other user: %v", err)
	}
	if err := limiter.Check(context.Background(), "user-1", OpSummarizeNotes); err != nil {
		t.Fatalf("Check other operation: %v", err)
	}
	if err := limiter.Check(context.Background(), "user-1", OpResumeParse); err == nil {
		t.Fatal("Check same user and operation: want error, got nil")
	}
}

func TestCheckFailsClosedOnStoreError(t *testing.T) {
	limiter := NewRateLimiter(&failingStore{}, map[string]int{"resume_parse": 10})

	err := limiter.Check(context.Background(), "user-1", OpResumeParse)
	if err == nil {
		t.Fatal("Check: want error, got nil")
	}
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		t.Fatalf("Check = *RateLimitError, want plain store error")
	}
}

func TestCheckRejectsUnknownOperation(t *testing.T) {
	limiter := NewRateLimiter(NewMemoryStore(), map[string]int{"resume_parse": 10})
	if err := limiter.Check(context.Background(), "user-1", Operation("bogus")); err == nil {
		t.Fatal("Check: want error for unconfigured operation")
	}
}

func TestRemainingQuotaCountsDown(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedRecords(t, store, "user-1", OpJobAnalysis,
		now.Add(-5*time.Minute), now.Add(-4*time.Minute), now.Add(-3*time.Minute))

	limiter := NewRateLimiter(store, map[string]int{"job_analysis": 20})
	limiter.Now = func() time.Time { return now }

	if got := limiter.RemainingQuota(context.Background(), "user-1", OpJobAnalysis); got != 17 {
		t.Fatalf("RemainingQuota = %d, want 17", got)
	}
}

func TestRemainingQuotaFailsOpen(t *testing.T) {
	limiter := NewRateLimiter(&failingStore{}, map[string]int{"job_analysis": 20})

	if got := limiter.RemainingQuota(context.Background(), "user-1", OpJobAnalysis); got != 20 {
		t.Fatalf("RemainingQuota = %d, want full limit 20", got)
	}
}

func TestRemainingQuotaNeverNegative(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	var times []time.Time
	for i := 0; i < 12; i++ {
		times = append(times, now.Add(-10*time.Minute))
	}
	seedRecords(t, store, "user-1", OpResumeParse, times...)

	limiter := NewRateLimiter(store, map[string]int{"resume_parse": 10})
	limiter.Now = func() time.Time { return now }

	if got := limiter.RemainingQuota(context.Background(), "user-1", OpResumeParse); got != 0 {
		t.Fatalf("RemainingQuota = %d, want 0", got)
	}
}

type failingStore struct{}

func (f *failingStore) Insert(context.Context, Record) error {
	return errors.New("store down")
}

func (f *failingStore) CountSince(context.Context, string, Operation, time.Time) (int, error) {
	return 0, errors.New("store down")
}

func (f *failingStore) OldestSince(context.Context, string, Operation, time.Time) (time.Time, bool, error) {
	return time.Time{}, false, errors.New("store down")
}
