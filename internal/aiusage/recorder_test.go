package aiusage

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestRecordFillsIdentityAndClampsSamples(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	rec := &Recorder{Store: store, Now: func() time.Time { return now }}

	rec.Record(context.Background(), Record{
		UserID:       "user-1",
		Operation:    OpResumeParse,
		Success:      true,
		InputSample:  strings.Repeat("a", 900),
		OutputSample: strings.Repeat("b", 900),
	})

	records := store.Records()
	if len(records) != 1 {
		t.Fatalf("stored %d records, want 1", len(records))
	}
	got := records[0]
	if got.ID == "" {
		t.Fatal("ID not assigned")
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, now)
	}
	if len(got.InputSample) != SampleMaxLen || len(got.OutputSample) != SampleMaxLen {
		t.Fatalf("samples not clamped: in=%d out=%d", len(got.InputSample), len(got.OutputSample))
	}
}

func TestClampSamplesKeepsValidUTF8(t *testing.T) {
	// 499 ASCII bytes then a two-byte rune straddling the cap.
	r := Record{InputSample: strings.Repeat("a", SampleMaxLen-1) + "é"}
	r.ClampSamples()
	if !utf8.ValidString(r.InputSample) {
		t.Fatalf("InputSample is invalid UTF-8 after clamp: %q", r.InputSample[len(r.InputSample)-4:])
	}
	if len(r.InputSample) != SampleMaxLen-1 {
		t.Fatalf("InputSample length = %d, want %d with the partial rune dropped", len(r.InputSample), SampleMaxLen-1)
	}
}

func TestRecordSwallowsStoreFailure(t *testing.T) {
	rec := NewRecorder(&failingStore{})

	// Must not panic or surface the error.
	rec.Record(context.Background(), Record{UserID: "user-1", Operation: OpResumeParse})
}
