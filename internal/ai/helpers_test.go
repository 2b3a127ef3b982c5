package ai

import (
	"context"
	"testing"
	"time"

	"jobtrack-backend/internal/aiusage"
	"jobtrack-backend/internal/llm"
)

// scriptedClient plays back a fixed sequence of provider outcomes. The last
// step repeats if called again.
type scriptedClient struct {
	steps []scriptStep
	calls int
}

type scriptStep struct {
	text string
	err  error
}

func (c *scriptedClient) CreateMessage(_ context.Context, req llm.MessageRequest) (*llm.MessageResponse, error) {
	i := c.calls
	if i >= len(c.steps) {
		i = len(c.steps) - 1
	}
	c.calls++
	step := c.steps[i]
	if step.err != nil {
		return nil, step.err
	}
	return &llm.MessageResponse{
		Content: []llm.ContentBlock{{Type: "text", Text: step.text}},
		Usage:   llm.Usage{InputTokens: 100, OutputTokens: 50},
		Model:   req.Model,
	}, nil
}

// newTestService wires a Service onto a memory store with generous limits and
// no real sleeping. The recorded sleep durations are returned for inspection.
func newTestService(t *testing.T, client llm.Client) (*Service, *aiusage.MemoryStore, *[]time.Duration) {
	t.Helper()
	store := aiusage.NewMemoryStore()
	limits := map[string]int{
		"resume_parse":       10,
		"summarize_notes":    15,
		"job_analysis":       20,
		"generate_followups": 10,
	}
	var slept []time.Duration
	svc := &Service{
		Provider: client,
		Recorder: aiusage.NewRecorder(store),
		Limiter:  aiusage.NewRateLimiter(store, limits),
		Model:    "claude-3-5-sonnet-20241022",
		Sleep: func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		},
	}
	return svc, store, &slept
}

func fillQuota(t *testing.T, store *aiusage.MemoryStore, userID string, op aiusage.Operation, n int) {
	t.Helper()
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		err := store.Insert(context.Background(), aiusage.Record{
			ID:        "seed",
			UserID:    userID,
			Operation: op,
			CreatedAt: now.Add(-time.Duration(i+1) * time.Minute),
			Success:   true,
		})
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
}
