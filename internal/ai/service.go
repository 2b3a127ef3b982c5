package ai

import (
	"context"
	"strings"
	"time"

	"jobtrack-backend/internal/aiusage"
	"jobtrack-backend/internal/llm"
	"jobtrack-backend/internal/shared/config"
)

// Service orchestrates the AI features: every provider call goes through the
// rate limiter first, then the bounded retry loop, and is audited exactly once
// regardless of outcome.
type Service struct {
	Provider llm.Client // nil means the process-wide default client
	Recorder *aiusage.Recorder
	Limiter  *aiusage.RateLimiter

	Model          string
	MaxTokens      int
	AttemptTimeout time.Duration

	// Sleep overrides the inter-retry wait; tests use it to skip real delays.
	Sleep func(ctx context.Context, d time.Duration) error
	Now   func() time.Time
}

// NewService wires a Service from configuration and an audit store.
func NewService(cfg config.Config, store aiusage.Store) *Service {
	return &Service{
		Recorder:       aiusage.NewRecorder(store),
		Limiter:        aiusage.NewRateLimiter(store, cfg.OperationLimits),
		Model:          cfg.Model,
		MaxTokens:      cfg.MaxTokens,
		AttemptTimeout: cfg.AttemptTimeout,
	}
}

// createMessage is the single choke point for provider calls. Exactly one
// usage record is written per invocation, after the retry sequence completes.
func (s *Service) createMessage(ctx context.Context, req llm.MessageRequest, userID string, op aiusage.Operation) (*llm.MessageResponse, error) {
	start := s.now()

	if err := s.Limiter.Check(ctx, userID, op); err != nil {
		s.recordFailure(ctx, userID, op, req, err, start)
		return nil, err
	}

	resp, err := s.callWithRetry(ctx, req)
	if err != nil {
		s.recordFailure(ctx, userID, op, req, err, start)
		return nil, err
	}

	tokens := resp.Usage.InputTokens + resp.Usage.OutputTokens
	s.Recorder.Record(ctx, aiusage.Record{
		UserID:        userID,
		Operation:     op,
		Success:       true,
		TokensUsed:    tokens,
		EstimatedCost: estimateCost(resp.Model, resp.Usage.InputTokens, resp.Usage.OutputTokens),
		ModelVersion:  resp.Model,
		LatencyMS:     s.now().Sub(start).Milliseconds(),
		InputSample:   req.LastUserText(),
		OutputSample:  resp.Text(),
	})
	return resp, nil
}

func (s *Service) recordFailure(ctx context.Context, userID string, op aiusage.Operation, req llm.MessageRequest, cause error, start time.Time) {
	s.Recorder.Record(ctx, aiusage.Record{
		UserID:       userID,
		Operation:    op,
		Success:      false,
		ModelVersion: req.Model,
		LatencyMS:    s.now().Sub(start).Milliseconds(),
		ErrorMessage: sanitizeError(cause),
		InputSample:  req.LastUserText(),
	})
}

// newRequest builds a request with the service defaults and a cache-tagged
// system prompt.
func (s *Service) newRequest(system, user string) llm.MessageRequest {
	temp := 0.0
	return llm.MessageRequest{
		Model:       s.Model,
		MaxTokens:   s.maxTokens(),
		Temperature: &temp,
		System:      llm.CachedSystem(system),
		Messages:    []llm.Message{{Role: "user", Content: user}},
	}
}

func (s *Service) maxTokens() int {
	if s.MaxTokens > 0 {
		return s.MaxTokens
	}
	return 4096
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// sanitizeError flattens an error message to one audit-safe line.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	msg = strings.ReplaceAll(msg, "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	return strings.TrimSpace(msg)
}
