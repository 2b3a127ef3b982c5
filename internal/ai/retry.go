package ai

import (
	"context"
	"time"

	"jobtrack-backend/internal/llm"
	"jobtrack-backend/internal/shared/telemetry"
)

// maxAttempts bounds the retry loop: one initial call plus two retries.
const maxAttempts = 3

const defaultAttemptTimeout = 60 * time.Second

// callWithRetry performs up to maxAttempts provider calls. The delay before
// attempt k+1 is 2^(k-1) seconds (1s, 2s). Each attempt runs under its own
// timeout so a hung connection cannot absorb the whole retry budget.
func (s *Service) callWithRetry(ctx context.Context, req llm.MessageRequest) (*llm.MessageResponse, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := s.sleep(ctx, backoffDelay(attempt-1)); err != nil {
				return nil, err
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, s.attemptTimeout())
		resp, err := s.provider().CreateMessage(attemptCtx, req)
		cancel()
		if err == nil {
			return resp, nil
		}

		lastErr = err
		if !isRetryable(err) {
			break
		}
		telemetry.Warn("ai.retry", map[string]any{
			"attempt": attempt,
			"model":   req.Model,
			"error":   sanitizeError(err),
		})
	}
	return nil, normalizeProviderError(lastErr)
}

// backoffDelay returns the wait after k completed attempts: 1s, 2s, 4s, ...
func backoffDelay(k int) time.Duration {
	return time.Duration(1<<(k-1)) * time.Second
}

func (s *Service) sleep(ctx context.Context, d time.Duration) error {
	if s.Sleep != nil {
		return s.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) attemptTimeout() time.Duration {
	if s.AttemptTimeout > 0 {
		return s.AttemptTimeout
	}
	return defaultAttemptTimeout
}
