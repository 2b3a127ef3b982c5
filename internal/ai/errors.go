package ai

import (
	"context"
	"errors"
	"fmt"
	"net"

	"jobtrack-backend/internal/llm/anthropic"
)

// APIError is a structural, validation, auth, or generic provider failure.
// By the time one reaches a caller, retry has been exhausted or judged
// inapplicable. Status is 0 when no HTTP status applies.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ai api error (status %d): %s", e.Status, e.Message)
	}
	return "ai api error: " + e.Message
}

// QuotaExceededError reports upstream provider throttling. Unlike the local
// aiusage.RateLimitError it carries no known reset time.
type QuotaExceededError struct {
	Message string
}

func (e *QuotaExceededError) Error() string {
	return e.Message
}

// normalizeProviderError maps a provider failure to the error taxonomy.
// Transport errors and already-typed errors pass through unchanged.
func normalizeProviderError(err error) error {
	if err == nil {
		return nil
	}
	var statusErr *anthropic.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case 429:
			return &QuotaExceededError{Message: "AI provider is throttling requests, please try again shortly"}
		case 401:
			return &APIError{Status: 401, Message: "AI provider rejected credentials"}
		default:
			return &APIError{Status: statusErr.StatusCode, Message: statusErr.Message}
		}
	}
	return err
}

// isRetryable classifies a single-attempt failure. Retryable: transport
// failures and provider 5xx. Everything else (400, 401, 429, validation)
// returns to the caller immediately.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var statusErr *anthropic.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case 500, 502, 503, 504:
			return true
		}
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
