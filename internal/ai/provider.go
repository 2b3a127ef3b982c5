package ai

import (
	"context"
	"os"
	"sync"

	"jobtrack-backend/internal/llm"
	"jobtrack-backend/internal/llm/anthropic"
	"jobtrack-backend/internal/shared/telemetry"
)

// The default provider client holds only static configuration, so a single
// lazily-built instance is shared process-wide. sync.Once replaces a mutable
// singleton: there is no state to protect beyond construction itself.
var (
	defaultClientOnce sync.Once
	defaultClient     llm.Client
)

func (s *Service) provider() llm.Client {
	if s.Provider != nil {
		return s.Provider
	}
	defaultClientOnce.Do(func() {
		client, err := anthropic.NewClient(os.Getenv("ANTHROPIC_API_KEY"), os.Getenv("ANTHROPIC_BASE_URL"))
		if err != nil {
			telemetry.Error("ai.provider_init_failed", map[string]any{"error": err.Error()})
			defaultClient = unavailableClient{err: err}
			return
		}
		defaultClient = client
	})
	return defaultClient
}

type unavailableClient struct{ err error }

func (u unavailableClient) CreateMessage(_ context.Context, _ llm.MessageRequest) (*llm.MessageResponse, error) {
	return nil, u.err
}
