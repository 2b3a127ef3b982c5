package llm

import (
	"context"
	"strings"
)

// Client abstracts the message-generation provider consumed by the AI
// orchestrators. One call corresponds to one provider attempt; retry policy
// lives above this interface.
type Client interface {
	CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error)
}

// Message is a single conversational turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CacheControl is a provider-side prompt-caching hint. It is an opaque
// protocol detail; "ephemeral" is the only known type.
type CacheControl struct {
	Type string `json:"type"`
}

// SystemBlock is one block of the system prompt, optionally cache-tagged.
type SystemBlock struct {
	Type         string        `json:"type"`
	Text         string        `json:"text"`
	CacheControl *CacheControl `json:"cache_control,omitempty"`
}

// CachedSystem builds a single-block system prompt tagged for provider-side
// caching, reducing repeated token cost for static instructions.
func CachedSystem(text string) []SystemBlock {
	return []SystemBlock{{
		Type:         "text",
		Text:         text,
		CacheControl: &CacheControl{Type: "ephemeral"},
	}}
}

// MessageRequest is a provider-agnostic message-generation request.
type MessageRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature *float64      `json:"temperature,omitempty"`
	System      []SystemBlock `json:"system,omitempty"`
	Messages    []Message     `json:"messages"`
}

// LastUserText returns the content of the last user turn, for audit samples.
func (r MessageRequest) LastUserText() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == "user" {
			return r.Messages[i].Content
		}
	}
	return ""
}

// ContentBlock is one block of the model response.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Usage reports token consumption for a single response.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// MessageResponse is a provider-agnostic message-generation response.
type MessageResponse struct {
	Content []ContentBlock `json:"content"`
	Usage   Usage          `json:"usage"`
	Model   string         `json:"model"`
}

// Text concatenates the text blocks of the response.
func (r *MessageResponse) Text() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for _, block := range r.Content {
		if block.Type == "text" || block.Type == "" {
			b.WriteString(block.Text)
		}
	}
	return b.String()
}
