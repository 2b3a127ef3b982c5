package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobtrack-backend/internal/aiusage"
)

const (
	maxSuggestions       = 4
	maxContextSummaryLen = 500
	maxActionLen         = 200
	maxTimingLen         = 100
	maxRationaleLen      = 300
	maxTemplateLen       = 1000
)

// Suggestion priorities and channel types are closed enums. An out-of-enum
// priority is a validation failure; a missing or unknown type is inferred
// from the suggestion text instead.
var (
	validPriorities = map[string]bool{"high": true, "medium": true, "low": true}
	validTypes      = map[string]bool{"email": true, "call": true, "linkedin": true, "application_check": true}
)

// FollowUpSuggestion is one recommended outreach step.
type FollowUpSuggestion struct {
	Action    string `json:"action"`
	Timing    string `json:"timing"`
	Priority  string `json:"priority"`
	Rationale string `json:"rationale"`
	Template  string `json:"template,omitempty"`
	Type      string `json:"type"`
}

// FollowUpSuggestions is the structured result of follow-up planning.
type FollowUpSuggestions struct {
	ContextSummary string               `json:"contextSummary"`
	NextCheckDate  string               `json:"nextCheckDate"`
	Suggestions    []FollowUpSuggestion `json:"suggestions"`
}

type followUpsPayload struct {
	ContextSummary *string               `json:"contextSummary"`
	NextCheckDate  *string               `json:"nextCheckDate"`
	Suggestions    *[]FollowUpSuggestion `json:"suggestions"`
}

// GenerateFollowUpSuggestions drafts follow-up actions for an application.
func (s *Service) GenerateFollowUpSuggestions(ctx context.Context, app Application, userID string) (*FollowUpSuggestions, error) {
	user := "Application:\n" + app.contextBlock()

	resp, err := s.createMessage(ctx, s.newRequest(followupsSystem, user), userID, aiusage.OpGenerateFollowups)
	if err != nil {
		return nil, err
	}

	raw := resp.Text()
	data, err := extractJSON(raw)
	if err != nil {
		return nil, invalidOutput("generate_followups", raw, err)
	}

	var payload followUpsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, invalidOutput("generate_followups", raw, err)
	}
	if err := payload.validate(); err != nil {
		return nil, invalidOutput("generate_followups", raw, err)
	}

	return payload.normalize(), nil
}

func (p *followUpsPayload) validate() error {
	if p.ContextSummary == nil {
		return fmt.Errorf("contextSummary is required")
	}
	if p.NextCheckDate == nil {
		return fmt.Errorf("nextCheckDate is required")
	}
	if p.Suggestions == nil {
		return fmt.Errorf("suggestions is required")
	}
	for i, sug := range *p.Suggestions {
		if strings.TrimSpace(sug.Action) == "" {
			return fmt.Errorf("suggestions[%d].action is required", i)
		}
		if !validPriorities[strings.ToLower(strings.TrimSpace(sug.Priority))] {
			return fmt.Errorf("suggestions[%d].priority %q is not one of high, medium, low", i, sug.Priority)
		}
	}
	return nil
}

func (p *followUpsPayload) normalize() *FollowUpSuggestions {
	out := &FollowUpSuggestions{
		ContextSummary: clampText(*p.ContextSummary, maxContextSummaryLen),
		NextCheckDate:  clampText(*p.NextCheckDate, 50),
		Suggestions:    clampList(*p.Suggestions, maxSuggestions),
	}
	for i := range out.Suggestions {
		sug := &out.Suggestions[i]
		sug.Action = clampText(sug.Action, maxActionLen)
		sug.Timing = clampText(sug.Timing, maxTimingLen)
		sug.Priority = strings.ToLower(strings.TrimSpace(sug.Priority))
		sug.Rationale = clampText(sug.Rationale, maxRationaleLen)
		sug.Template = clampText(sug.Template, maxTemplateLen)
		sug.Type = normalizeSuggestionType(sug.Type, sug.Action+" "+sug.Rationale)
	}
	return out
}

// normalizeSuggestionType keeps a valid type as-is and infers a missing or
// unknown one by keyword matching over the adjacent free text. Email is the
// safe default.
func normalizeSuggestionType(raw, text string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	if validTypes[t] {
		return t
	}
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "linkedin") || strings.Contains(lower, "connect"):
		return "linkedin"
	case strings.Contains(lower, "call") || strings.Contains(lower, "phone"):
		return "call"
	case strings.Contains(lower, "status") || strings.Contains(lower, "portal") || strings.Contains(lower, "application"):
		return "application_check"
	case strings.Contains(lower, "email") || strings.Contains(lower, "message") || strings.Contains(lower, "write"):
		return "email"
	default:
		return "email"
	}
}
