package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobtrack-backend/internal/aiusage"
)

const (
	maxNotesInputChars = 12000

	maxNotesSummaryLen = 500
	maxNotesInsights   = 5
	maxNotesActions    = 5
	maxNotesFollowUps  = 3
	maxNotesItemLen    = 300
)

// NotesSummary is the structured result of note summarization. Truncated is
// set when the input notes were clipped to the prompt budget.
type NotesSummary struct {
	Summary       string   `json:"summary"`
	Insights      []string `json:"insights"`
	ActionItems   []string `json:"actionItems"`
	FollowUpNeeds []string `json:"followUpNeeds"`
	Truncated     bool     `json:"truncated"`
}

type notesSummaryPayload struct {
	Summary       *string   `json:"summary"`
	Insights      *[]string `json:"insights"`
	ActionItems   *[]string `json:"actionItems"`
	FollowUpNeeds *[]string `json:"followUpNeeds"`
}

// SummarizeApplicationNotes condenses the notes attached to an application.
// Empty input fails fast, before any rate-limit check or provider call.
func (s *Service) SummarizeApplicationNotes(ctx context.Context, notes []Note, app Application, userID string) (*NotesSummary, error) {
	if len(notes) == 0 {
		return nil, &APIError{Status: 400, Message: "No notes to summarize"}
	}

	block, truncated := renderNotes(notes)
	user := fmt.Sprintf("Application:\n%s\nNotes (oldest first):\n\n%s", app.contextBlock(), block)

	resp, err := s.createMessage(ctx, s.newRequest(summarizeNotesSystem, user), userID, aiusage.OpSummarizeNotes)
	if err != nil {
		return nil, err
	}

	raw := resp.Text()
	data, err := extractJSON(raw)
	if err != nil {
		return nil, invalidOutput("summarize_notes", raw, err)
	}

	var payload notesSummaryPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, invalidOutput("summarize_notes", raw, err)
	}
	if err := payload.validate(); err != nil {
		return nil, invalidOutput("summarize_notes", raw, err)
	}

	return &NotesSummary{
		Summary:       clampText(*payload.Summary, maxNotesSummaryLen),
		Insights:      clampTextList(*payload.Insights, maxNotesInsights, maxNotesItemLen),
		ActionItems:   clampTextList(*payload.ActionItems, maxNotesActions, maxNotesItemLen),
		FollowUpNeeds: clampTextList(*payload.FollowUpNeeds, maxNotesFollowUps, maxNotesItemLen),
		Truncated:     truncated,
	}, nil
}

func (p *notesSummaryPayload) validate() error {
	if p.Summary == nil {
		return fmt.Errorf("summary is required")
	}
	if p.Insights == nil {
		return fmt.Errorf("insights is required")
	}
	if p.ActionItems == nil {
		return fmt.Errorf("actionItems is required")
	}
	if p.FollowUpNeeds == nil {
		return fmt.Errorf("followUpNeeds is required")
	}
	return nil
}

// renderNotes joins notes oldest-first into one block, clipping to the prompt
// budget. The clip keeps whole notes; the first note that would overflow is
// dropped along with everything after it. A single note larger than the whole
// budget is clipped rather than dropped, so the block is never empty.
func renderNotes(notes []Note) (string, bool) {
	var b strings.Builder
	for _, note := range notes {
		entry := fmt.Sprintf("[%s]\n%s\n\n", note.CreatedAt.UTC().Format("2006-01-02"), strings.TrimSpace(note.Body))
		if b.Len()+len(entry) > maxNotesInputChars {
			if b.Len() == 0 {
				b.WriteString(clampText(entry, maxNotesInputChars))
			}
			return b.String(), true
		}
		b.WriteString(entry)
	}
	return b.String(), false
}
