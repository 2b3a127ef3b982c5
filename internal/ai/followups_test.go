package ai

import (
	"context"
	"errors"
	"testing"
)

func followUpsJSON(suggestions string) string {
	return `{"contextSummary":"Interviewing at Acme","nextCheckDate":"2026-03-20","suggestions":[` + suggestions + `]}`
}

func TestGenerateFollowUpsSuccess(t *testing.T) {
	client := &scriptedClient{steps: []scriptStep{{text: followUpsJSON(
		`{"action":"Send a thank-you email","timing":"in 2 days","priority":"HIGH","rationale":"keeps momentum","type":"email","template":"Hi..."}`,
	)}}}
	svc, _, _ := newTestService(t, client)

	out, err := svc.GenerateFollowUpSuggestions(context.Background(), testApplication(), "user-1")
	if err != nil {
		t.Fatalf("GenerateFollowUpSuggestions: %v", err)
	}
	if out.ContextSummary != "Interviewing at Acme" {
		t.Fatalf("ContextSummary = %q", out.ContextSummary)
	}
	if len(out.Suggestions) != 1 {
		t.Fatalf("Suggestions = %d, want 1", len(out.Suggestions))
	}
	if out.Suggestions[0].Priority != "high" {
		t.Fatalf("Priority = %q, want lowercased high", out.Suggestions[0].Priority)
	}
}

func TestGenerateFollowUpsRejectsUnknownPriority(t *testing.T) {
	client := &scriptedClient{steps: []scriptStep{{text: followUpsJSON(
		`{"action":"Check the portal","timing":"tomorrow","priority":"urgent","rationale":"","type":"application_check"}`,
	)}}}
	svc, _, _ := newTestService(t, client)

	_, err := svc.GenerateFollowUpSuggestions(context.Background(), testApplication(), "user-1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 500 {
		t.Fatalf("err = %v, want *APIError with status 500", err)
	}
}

func TestGenerateFollowUpsCapsSuggestions(t *testing.T) {
	one := `{"action":"Follow up","timing":"soon","priority":"low","rationale":"","type":"email"}`
	client := &scriptedClient{steps: []scriptStep{{text: followUpsJSON(
		one + "," + one + "," + one + "," + one + "," + one + "," + one,
	)}}}
	svc, _, _ := newTestService(t, client)

	out, err := svc.GenerateFollowUpSuggestions(context.Background(), testApplication(), "user-1")
	if err != nil {
		t.Fatalf("GenerateFollowUpSuggestions: %v", err)
	}
	if len(out.Suggestions) != maxSuggestions {
		t.Fatalf("Suggestions = %d, want %d", len(out.Suggestions), maxSuggestions)
	}
}

func TestGenerateFollowUpsRequiresTopLevelFields(t *testing.T) {
	client := &scriptedClient{steps: []scriptStep{
		{text: `{"contextSummary":"x","suggestions":[]}`},
	}}
	svc, _, _ := newTestService(t, client)

	_, err := svc.GenerateFollowUpSuggestions(context.Background(), testApplication(), "user-1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 500 {
		t.Fatalf("err = %v, want *APIError with status 500", err)
	}
}

func TestNormalizeSuggestionType(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		text string
		want string
	}{
		{name: "valid passes through", raw: "call", text: "anything", want: "call"},
		{name: "linkedin keyword", raw: "", text: "Connect with the hiring manager on LinkedIn", want: "linkedin"},
		{name: "connect keyword", raw: "dm", text: "connect with the recruiter", want: "linkedin"},
		{name: "phone keyword", raw: "", text: "Phone the recruiter to ask about timeline", want: "call"},
		{name: "status keyword", raw: "", text: "Check the application status in the portal", want: "application_check"},
		{name: "email keyword", raw: "unknown", text: "Send an email to the team", want: "email"},
		{name: "default", raw: "", text: "do something nice", want: "email"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeSuggestionType(tt.raw, tt.text); got != tt.want {
				t.Fatalf("normalizeSuggestionType(%q, %q) = %q, want %q", tt.raw, tt.text, got, tt.want)
			}
		})
	}
}
