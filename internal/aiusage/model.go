package aiusage

import (
	"time"
	"unicode/utf8"
)

// Operation identifies one of the fixed AI action categories. Each operation
// carries its own hourly quota.
type Operation string

const (
	OpResumeParse       Operation = "resume_parse"
	OpSummarizeNotes    Operation = "summarize_notes"
	OpJobAnalysis       Operation = "job_analysis"
	OpGenerateFollowups Operation = "generate_followups"
)

// Operations lists every known operation in a stable order.
var Operations = []Operation{OpResumeParse, OpSummarizeNotes, OpJobAnalysis, OpGenerateFollowups}

// Valid reports whether op is one of the known operations.
func (op Operation) Valid() bool {
	switch op {
	case OpResumeParse, OpSummarizeNotes, OpJobAnalysis, OpGenerateFollowups:
		return true
	}
	return false
}

// SampleMaxLen caps the input/output text samples stored on a Record.
const SampleMaxLen = 500

// Record is one append-only audit row: a single logical AI operation,
// written once after the retry sequence completes (success or exhaustion).
// Records are never updated or deleted.
type Record struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	Operation     Operation      `json:"operation"`
	CreatedAt     time.Time      `json:"createdAt"`
	Success       bool           `json:"success"`
	TokensUsed    int            `json:"tokensUsed"`
	EstimatedCost float64        `json:"estimatedCost"`
	ModelVersion  string         `json:"modelVersion"`
	LatencyMS     int64          `json:"latencyMs"`
	ErrorMessage  string         `json:"errorMessage,omitempty"`
	InputSample   string         `json:"inputSample,omitempty"`
	OutputSample  string         `json:"outputSample,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// ClampSamples truncates the free-text samples to SampleMaxLen.
func (r *Record) ClampSamples() {
	r.InputSample = truncate(r.InputSample, SampleMaxLen)
	r.OutputSample = truncate(r.OutputSample, SampleMaxLen)
	r.ErrorMessage = truncate(r.ErrorMessage, SampleMaxLen)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Back up to a rune boundary so the stored sample stays valid UTF-8.
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
