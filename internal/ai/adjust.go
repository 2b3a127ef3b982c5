package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"jobtrack-backend/internal/aiusage"
	"jobtrack-backend/internal/match"
	"jobtrack-backend/internal/shared/telemetry"
)

const (
	maxAnalysisListItems = 5
	maxAnalysisSkills    = 20
	maxReasoningLen      = 1000
)

type scoreAdjustPayload struct {
	Adjustment      *float64 `json:"adjustment"`
	MatchingSkills  []string `json:"matchingSkills"`
	MissingSkills   []string `json:"missingSkills"`
	Strengths       []string `json:"strengths"`
	Concerns        []string `json:"concerns"`
	Recommendations []string `json:"recommendations"`
	Reasoning       *string  `json:"reasoning"`
}

// AdjustScore refines a rule-based breakdown with a model adjustment. It
// never fails: any error along the way, rate limit included, degrades to the
// unmodified base score with a stock narrative.
func (s *Service) AdjustScore(ctx context.Context, breakdown match.ScoreBreakdown, job match.JobDetails, profile match.UserProfile, userID string) match.Analysis {
	user := adjustPromptInput(breakdown, job, profile)

	resp, err := s.createMessage(ctx, s.newRequest(scoreAdjustSystem, user), userID, aiusage.OpJobAnalysis)
	if err != nil {
		return fallbackAnalysis(breakdown, err)
	}

	raw := resp.Text()
	data, err := extractJSON(raw)
	if err != nil {
		return fallbackAnalysis(breakdown, err)
	}

	var payload scoreAdjustPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fallbackAnalysis(breakdown, err)
	}
	if payload.Adjustment == nil || payload.Reasoning == nil {
		return fallbackAnalysis(breakdown, fmt.Errorf("adjustment and reasoning are required"))
	}

	adjustment := match.ClampAdjustment(int(math.Round(*payload.Adjustment)))
	analysis := match.Analysis{
		Breakdown:       breakdown,
		AdjustedScore:   match.ClampScore(breakdown.Total + adjustment),
		Adjustment:      adjustment,
		MatchingSkills:  breakdown.MatchingSkills,
		MissingSkills:   breakdown.MissingSkills,
		Strengths:       clampTextList(payload.Strengths, maxAnalysisListItems, maxNotesItemLen),
		Concerns:        clampTextList(payload.Concerns, maxAnalysisListItems, maxNotesItemLen),
		Recommendations: clampTextList(payload.Recommendations, maxAnalysisListItems, maxNotesItemLen),
		Reasoning:       clampText(*payload.Reasoning, maxReasoningLen),
	}

	// The model's skill lists replace the keyword-derived ones only when it
	// actually produced them.
	if len(payload.MatchingSkills) > 0 {
		analysis.MatchingSkills = clampTextList(payload.MatchingSkills, maxAnalysisSkills, 100)
	}
	if len(payload.MissingSkills) > 0 {
		analysis.MissingSkills = clampTextList(payload.MissingSkills, maxAnalysisSkills, 100)
	}
	return analysis
}

func fallbackAnalysis(breakdown match.ScoreBreakdown, cause error) match.Analysis {
	telemetry.Warn("ai.adjust_fallback", map[string]any{"error": sanitizeError(cause)})
	return match.Analysis{
		Breakdown:      breakdown,
		AdjustedScore:  match.ClampScore(breakdown.Total),
		Adjustment:     0,
		MatchingSkills: breakdown.MatchingSkills,
		MissingSkills:  breakdown.MissingSkills,
		Recommendations: []string{
			"Review the job description for skills to highlight in your application",
			"Tailor your resume to the position before applying",
		},
		Reasoning: "AI adjustment unavailable",
	}
}

func adjustPromptInput(breakdown match.ScoreBreakdown, job match.JobDetails, profile match.UserProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Job: %s at %s\n", job.Title, job.Company)
	if job.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", job.Location)
	}
	if job.Description != "" {
		fmt.Fprintf(&b, "Description:\n%s\n", clampText(job.Description, 6000))
	}
	fmt.Fprintf(&b, "\nCandidate skills: %s\n", strings.Join(profile.Skills, ", "))
	for _, exp := range profile.Experience {
		fmt.Fprintf(&b, "Experience: %s at %s (%.1f years)\n", exp.Title, exp.Company, exp.Years)
	}
	if profile.EducationLevel != "" {
		fmt.Fprintf(&b, "Education: %s\n", profile.EducationLevel)
	}
	fmt.Fprintf(&b, "\nRule-based score: %d/100 (skills %d/40, experience %d/30, education %d/15, other %d/15)\n",
		breakdown.Total, breakdown.Skills, breakdown.Experience, breakdown.Education, breakdown.Other)
	fmt.Fprintf(&b, "Matched skills: %s\n", strings.Join(breakdown.MatchingSkills, ", "))
	fmt.Fprintf(&b, "Missing skills: %s\n", strings.Join(breakdown.MissingSkills, ", "))
	return b.String()
}
