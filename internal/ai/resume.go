package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"jobtrack-backend/internal/aiusage"
)

const (
	maxResumeInputChars = 12000

	maxResumeSkills     = 50
	maxResumeExperience = 15
	maxResumeEducation  = 10
	maxResumeSummaryLen = 1000
	maxResumeFieldLen   = 200
	maxResumeDescLen    = 500
)

// Contact holds the contact details found in a resume.
type Contact struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// ExperienceEntry is one work-history item from a resume.
type ExperienceEntry struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is one education item from a resume.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Year        string `json:"year,omitempty"`
}

// ParsedResume is the structured result of resume parsing. All list and text
// fields are capped at construction; callers never see oversized data.
type ParsedResume struct {
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Contact    *Contact          `json:"contact,omitempty"`
	Summary    string            `json:"summary,omitempty"`
}

// Pointer slices distinguish "absent" from "empty": required fields must be
// present in the model output, not defaulted.
type parsedResumePayload struct {
	Skills     *[]string          `json:"skills"`
	Experience *[]ExperienceEntry `json:"experience"`
	Education  *[]EducationEntry  `json:"education"`
	Contact    *Contact           `json:"contact"`
	Summary    string             `json:"summary"`
}

// ParseResumeText extracts structured resume data from plain text.
func (s *Service) ParseResumeText(ctx context.Context, text, userID string) (*ParsedResume, error) {
	text = clampText(text, maxResumeInputChars)
	if text == "" {
		return nil, &APIError{Status: 400, Message: "resume text is empty"}
	}

	req := s.newRequest(resumeParseSystem, "Resume text:\n\n"+text)
	resp, err := s.createMessage(ctx, req, userID, aiusage.OpResumeParse)
	if err != nil {
		return nil, err
	}

	raw := resp.Text()
	data, err := extractJSON(raw)
	if err != nil {
		return nil, invalidOutput("resume_parse", raw, err)
	}

	var payload parsedResumePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, invalidOutput("resume_parse", raw, err)
	}
	if err := payload.validate(); err != nil {
		return nil, invalidOutput("resume_parse", raw, err)
	}

	return payload.normalize(), nil
}

func (p *parsedResumePayload) validate() error {
	if p.Skills == nil {
		return fmt.Errorf("skills is required")
	}
	if p.Experience == nil {
		return fmt.Errorf("experience is required")
	}
	if p.Education == nil {
		return fmt.Errorf("education is required")
	}
	return nil
}

func (p *parsedResumePayload) normalize() *ParsedResume {
	out := &ParsedResume{
		Skills:     clampTextList(*p.Skills, maxResumeSkills, 100),
		Experience: clampList(*p.Experience, maxResumeExperience),
		Education:  clampList(*p.Education, maxResumeEducation),
		Summary:    clampText(p.Summary, maxResumeSummaryLen),
	}
	for i := range out.Experience {
		e := &out.Experience[i]
		e.Company = clampText(e.Company, maxResumeFieldLen)
		e.Title = clampText(e.Title, maxResumeFieldLen)
		e.StartDate = clampText(e.StartDate, 50)
		e.EndDate = clampText(e.EndDate, 50)
		e.Description = clampText(e.Description, maxResumeDescLen)
	}
	for i := range out.Education {
		e := &out.Education[i]
		e.Institution = clampText(e.Institution, maxResumeFieldLen)
		e.Degree = clampText(e.Degree, maxResumeFieldLen)
		e.Field = clampText(e.Field, maxResumeFieldLen)
		e.Year = clampText(e.Year, 50)
	}
	if p.Contact != nil {
		out.Contact = &Contact{
			Name:     clampText(p.Contact.Name, maxResumeFieldLen),
			Email:    clampText(p.Contact.Email, maxResumeFieldLen),
			Phone:    clampText(p.Contact.Phone, 50),
			Location: clampText(p.Contact.Location, maxResumeFieldLen),
		}
	}
	return out
}
