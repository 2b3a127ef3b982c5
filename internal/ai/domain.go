package ai

import (
	"fmt"
	"strings"
	"time"
)

// Application is a plain-data snapshot of a tracked job application, supplied
// by the caller. This core never writes back to it.
type Application struct {
	Company        string     `json:"company"`
	Position       string     `json:"position"`
	Status         string     `json:"status"`
	Location       string     `json:"location,omitempty"`
	JobType        string     `json:"jobType,omitempty"`
	JobDescription string     `json:"jobDescription,omitempty"`
	AppliedAt      *time.Time `json:"appliedAt,omitempty"`
	LastContactAt  *time.Time `json:"lastContactAt,omitempty"`
}

// Note is one free-form note attached to an application.
type Note struct {
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// contextBlock renders the application snapshot for prompt interpolation.
func (a Application) contextBlock() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\nPosition: %s\nStatus: %s\n", a.Company, a.Position, a.Status)
	if a.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", a.Location)
	}
	if a.JobType != "" {
		fmt.Fprintf(&b, "Job type: %s\n", a.JobType)
	}
	if a.AppliedAt != nil {
		fmt.Fprintf(&b, "Applied: %s\n", a.AppliedAt.UTC().Format("2006-01-02"))
	}
	if a.LastContactAt != nil {
		fmt.Fprintf(&b, "Last contact: %s\n", a.LastContactAt.UTC().Format("2006-01-02"))
	}
	return b.String()
}
