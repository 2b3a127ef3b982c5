package match

// JobDetails is the job-posting side of a match calculation.
type JobDetails struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Description string  `json:"description"`
	Location    string  `json:"location,omitempty"`
	JobType     string  `json:"jobType,omitempty"`
	Remote      bool    `json:"remote,omitempty"`
	SalaryMin   float64 `json:"salaryMin,omitempty"`
	SalaryMax   float64 `json:"salaryMax,omitempty"`
}

// ExperienceItem is one work-history entry on a candidate profile.
type ExperienceItem struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Skills  []string `json:"skills,omitempty"`
	Years   float64  `json:"years"`
}

// UserProfile is the candidate side of a match calculation.
type UserProfile struct {
	Skills             []string         `json:"skills"`
	Experience         []ExperienceItem `json:"experience"`
	EducationLevel     string           `json:"educationLevel,omitempty"`
	PreferredLocations []string         `json:"preferredLocations,omitempty"`
	PreferredJobTypes  []string         `json:"preferredJobTypes,omitempty"`
	MinSalary          float64          `json:"minSalary,omitempty"`
}

// ScoreBreakdown is the rule-based score with its per-dimension parts.
// Skills is out of 40, Experience out of 30, Education out of 15 and
// Other out of 15; Total is their sum.
type ScoreBreakdown struct {
	Total          int      `json:"total"`
	Skills         int      `json:"skills"`
	Experience     int      `json:"experience"`
	Education      int      `json:"education"`
	Other          int      `json:"other"`
	MatchingSkills []string `json:"matchingSkills"`
	MissingSkills  []string `json:"missingSkills"`
}

// Analysis is a breakdown refined with a model adjustment and narrative.
type Analysis struct {
	Breakdown       ScoreBreakdown `json:"breakdown"`
	AdjustedScore   int            `json:"adjustedScore"`
	Adjustment      int            `json:"adjustment"`
	MatchingSkills  []string       `json:"matchingSkills"`
	MissingSkills   []string       `json:"missingSkills"`
	Strengths       []string       `json:"strengths,omitempty"`
	Concerns        []string       `json:"concerns,omitempty"`
	Recommendations []string       `json:"recommendations"`
	Reasoning       string         `json:"reasoning"`
}

// ClampAdjustment bounds a model adjustment to [-10, 10].
func ClampAdjustment(n int) int {
	if n < -10 {
		return -10
	}
	if n > 10 {
		return 10
	}
	return n
}

// ClampScore bounds a final score to [0, 100].
func ClampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
