package match

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Years-of-experience phrasings, checked in order; the first match wins.
var yearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*\+\s*years`),
	regexp.MustCompile(`(?i)(\d+)\s*[-–]\s*\d+\s*years`),
	regexp.MustCompile(`(?i)minimum\s+of\s+(\d+)\s+years`),
	regexp.MustCompile(`(?i)(\d+)\s+years`),
}

// ScoreExperience compares the years a job asks for against the candidate's
// history. Relevant years are those from entries sharing at least one skill
// with the job description. Returns 0 to 30.
func ScoreExperience(job JobDetails, profile UserProfile) int {
	required := requiredYears(job.Description)
	if required == 0 {
		return 30
	}

	jobSkills := make(map[string]bool)
	for _, term := range extractSkills(job.Description + " " + job.Title) {
		jobSkills[term] = true
	}

	var total, relevant float64
	for _, exp := range profile.Experience {
		total += exp.Years
		if experienceIsRelevant(exp, jobSkills) {
			relevant += exp.Years
		}
	}

	switch {
	case relevant >= float64(required):
		return 30
	case total >= float64(required):
		return 20
	default:
		return int(math.Round(25 * relevant / float64(required)))
	}
}

// requiredYears pulls the years requirement out of a job description,
// returning 0 when none is stated.
func requiredYears(description string) int {
	for _, re := range yearsPatterns {
		if m := re.FindStringSubmatch(description); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n
			}
		}
	}
	return 0
}

func experienceIsRelevant(exp ExperienceItem, jobSkills map[string]bool) bool {
	if len(jobSkills) == 0 {
		return true
	}
	for _, s := range exp.Skills {
		if hasSkill(jobSkills, normalizeTerm(s)) {
			return true
		}
	}
	lower := strings.ToLower(exp.Title)
	for term := range jobSkills {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
