package match

import "strings"

var educationRanks = map[string]int{
	"none":       0,
	"highschool": 0,
	"associates": 1,
	"bachelors":  2,
	"masters":    3,
	"phd":        4,
	"doctorate":  4,
}

// ScoreEducation compares the degree a job description implies against the
// candidate's level. Returns 0 to 15; a job that states no requirement, or a
// candidate at or above it, earns the full 15.
func ScoreEducation(job JobDetails, profile UserProfile) int {
	required := requiredEducation(job.Description)
	have := educationRank(profile.EducationLevel)

	diff := required - have
	switch {
	case diff <= 0:
		return 15
	case diff == 1:
		return 10
	case diff == 2:
		return 5
	default:
		return 0
	}
}

func requiredEducation(description string) int {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "phd") || strings.Contains(lower, "doctorate"):
		return 4
	case strings.Contains(lower, "master"):
		return 3
	case strings.Contains(lower, "bachelor") || strings.Contains(lower, "degree"):
		return 2
	case strings.Contains(lower, "associate"):
		return 1
	default:
		return 0
	}
}

func educationRank(level string) int {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(level)), "'", "")
	key = strings.ReplaceAll(key, " ", "")
	if rank, ok := educationRanks[key]; ok {
		return rank
	}
	return 0
}
