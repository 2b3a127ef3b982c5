package match

import "strings"

// ScoreOther covers the preference dimensions: location, job type and
// salary, 5 points each for 0 to 15 total. Missing data on either side is
// neutral, a stated mismatch is not.
func ScoreOther(job JobDetails, profile UserProfile) int {
	return scoreLocation(job, profile) + scoreJobType(job, profile) + scoreSalary(job, profile)
}

func scoreLocation(job JobDetails, profile UserProfile) int {
	if job.Remote {
		return 5
	}
	if job.Location == "" || len(profile.PreferredLocations) == 0 {
		return 3
	}
	jobLoc := strings.ToLower(job.Location)
	for _, pref := range profile.PreferredLocations {
		p := strings.ToLower(strings.TrimSpace(pref))
		if p != "" && (strings.Contains(jobLoc, p) || strings.Contains(p, jobLoc)) {
			return 5
		}
	}
	return 1
}

func scoreJobType(job JobDetails, profile UserProfile) int {
	if job.JobType == "" || len(profile.PreferredJobTypes) == 0 {
		return 3
	}
	jobType := strings.ToLower(strings.TrimSpace(job.JobType))
	for _, pref := range profile.PreferredJobTypes {
		if strings.EqualFold(strings.TrimSpace(pref), jobType) {
			return 5
		}
	}
	return 1
}

// scoreSalary compares the posted floor against the candidate's minimum
// expectation. A posting whose floor is below the expectation scores low even
// when its ceiling covers it.
func scoreSalary(job JobDetails, profile UserProfile) int {
	if profile.MinSalary <= 0 || (job.SalaryMin <= 0 && job.SalaryMax <= 0) {
		return 3
	}
	jobMin := job.SalaryMin
	if jobMin <= 0 {
		jobMin = job.SalaryMax
	}
	switch {
	case jobMin >= profile.MinSalary:
		return 5
	case jobMin >= 0.8*profile.MinSalary:
		return 3
	default:
		return 1
	}
}
