package match

// CalculateBaseScore runs the rule-based scorer over a job and a candidate
// profile. The result is deterministic; identical inputs always produce the
// identical breakdown.
func CalculateBaseScore(job JobDetails, profile UserProfile) ScoreBreakdown {
	skills, matching, missing := ScoreSkills(job, profile)
	experience := ScoreExperience(job, profile)
	education := ScoreEducation(job, profile)
	other := ScoreOther(job, profile)

	return ScoreBreakdown{
		Total:          skills + experience + education + other,
		Skills:         skills,
		Experience:     experience,
		Education:      education,
		Other:          other,
		MatchingSkills: matching,
		MissingSkills:  missing,
	}
}
