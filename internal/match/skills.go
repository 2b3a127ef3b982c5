package match

import (
	"math"
	"strings"
)

// skillVocabulary is the closed set of terms looked for in job descriptions.
// Lookup is keyword-based on purpose; the model-backed analysis corrects the
// lists it produces.
var skillVocabulary = []string{
	"python", "java", "javascript", "typescript", "go", "golang", "rust",
	"c++", "c#", "ruby", "php", "swift", "kotlin", "scala", "r",
	"sql", "nosql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch",
	"react", "angular", "vue", "svelte", "node", "django", "flask", "spring",
	"rails", "laravel", "express", "graphql", "rest",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible",
	"jenkins", "ci/cd", "git", "linux",
	"machine learning", "deep learning", "data analysis", "data science",
	"nlp", "computer vision", "tensorflow", "pytorch", "pandas", "numpy",
	"agile", "scrum", "project management", "leadership", "communication",
	"problem solving", "teamwork", "mentoring",
	"html", "css", "sass", "webpack", "figma", "ui/ux",
	"microservices", "distributed systems", "api design", "security",
	"testing", "tdd", "devops", "monitoring",
}

// ScoreSkills compares the skills a job description mentions against the
// candidate's skills. Returns the points (0 to 40) plus the matched and
// missing vocabulary terms. A description that mentions no known skill
// earns the full 40.
func ScoreSkills(job JobDetails, profile UserProfile) (int, []string, []string) {
	required := extractSkills(job.Description + " " + job.Title)
	if len(required) == 0 {
		return 40, nil, nil
	}

	have := make(map[string]bool, len(profile.Skills))
	for _, s := range profile.Skills {
		have[normalizeTerm(s)] = true
	}
	for _, exp := range profile.Experience {
		for _, s := range exp.Skills {
			have[normalizeTerm(s)] = true
		}
	}

	var matching, missing []string
	for _, term := range required {
		if hasSkill(have, term) {
			matching = append(matching, term)
		} else {
			missing = append(missing, term)
		}
	}

	points := int(math.Round(40 * float64(len(matching)) / float64(len(required))))
	return points, matching, missing
}

// extractSkills finds vocabulary terms mentioned in free text. Single-word
// terms match whole tokens; multiword terms match as substrings.
func extractSkills(text string) []string {
	lower := strings.ToLower(text)
	tokens := tokenSet(lower)

	var found []string
	for _, term := range skillVocabulary {
		if strings.ContainsRune(term, ' ') || strings.ContainsRune(term, '/') {
			if strings.Contains(lower, term) {
				found = append(found, term)
			}
			continue
		}
		if tokens[term] || tokens[term+"s"] || (strings.HasSuffix(term, "s") && tokens[strings.TrimSuffix(term, "s")]) {
			found = append(found, term)
		}
	}
	return found
}

// hasSkill checks a normalized term against the candidate's set, tolerating
// a trailing plural "s" on either side.
func hasSkill(have map[string]bool, term string) bool {
	if have[term] {
		return true
	}
	if have[term+"s"] {
		return true
	}
	if strings.HasSuffix(term, "s") && have[strings.TrimSuffix(term, "s")] {
		return true
	}
	return false
}

// normalizeTerm lowercases and strips punctuation other than the characters
// that distinguish terms like c++, c# and ci/cd.
func normalizeTerm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' || r == '#' || r == '/' || r == ' ' || r == '.':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func tokenSet(lower string) map[string]bool {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return false
		case r == '+' || r == '#' || r == '/':
			return false
		}
		return true
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
