package match

import "testing"

func TestScoreSkillsFullWhenJobListsNone(t *testing.T) {
	job := JobDetails{Title: "Office Manager", Description: "Organize the office and greet visitors."}
	profile := UserProfile{Skills: []string{"Python"}}

	points, matching, missing := ScoreSkills(job, profile)
	if points != 40 {
		t.Fatalf("points = %d, want 40", points)
	}
	if len(matching) != 0 || len(missing) != 0 {
		t.Fatalf("matching = %v missing = %v, want empty", matching, missing)
	}
}

func TestScoreSkillsFullMatch(t *testing.T) {
	job := JobDetails{Title: "Backend Engineer", Description: "We use Python and Docker daily."}
	profile := UserProfile{Skills: []string{"python", "docker"}}

	points, matching, missing := ScoreSkills(job, profile)
	if points != 40 {
		t.Fatalf("points = %d, want 40", points)
	}
	if len(matching) != 2 {
		t.Fatalf("matching = %v, want 2 terms", matching)
	}
	if len(missing) != 0 {
		t.Fatalf("missing = %v, want none", missing)
	}
}

func TestScoreSkillsPartialMatch(t *testing.T) {
	job := JobDetails{Title: "Backend Engineer", Description: "We use Python and Docker daily."}
	profile := UserProfile{Skills: []string{"Python"}}

	points, matching, missing := ScoreSkills(job, profile)
	if points != 20 {
		t.Fatalf("points = %d, want 20", points)
	}
	if len(matching) != 1 || matching[0] != "python" {
		t.Fatalf("matching = %v, want [python]", matching)
	}
	if len(missing) != 1 || missing[0] != "docker" {
		t.Fatalf("missing = %v, want [docker]", missing)
	}
}

func TestScoreSkillsCaseAndPluralTolerant(t *testing.T) {
	job := JobDetails{Description: "Strong microservices and Kubernetes background required."}
	profile := UserProfile{Skills: []string{"Microservice", "KUBERNETES"}}

	points, _, missing := ScoreSkills(job, profile)
	if points != 40 {
		t.Fatalf("points = %d, want 40 (missing %v)", points, missing)
	}
}

func TestScoreSkillsCountsExperienceSkills(t *testing.T) {
	job := JobDetails{Description: "Terraform experience required."}
	profile := UserProfile{
		Experience: []ExperienceItem{{Title: "SRE", Company: "Acme", Skills: []string{"terraform"}, Years: 3}},
	}

	points, _, _ := ScoreSkills(job, profile)
	if points != 40 {
		t.Fatalf("points = %d, want 40", points)
	}
}

func TestScoreSkillsMultiwordTerms(t *testing.T) {
	job := JobDetails{Description: "Background in machine learning and data analysis."}
	profile := UserProfile{Skills: []string{"machine learning"}}

	points, matching, missing := ScoreSkills(job, profile)
	if points != 20 {
		t.Fatalf("points = %d, want 20", points)
	}
	if len(matching) != 1 || matching[0] != "machine learning" {
		t.Fatalf("matching = %v", matching)
	}
	if len(missing) != 1 || missing[0] != "data analysis" {
		t.Fatalf("missing = %v", missing)
	}
}

func TestNormalizeTerm(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  Python  ", want: "python"},
		{in: "C++", want: "c++"},
		{in: "C#", want: "c#"},
		{in: "CI/CD!", want: "ci/cd"},
		{in: "Node.js", want: "node.js"},
	}
	for _, tt := range tests {
		if got := normalizeTerm(tt.in); got != tt.want {
			t.Fatalf("normalizeTerm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
