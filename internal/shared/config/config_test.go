package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Model == "" {
		t.Fatal("Model empty")
	}
	if cfg.MaxTokens != 4096 {
		t.Fatalf("MaxTokens = %d, want 4096", cfg.MaxTokens)
	}
	if cfg.AttemptTimeout != 60*time.Second {
		t.Fatalf("AttemptTimeout = %v, want 60s", cfg.AttemptTimeout)
	}
	if got := cfg.OperationLimits["resume_parse"]; got != 10 {
		t.Fatalf("resume_parse limit = %d, want 10", got)
	}
	if got := cfg.OperationLimits["job_analysis"]; got != 20 {
		t.Fatalf("job_analysis limit = %d, want 20", got)
	}
}

func TestLoadOperationLimitOverride(t *testing.T) {
	t.Setenv("AI_LIMIT_RESUME_PARSE", "3")
	cfg := Load()

	if got := cfg.OperationLimits["resume_parse"]; got != 3 {
		t.Fatalf("resume_parse limit = %d, want 3", got)
	}
	if got := cfg.OperationLimits["summarize_notes"]; got != 15 {
		t.Fatalf("summarize_notes limit = %d, want default 15", got)
	}
}

func TestLoadIgnoresInvalidLimit(t *testing.T) {
	t.Setenv("AI_LIMIT_RESUME_PARSE", "banana")
	cfg := Load()

	if got := cfg.OperationLimits["resume_parse"]; got != 10 {
		t.Fatalf("resume_parse limit = %d, want default 10", got)
	}
}

func TestNormalizeEnv(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "prod", want: "production"},
		{in: "Production", want: "production"},
		{in: "staging", want: "staging"},
		{in: "", want: "dev"},
		{in: "local", want: "dev"},
	}
	for _, tt := range tests {
		if got := normalizeEnv(tt.in); got != tt.want {
			t.Fatalf("normalizeEnv(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
