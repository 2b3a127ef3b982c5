package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string

	AnthropicAPIKey  string
	AnthropicBaseURL string
	Model            string
	MaxTokens        int
	AttemptTimeout   time.Duration
	OperationLimits  map[string]int
}

// Default hourly quotas per AI operation. Overridable via AI_LIMIT_<OPERATION>.
var defaultOperationLimits = map[string]int{
	"resume_parse":       10,
	"summarize_notes":    15,
	"job_analysis":       20,
	"generate_followups": 10,
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}
	if env == "production" && os.Getenv("ANTHROPIC_API_KEY") == "" {
		log.Printf("ANTHROPIC_API_KEY is required in production")
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              env,
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:      dbURL,
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", ""),
		Model:            getEnv("AI_MODEL", "claude-3-5-sonnet-20241022"),
		MaxTokens:        getEnvInt("AI_MAX_TOKENS", 4096),
		AttemptTimeout:   time.Duration(getEnvInt("AI_ATTEMPT_TIMEOUT_SECONDS", 60)) * time.Second,
		OperationLimits:  loadOperationLimits(),
	}
}

func loadOperationLimits() map[string]int {
	limits := make(map[string]int, len(defaultOperationLimits))
	for op, def := range defaultOperationLimits {
		key := "AI_LIMIT_" + strings.ToUpper(op)
		limits[op] = getEnvInt(key, def)
	}
	return limits
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("config env %s invalid int %q, using default %d", key, raw, def)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	default:
		return "dev"
	}
}
