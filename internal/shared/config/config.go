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
	CORSAllowOrigin []string
	Env             string

	LLMProvider string
	LLMModel    string
	EmbedModel  string

	// Separate API keys per feature area, one client each, mirroring the
	// deployment split where chat/market/ats/interview bill independently.
	ChatAPIKey      string
	MarketAPIKey    string
	ATSAPIKey       string
	InterviewAPIKey string

	LLMCallTimeout time.Duration
	RequestTimeout time.Duration

	DatabaseURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	// A single GEMINI_API_KEY (or OPENAI_API_KEY) covers every feature
	// unless a per-feature key is set.
	defaultKey := os.Getenv("GEMINI_API_KEY")
	if defaultKey == "" {
		defaultKey = os.Getenv("OPENAI_API_KEY")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:             env,
		LLMProvider:     normalizeProvider(getEnv("LLM_PROVIDER", "gemini")),
		LLMModel:        getEnv("LLM_MODEL", "gemini-2.5-flash"),
		EmbedModel:      getEnv("EMBED_MODEL", "gemini-embedding-001"),
		ChatAPIKey:      getEnv("CHAT_GEMINI_KEY", defaultKey),
		MarketAPIKey:    getEnv("MARKET_GEMINI_KEY", defaultKey),
		ATSAPIKey:       getEnv("ATS_GEMINI_KEY", defaultKey),
		InterviewAPIKey: getEnv("INTERVIEW_GEMINI_KEY", defaultKey),
		LLMCallTimeout:  getEnvDuration("LLM_CALL_TIMEOUT_SECONDS", 60*time.Second),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT_SECONDS", 180*time.Second),
		DatabaseURL:     dbURL,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		log.Printf("config: %s invalid, using default %s", key, def)
		return def
	}
	return time.Duration(secs) * time.Second
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
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	default:
		return "gemini"
	}
}
