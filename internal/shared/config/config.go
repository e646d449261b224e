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

	SproutAPIKey  string
	SproutBaseURL string

	LLMProvider        string
	LLMModel           string
	LLMTemperature     float32
	LLMTokenLadder     []int
	LLMRateLimitCalls  int
	LLMRateLimitWindow time.Duration
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	GeminiAPIKey       string

	UsageStore      string
	UsageFile       string
	UsageWarnTokens int
	DatabaseURL     string
	RedisURL        string

	HTTPRateLimitRPS   float64
	HTTPRateLimitBurst int
}

// DefaultTokenLadder is the descending max-output-token budget used for strategy generation.
var DefaultTokenLadder = []int{3000, 2048, 1024}

// Load reads configuration from environment variables with sensible defaults.
// Credentials missing from the environment are looked up in the credentials file.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	creds := loadCredentialsFile(getEnv("CONFIG_FILE", ""))

	env := normalizeEnv(getEnv("ENV", "dev"))
	usageStore := normalizeUsageStore(getEnv("USAGE_STORE", "file"))
	dbURL := os.Getenv("DATABASE_URL")
	if usageStore == "postgres" && dbURL == "" {
		log.Printf("DATABASE_URL is required for USAGE_STORE=postgres, falling back to file store")
		usageStore = "file"
	}

	return Config{
		Port:            getEnv("PORT", "8000"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),

		SproutAPIKey:  firstNonEmpty(os.Getenv("SPROUT_API_KEY"), creds.SproutAPIKey),
		SproutBaseURL: getEnv("SPROUT_BASE_URL", "https://api.sproutsocial.com/v1"),

		LLMProvider:        normalizeProvider(getEnv("LLM_PROVIDER", "openai")),
		LLMModel:           getEnv("LLM_MODEL", "gpt-3.5-turbo"),
		LLMTemperature:     float32(getEnvFloat("LLM_TEMPERATURE", 0.7)),
		LLMTokenLadder:     parseLadder(getEnv("LLM_TOKEN_LADDER", "")),
		LLMRateLimitCalls:  getEnvInt("LLM_RATE_LIMIT_CALLS", 3),
		LLMRateLimitWindow: getEnvDuration("LLM_RATE_LIMIT_WINDOW", time.Minute),
		OpenAIAPIKey:       firstNonEmpty(os.Getenv("OPENAI_API_KEY"), creds.OpenAIAPIKey),
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", ""),
		GeminiAPIKey:       firstNonEmpty(os.Getenv("GEMINI_API_KEY"), creds.GeminiAPIKey),

		UsageStore:      usageStore,
		UsageFile:       getEnv("USAGE_FILE", "token_usage.json"),
		UsageWarnTokens: getEnvInt("USAGE_WARN_TOKENS", 50000),
		DatabaseURL:     dbURL,
		RedisURL:        getEnv("REDIS_URL", ""),

		HTTPRateLimitRPS:   getEnvFloat("HTTP_RATE_LIMIT_RPS", 5),
		HTTPRateLimitBurst: getEnvInt("HTTP_RATE_LIMIT_BURST", 20),
	}
}

// LLMAPIKey returns the credential for the configured provider.
func (c Config) LLMAPIKey() string {
	if c.LLMProvider == "gemini" {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
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
	if err != nil {
		log.Printf("config env %s invalid int: %v", key, err)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config env %s invalid float: %v", key, err)
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config env %s invalid duration: %v", key, err)
		return def
	}
	return val
}

// parseLadder reads a comma-separated list of positive budgets.
// An empty or invalid value yields DefaultTokenLadder.
func parseLadder(raw string) []int {
	parts := splitAndTrim(raw)
	if len(parts) == 0 {
		return append([]int(nil), DefaultTokenLadder...)
	}
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			log.Printf("config env LLM_TOKEN_LADDER invalid entry %q, using defaults", p)
			return append([]int(nil), DefaultTokenLadder...)
		}
		out = append(out, n)
	}
	return out
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

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
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
	case "gemini", "google":
		return "gemini"
	default:
		return "openai"
	}
}

func normalizeUsageStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "memory":
		return "memory"
	case "postgres", "pg":
		return "postgres"
	case "redis":
		return "redis"
	default:
		return "file"
	}
}
