package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	AIProvider   string
	OpenAIKey    string
	OpenAIURL    string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string
	OllamaURL    string
	OllamaModel  string

	ReviewProfile string
	ReviewTimeout time.Duration
	ProfilesFile  string
	Segmenter     string
	MaxInputBytes int

	RateLimitRPS   int
	RateLimitBurst int
	CORSOrigins    []string

	BudgetDailyUSD  float64
	BudgetClientUSD float64

	Profiles map[string]Profile
}

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "local"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AIProvider:     getEnv("AI_PROVIDER", "openai"),
		OpenAIKey:      getEnv("OPENAI_KEY", os.Getenv("OPENAI_API_KEY")),
		OpenAIURL:      getEnv("OPENAI_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel:    getEnv("OPENAI_MODEL", ""),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OllamaURL:      getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:    getEnv("OLLAMA_MODEL", "llama3"),
		ReviewProfile:  getEnv("REVIEW_PROFILE", DefaultProfile),
		ReviewTimeout:  getEnvDuration("REVIEW_TIMEOUT", 0),
		ProfilesFile:   getEnv("PROFILES_FILE", ""),
		Segmenter:      getEnv("SEGMENTER", "heuristic"), // heuristic | json
		MaxInputBytes:  getEnvInt("MAX_INPUT_BYTES", 1<<20),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 2),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 5),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),

		BudgetDailyUSD:  getEnvFloat("BUDGET_DAILY_USD", 0),
		BudgetClientUSD: getEnvFloat("BUDGET_CLIENT_USD", 0),
	}

	profiles, err := LoadProfiles(cfg.ProfilesFile)
	if err != nil {
		log.Fatalf("load profiles: %v", err)
	}
	cfg.Profiles = profiles

	return cfg
}

// Profile resolves the active review profile with env overrides applied.
// The provider-specific model env var wins over the profile's model.
func (c *Config) Profile() (Profile, error) {
	p, ok := c.Profiles[strings.ToLower(c.ReviewProfile)]
	if !ok {
		return Profile{}, fmt.Errorf("unknown review profile %q", c.ReviewProfile)
	}

	if c.ReviewTimeout > 0 {
		p.Timeout = c.ReviewTimeout
	}

	switch c.AIProvider {
	case "gemini":
		p.Model = c.GeminiModel
	case "ollama":
		p.Model = c.OllamaModel
	default:
		if c.OpenAIModel != "" {
			p.Model = c.OpenAIModel
		}
	}

	return p, nil
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid env %s: %v", key, err)
	}
	return i
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid env %s: %v", key, err)
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid env %s: %v", key, err)
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
