package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Gemini AI
	GeminiAPIKey         string
	GeminiModel          string
	GeminiConcurrentReqs int

	// Usage log (optional)
	DatabaseURL string

	// Response cache (optional)
	RedisURL string
	CacheTTL time.Duration

	// HTTP
	CORSOrigin         string
	RateLimitPerMinute int
}

// ClientConfig configures the command-line client. The base URL is always
// injected into the API client, never read from a package-level constant.
type ClientConfig struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	LogLevel       string
}

const (
	DefaultAPIBaseURL  = "http://localhost:5000/api"
	DefaultGeminiModel = "gemini-2.5-flash"
)

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		Port:                 getEnvOrDefault("PORT", "5000"),
		Env:                  getEnvOrDefault("ENV", "development"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		GeminiAPIKey:         getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", DefaultGeminiModel),
		GeminiConcurrentReqs: getEnvAsIntOrDefault("GEMINI_CONCURRENT_REQUESTS", 5),
		DatabaseURL:          getEnvOrDefault("DATABASE_URL", ""),
		RedisURL:             getEnvOrDefault("REDIS_URL", ""),
		CacheTTL:             getEnvAsDurationOrDefault("CACHE_TTL", time.Hour),
		CORSOrigin:           getEnvOrDefault("CORS_ORIGIN", "*"),
		RateLimitPerMinute:   getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 30),
	}
}

func LoadClient() *ClientConfig {
	godotenv.Load()

	return &ClientConfig{
		APIBaseURL:     getEnvOrDefault("CONTENTGEN_API_URL", DefaultAPIBaseURL),
		RequestTimeout: getEnvAsDurationOrDefault("CONTENTGEN_TIMEOUT", 60*time.Second),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "warn"),
	}
}

// GeminiConfigured reports whether generation endpoints can serve requests.
func (c *Config) GeminiConfigured() bool {
	return c.GeminiAPIKey != ""
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
