package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	StaticFilesPath string
	AudioCachePath  string

	// Signing secret for session tokens issued at session start
	TokenSecret string

	// Narration defaults applied when a request does not override them
	LanguageTag string
	SpeechRate  float64

	// Idle sessions older than this are swept by the janitor
	SessionTTL time.Duration

	// Session-start rate limiting, per client IP
	RateLimitPerMinute int

	// Amazon SES settings for session report emails. Reports are
	// disabled when SESFromEmail is empty.
	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is honoured when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./wordrush.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		AudioCachePath:  getEnv("AUDIO_CACHE_PATH", "./static/audio"),

		TokenSecret: getEnv("TOKEN_SECRET", "dev-only-insecure-secret"),

		LanguageTag: getEnv("NARRATION_LANGUAGE", "es"),
		SpeechRate:  getEnvFloat("NARRATION_RATE", 0.8),

		SessionTTL: getEnvDuration("SESSION_TTL", 30*time.Minute),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 10),

		AWSRegion:    getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "WordRush"),

		Debug: getEnv("DEBUG", "") == "true",
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
