package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the application's runtime configuration, populated from
// environment variables (with an optional .env file for local dev).
type Config struct {
	// Environment
	Environment string
	Port        string
	FrontendURL string

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Simulation defaults
	DefaultTicksPerSec       int
	DefaultWidth             float64
	DefaultHeight            float64
	SessionIdleTimeoutSecs   int
	SessionReaperPollSecs    int
	MaxParticlesPerSession   int

	// Security
	SecretKey string

	// AdminAPIKeyHash is a bcrypt hash of the admin key required to delete
	// a session out-of-band (DELETE /api/v1/sessions/:id). Empty disables
	// the endpoint entirely, the same nil-safe pattern the teacher uses
	// for its optional payment/SMS clients.
	AdminAPIKeyHash string
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/collider?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),

		DefaultTicksPerSec:     getEnvInt("DEFAULT_TICKS_PER_SEC", 60),
		DefaultWidth:           getEnvFloat("DEFAULT_WIDTH", 800),
		DefaultHeight:          getEnvFloat("DEFAULT_HEIGHT", 600),
		SessionIdleTimeoutSecs: getEnvInt("SESSION_IDLE_TIMEOUT_SECONDS", 600),
		SessionReaperPollSecs:  getEnvInt("SESSION_REAPER_POLL_SECONDS", 30),
		MaxParticlesPerSession: getEnvInt("MAX_PARTICLES_PER_SESSION", 500),

		// Matches the reference implementation's fallback so a fresh
		// deployment without SECRET_KEY set still produces a usable (if
		// publicly known) signing key rather than failing to boot.
		SecretKey: getEnv("SECRET_KEY", "The Magic Words are Squeamish Ossifrage"),

		AdminAPIKeyHash: getEnv("ADMIN_API_KEY_HASH", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
