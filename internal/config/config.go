package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Logging
	LogDir      string // Empty disables file logging
	LogMaxFiles int
	// Seed dataset (empty = embedded reference data)
	SeedPath string
	// AI collaborator configuration
	AIProvider       string
	AIModel          string
	AnthropicAPIKey  string
	OpenRouterAPIKey string
	// Workspace behavior
	SimulatedLatency time.Duration // Synthetic delay for upload/clone/sync/save/push
	ReadmeBackendID  string        // Owner backend for newly generated READMEs
	// Debug flags
	Debug bool // Exposes /metrics
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),
		SeedPath:    getEnv("SEED_PATH", ""),
		// AI collaborator - lorem needs no API key
		AIProvider:       getEnv("AI_PROVIDER", "lorem"),
		AIModel:          getEnv("AI_MODEL", "lorem-fast"),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		// Workspace
		SimulatedLatency: getEnvDuration("SIMULATED_LATENCY", 1500*time.Millisecond),
		ReadmeBackendID:  getEnv("README_BACKEND", "gdrive"),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// getEnvDuration parses values like "1500ms" or "2s". "0" disables the delay.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if raw == "0" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}
