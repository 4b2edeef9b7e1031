// Package config loads application configuration from environment variables.
//
// A .env file is loaded first if present (convenient for local development),
// then system environment variables take over. Every key has a sensible
// default except the secrets, which Validate() checks explicitly so a
// misconfigured deployment fails at startup instead of on the first request.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	Environment   string // tag reported by the health probe: "development", "production", ...
	DBPath        string // SQLite file backing the cloud idea store
	FavoritesPath string // JSON file backing the local favorites store
	JWTSecret     string

	// Generation provider (OpenRouter-compatible chat completions API).
	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterBaseURL string

	// Google federated login. Optional — when the client ID is empty the
	// OAuth routes are not registered and email+password login still works.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
}

// Load reads configuration from the environment, consulting a .env file if
// one exists. It never fails: missing values get defaults and the caller is
// expected to run Validate() before using the config.
func Load() *Config {
	// Ignore the error — no .env file just means plain env vars.
	_ = godotenv.Load()

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	cfg := &Config{
		Port:          port,
		Environment:   getEnv("APP_ENV", "development"),
		DBPath:        getEnv("DB_PATH", "data/ideas.db"),
		FavoritesPath: getEnv("FAVORITES_PATH", "data/liked_ideas.json"),
		JWTSecret:     getEnv("JWT_SECRET", ""),

		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "deepseek/deepseek-chat-v3-0324:free"),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", ""),
	}

	if cfg.GoogleCallbackURL == "" {
		cfg.GoogleCallbackURL = fmt.Sprintf("http://localhost:%d/auth/google/callback", cfg.Port)
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate checks the values the server cannot run without.
//
// The OpenRouter API key is deliberately NOT required here: the server boots
// without it and the generation endpoint reports a classified
// missing-credential failure per request. That keeps the stored-idea flows
// usable even when the provider credential is absent.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	if c.FavoritesPath == "" {
		return fmt.Errorf("FAVORITES_PATH is required")
	}
	return nil
}
