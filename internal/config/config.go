package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	DatabaseURL  string
	HTTPPort     string
	GeminiAPIKey string
	GeminiModel  string
	// WatchInterval is the audit status poll interval for /watch streams.
	WatchInterval time.Duration
	// Slack notification settings; both empty means notifications are off.
	SlackBotToken  string
	SlackChannelID string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
		// Don't fail if .env is not present, might be in production
	}

	port := getEnv("HTTP_PORT", "8080")

	dbURL := getEnv("DATABASE_URL", "") // No default, should fail if not set
	if dbURL == "" {
		log.Fatal("FATAL: DATABASE_URL environment variable is not set.")
	}

	// The inference credential must be present at startup. Failing here keeps
	// a misconfigured deployment from surfacing as a chat error later.
	geminiKey := getEnv("GEMINI_API_KEY", "")
	if geminiKey == "" {
		log.Fatal("FATAL: GEMINI_API_KEY environment variable is not set.")
	}
	geminiModel := getEnv("GEMINI_MODEL", "gemini-2.0-flash")

	watchSecStr := getEnv("AUDIT_WATCH_INTERVAL_SECONDS", "5")
	watchSec, err := strconv.Atoi(watchSecStr)
	if err != nil || watchSec <= 0 {
		log.Printf("Warning: Invalid AUDIT_WATCH_INTERVAL_SECONDS '%s', using default 5s.", watchSecStr)
		watchSec = 5
	}

	cfg := &Config{
		HTTPPort:       port,
		DatabaseURL:    dbURL,
		GeminiAPIKey:   geminiKey,
		GeminiModel:    geminiModel,
		WatchInterval:  time.Duration(watchSec) * time.Second,
		SlackBotToken:  getEnv("SLACK_BOT_TOKEN", ""),
		SlackChannelID: getEnv("SLACK_CHANNEL_ID", ""),
	}

	log.Printf("Loaded config: Port=%s, DB_URL=***, GeminiModel=%s, WatchInterval=%s",
		cfg.HTTPPort, cfg.GeminiModel, cfg.WatchInterval)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
