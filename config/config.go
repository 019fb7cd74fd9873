package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the bot reads from the environment.
type Config struct {
	TelegramToken string
	GeminiAPIKey  string // empty runs the bot in deterministic-parser mode
	AdminPassword string // empty disables admin features

	ChatDBPath      string // empty keeps history in memory only
	MaxContextSize  int
	ResetOnGreeting bool
	AITimeout       time.Duration
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		ChatDBPath:      envOr("CHAT_DB_PATH", "data/chat.db"),
		MaxContextSize:  envInt("MAX_CONTEXT_SIZE", 20),
		ResetOnGreeting: envBool("RESET_ON_GREETING", true),
		AITimeout:       time.Duration(envInt("AI_TIMEOUT_SECONDS", 20)) * time.Second,
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.MaxContextSize <= 0 {
		return nil, fmt.Errorf("MAX_CONTEXT_SIZE must be positive")
	}
	if cfg.AITimeout <= 0 {
		return nil, fmt.Errorf("AI_TIMEOUT_SECONDS must be positive")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
