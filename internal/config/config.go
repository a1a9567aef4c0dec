package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// DatabaseURL backs the change detector's recorded-hash store.
	// Empty means run with the in-memory store.
	DatabaseURL string
	// WorkerCount bounds concurrent per-file processing.
	WorkerCount int
	// SplitMaxEntries is the default chunk size for the split command.
	SplitMaxEntries int
	// StrictParse turns tabless text lines into errors instead of skips.
	StrictParse bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		WorkerCount:     getEnvInt("WORKER_COUNT", 8),
		SplitMaxEntries: getEnvInt("SPLIT_MAX_ENTRIES", 500),
		StrictParse:     getEnvBool("STRICT_PARSE", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
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

func getEnvBool(key string, fallback bool) bool {
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
