package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	SourcePath string
	DBPath     string
	OutputDir  string

	HTTPAddr string

	PageSize        int
	SearchThreshold float64
	DebounceMs      int

	LogLevel string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		SourcePath: getEnv("GAMEDEX_SOURCE", filepath.Join(cwd, "data", "games.json")),
		DBPath:     getEnv("GAMEDEX_DB_PATH", filepath.Join(cwd, "data", "gamedex.db")),
		OutputDir:  getEnv("GAMEDEX_OUTPUT_DIR", filepath.Join(cwd, "out")),

		HTTPAddr: getEnv("GAMEDEX_HTTP_ADDR", ":8080"),

		PageSize:        getEnvInt("GAMEDEX_PAGE_SIZE", 12),
		SearchThreshold: getEnvFloat("GAMEDEX_SEARCH_THRESHOLD", 0.30),
		DebounceMs:      getEnvInt("GAMEDEX_DEBOUNCE_MS", 300),

		LogLevel: getEnv("GAMEDEX_LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
