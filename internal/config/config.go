package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"splinter-planner/internal/constants"
)

type Config struct {
	DBPath          string
	ServerPort      string
	LogLevel        string
	GameAPIBaseURL  string
	GameAPI2BaseURL string
	RatesAPIBaseURL string
	CardCacheTTL    time.Duration
	PollInterval    time.Duration
	PollingEnabled  bool
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:          getEnv("DB_PATH", "battles.db"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		GameAPIBaseURL:  getEnv("GAME_API_BASE_URL", "https://api.splinterlands.io"),
		GameAPI2BaseURL: getEnv("GAME_API2_BASE_URL", "https://api2.splinterlands.com"),
		RatesAPIBaseURL: getEnv("RATES_API_BASE_URL", "https://api.coingecko.com/api/v3"),
		CardCacheTTL:    constants.CardCacheTTL,
		PollInterval:    constants.PollInterval,
		PollingEnabled:  getEnv("POLLING_ENABLED", "true") == "true",
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("game_api", cfg.GameAPIBaseURL).
		Bool("polling_enabled", cfg.PollingEnabled).
		Dur("card_cache_ttl", cfg.CardCacheTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
