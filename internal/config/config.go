package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	ServerPort   string
	APIKey       string
	DataDir      string
	UploadDir    string
	StaticDir    string
	TelemetryURL string
	LogLevel     string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ServerPort:   getEnv("PORT", "5173"),
		APIKey:       getEnv("API_KEY", ""),
		DataDir:      getEnv("DATA_DIR", "data"),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		StaticDir:    getEnv("STATIC_DIR", "dist"),
		TelemetryURL: getEnv("TELEMETRY_URL", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	// The server still runs without a key; camera uploads answer 500 until
	// one is configured.
	if cfg.APIKey == "" {
		logger.Warn().Msg("API_KEY not set, camera uploads will be rejected")
	}

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("data_dir", cfg.DataDir).
		Str("upload_dir", cfg.UploadDir).
		Str("static_dir", cfg.StaticDir).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
