// Package config loads service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Display DisplayConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DataConfig struct {
	// DatasetDir holds translation dataset files (rst.json, ktb.json.xz, ...).
	DatasetDir string
	// DatabasePath is the SQLite file for operator data.
	DatabasePath string
	// BlobDir is the root of the content-addressed image store.
	BlobDir string
	// SongbooksPath is an optional JSON file of static songbooks.
	SongbooksPath string
}

type DisplayConfig struct {
	// DefaultTranslation is the translation selected at startup.
	DefaultTranslation string
	// ShowSettle and HideSettle override the fade settle delays.
	ShowSettle time.Duration
	HideSettle time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("LUMEN_HOST", "0.0.0.0"),
			Port: getEnvInt("LUMEN_PORT", 8090),
		},
		Data: DataConfig{
			DatasetDir:    getEnv("LUMEN_DATASET_DIR", "data/translations"),
			DatabasePath:  getEnv("LUMEN_DB_PATH", "data/lumen.db"),
			BlobDir:       getEnv("LUMEN_BLOB_DIR", "data/blobs"),
			SongbooksPath: getEnv("LUMEN_SONGBOOKS_PATH", ""),
		},
		Display: DisplayConfig{
			DefaultTranslation: getEnv("LUMEN_TRANSLATION", "RST"),
			ShowSettle:         time.Duration(getEnvInt("LUMEN_SHOW_SETTLE_MS", 400)) * time.Millisecond,
			HideSettle:         time.Duration(getEnvInt("LUMEN_HIDE_SETTLE_MS", 800)) * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LUMEN_LOG_LEVEL", "info"),
			Format: getEnv("LUMEN_LOG_FORMAT", "text"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("LUMEN_PORT must be a valid port, got %d", c.Server.Port)
	}
	if c.Data.DatasetDir == "" {
		return fmt.Errorf("LUMEN_DATASET_DIR is required")
	}
	if c.Display.DefaultTranslation == "" {
		return fmt.Errorf("LUMEN_TRANSLATION is required")
	}
	return nil
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
