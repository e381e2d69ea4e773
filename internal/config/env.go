package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from the first .env file found.
// A missing file is not an error; variables may be set system-wide.
func LoadEnv() (string, error) {
	envPaths := []string{
		".env",
		".env.local",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}

// DefaultConfigPath returns $S2X_CONFIG or ~/.config/s2x/config.yaml.
func DefaultConfigPath() string {
	if p := os.Getenv("S2X_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "s2x", "config.yaml")
}

// DefaultDataDir returns the directory holding the local database.
func DefaultDataDir() string {
	if p := os.Getenv("S2X_DATA_DIR"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".local", "share", "s2x")
}

// EnvAPIBase returns the S2X_API_BASE override, empty when unset.
func EnvAPIBase() string {
	return os.Getenv("S2X_API_BASE")
}

// ApplyEnv overlays environment overrides on cfg.
func ApplyEnv(cfg *Config) {
	cfg.APIBase = getEnvOrDefault("S2X_API_BASE", cfg.APIBase)
	cfg.ShareOrigin = getEnvOrDefault("S2X_SHARE_ORIGIN", cfg.ShareOrigin)
	cfg.FilesBase = getEnvOrDefault("S2X_FILES_BASE", cfg.FilesBase)

	cfg.History.Backend = getEnvOrDefault("S2X_HISTORY_BACKEND", cfg.History.Backend)
	cfg.History.SQLitePath = getEnvOrDefault("S2X_DB_PATH", cfg.History.SQLitePath)
	cfg.History.PostgresDSN = getEnvOrDefault("DATABASE_URL", cfg.History.PostgresDSN)
	cfg.History.RedisAddr = getEnvOrDefault("REDIS_ADDR", cfg.History.RedisAddr)
	cfg.History.RedisPassword = getEnvOrDefault("REDIS_PASSWORD", cfg.History.RedisPassword)

	cfg.Storage.Endpoint = getEnvOrDefault("MINIO_ENDPOINT", cfg.Storage.Endpoint)
	cfg.Storage.AccessKey = getEnvOrDefault("MINIO_ACCESS_KEY", cfg.Storage.AccessKey)
	cfg.Storage.SecretKey = getEnvOrDefault("MINIO_SECRET_KEY", cfg.Storage.SecretKey)
	cfg.Storage.Bucket = getEnvOrDefault("MINIO_BUCKET", cfg.Storage.Bucket)
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		cfg.Storage.UseSSL = v == "true"
	}

	if v := os.Getenv("S2X_MANIFEST_SOURCES"); v != "" {
		cfg.Library.Sources = splitList(v)
	}
	cfg.Library.ManifestFile = getEnvOrDefault("S2X_MANIFEST_FILE", cfg.Library.ManifestFile)

	if v := os.Getenv("S2X_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Poll.Interval = d
		}
	}
	if v := os.Getenv("S2X_POLL_MAX_FAILURES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Poll.MaxConsecutiveFailures = n
		}
	}

	cfg.Log.Level = getEnvOrDefault("S2X_LOG_LEVEL", cfg.Log.Level)
	cfg.ServeAddr = getEnvOrDefault("S2X_SERVE_ADDR", cfg.ServeAddr)
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
