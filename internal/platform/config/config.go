package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr               string
	DatabaseURL        string
	Environment        string
	MigrationsDir      string
	RunMigrations      bool
	RunSeed            bool
	MaxBodyBytes       int64
	RateLimitPerMinute int
	MetricsEnabled     bool
}

// fileConfig is the optional YAML overlay. Environment variables always win
// over file values.
type fileConfig struct {
	Addr               string `yaml:"addr"`
	DatabaseURL        string `yaml:"database_url"`
	Environment        string `yaml:"environment"`
	MigrationsDir      string `yaml:"migrations_dir"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

// Load builds the config from defaults, then the optional CONFIG_FILE YAML,
// then environment variables.
func Load() Config {
	cfg := Config{
		Addr:               ":8080",
		Environment:        "development",
		MigrationsDir:      "migrations",
		RunMigrations:      true,
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 60,
		MetricsEnabled:     true,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if overlay, err := loadFile(path); err == nil {
			applyOverlay(&cfg, overlay)
		}
	}

	cfg.Addr = getEnv("APP_ADDR", cfg.Addr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.Environment = getEnv("APP_ENV", cfg.Environment)
	cfg.MigrationsDir = getEnv("MIGRATIONS_DIR", cfg.MigrationsDir)
	cfg.RunMigrations = getEnvBool("RUN_MIGRATIONS", cfg.RunMigrations)
	cfg.RunSeed = getEnvBool("RUN_SEED", cfg.RunSeed)
	cfg.MaxBodyBytes = int64(getEnvInt("MAX_BODY_BYTES", int(cfg.MaxBodyBytes)))
	cfg.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMinute)
	cfg.MetricsEnabled = getEnvBool("METRICS_ENABLED", cfg.MetricsEnabled)

	return cfg
}

func loadFile(path string) (fileConfig, error) {
	var overlay fileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return overlay, err
	}
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return overlay, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return overlay, nil
}

func applyOverlay(cfg *Config, overlay fileConfig) {
	if overlay.Addr != "" {
		cfg.Addr = overlay.Addr
	}
	if overlay.DatabaseURL != "" {
		cfg.DatabaseURL = overlay.DatabaseURL
	}
	if overlay.Environment != "" {
		cfg.Environment = overlay.Environment
	}
	if overlay.MigrationsDir != "" {
		cfg.MigrationsDir = overlay.MigrationsDir
	}
	if overlay.RateLimitPerMinute > 0 {
		cfg.RateLimitPerMinute = overlay.RateLimitPerMinute
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("APP_ADDR must not be empty")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
