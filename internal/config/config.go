// Package config loads the portfolio server settings from .env, an optional
// YAML file and the environment, in that order of precedence (lowest first).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort        = "8081"
	DefaultDatabaseURL = "portfolio.db"
	DefaultCacheTTL    = 5 * time.Minute
)

// Config holds every server setting.
type Config struct {
	Port        string `yaml:"port"`
	DatabaseURL string `yaml:"databaseURL"`
	LogLevel    string `yaml:"logLevel"`

	FrontendURL  string `yaml:"frontendURL"`
	FrontendURL2 string `yaml:"frontendURL2"`

	RevalidationURL    string `yaml:"revalidationURL"`
	RevalidationSecret string `yaml:"revalidationSecret"`

	CacheTTL      time.Duration `yaml:"cacheTTL"`
	RedisAddr     string        `yaml:"redisAddr"`
	RedisPassword string        `yaml:"redisPassword"`

	AdminRoutes bool   `yaml:"adminRoutes"`
	SeedFile    string `yaml:"seedFile"`
}

// AllowedOrigins returns the configured frontend origins.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range []string{c.FrontendURL, c.FrontendURL2} {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// InMemory reports whether the server should run without a database.
func (c Config) InMemory() bool {
	return strings.EqualFold(c.DatabaseURL, "memory")
}

func defaults() Config {
	return Config{
		Port:        DefaultPort,
		DatabaseURL: DefaultDatabaseURL,
		LogLevel:    "info",
		CacheTTL:    DefaultCacheTTL,
	}
}

// Load reads .env from the working directory when present, then the YAML
// file at path (skipped when path is empty), then applies environment
// overrides.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"PORT", &cfg.Port},
		{"DATABASE_URL", &cfg.DatabaseURL},
		{"LOG_LEVEL", &cfg.LogLevel},
		{"FRONTEND_URL", &cfg.FrontendURL},
		{"FRONTEND_URL2", &cfg.FrontendURL2},
		{"REVALIDATION_URL", &cfg.RevalidationURL},
		{"REVALIDATION_SECRET", &cfg.RevalidationSecret},
		{"REDIS_ADDR", &cfg.RedisAddr},
		{"REDIS_PASSWORD", &cfg.RedisPassword},
		{"SEED_FILE", &cfg.SeedFile},
	}
	for _, s := range strs {
		if v := os.Getenv(s.key); v != "" {
			*s.dst = v
		}
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = d
	}
	if v := os.Getenv("ADMIN_ROUTES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: ADMIN_ROUTES: %w", err)
		}
		cfg.AdminRoutes = b
	}
	return nil
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.Port) == "" {
		return errors.New("config: port is required")
	}
	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return fmt.Errorf("config: invalid port %q", cfg.Port)
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return errors.New("config: databaseURL is required (set in config.yaml or DATABASE_URL)")
	}
	if cfg.CacheTTL < 0 {
		return errors.New("config: cacheTTL must be >= 0")
	}
	if cfg.RevalidationURL != "" && cfg.RevalidationSecret == "" {
		return errors.New("config: REVALIDATION_SECRET is required when REVALIDATION_URL is set")
	}
	return nil
}
