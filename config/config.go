package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type AppEnv string

const (
	AppEnvDev      AppEnv = "dev"
	AppEnvProd     AppEnv = "prod"
	AppEnvMVPCanon AppEnv = "mvp_canon"
)

// ParseAppEnv normalises APP_ENV. Unknown values fall back to dev.
func ParseAppEnv(raw string) AppEnv {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "prod":
		return AppEnvProd
	case "mvp_canon", "mvp-canon":
		return AppEnvMVPCanon
	default:
		return AppEnvDev
	}
}

type StateBackend string

const (
	StateBackendMemory StateBackend = "memory"
	StateBackendSQL    StateBackend = "sql"
	StateBackendRedis  StateBackend = "redis"
)

type R2Config struct {
	AccountID       string `env:"CLOUDFLARE_ACCOUNT_ID"`
	AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"R2_ACCESS_KEY_SECRET"`
	Bucket          string `env:"R2_BUCKET_NAME"`
	CDNBaseURL      string `env:"CDN_BASE_URL"`
}

type Config struct {
	RawAppEnv           string        `env:"APP_ENV" envDefault:"dev"`
	AdminAPIKey         string        `env:"ADMIN_API_KEY"`
	Port                string        `env:"PORT" envDefault:"8000"`
	DatabaseURL         string        `env:"DATABASE_URL" envDefault:"sqlite:synthara.db"`
	AllowedOrigins      []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	StateBackend        StateBackend  `env:"STATE_BACKEND" envDefault:"memory"`
	RedisAddr           string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	TicketSweepInterval time.Duration `env:"TICKET_SWEEP_INTERVAL" envDefault:"0"`
	R2                  R2Config
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}
	return Parse()
}

func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
	}
	switch cfg.StateBackend {
	case StateBackendMemory, StateBackendSQL, StateBackendRedis:
	default:
		return nil, fmt.Errorf("unsupported STATE_BACKEND %q", cfg.StateBackend)
	}
	return &cfg, nil
}

func (c *Config) AppEnv() AppEnv {
	return ParseAppEnv(c.RawAppEnv)
}

func (c *Config) IsDev() bool {
	return c.AppEnv() == AppEnvDev
}

// IsCanonical is true for environments where writes require authentication.
func (c *Config) IsCanonical() bool {
	e := c.AppEnv()
	return e == AppEnvProd || e == AppEnvMVPCanon
}

func (c *Config) R2Enabled() bool {
	return c.R2.AccountID != "" && c.R2.AccessKeyID != "" && c.R2.Bucket != ""
}

func (c *Config) OriginsHeader() string {
	return strings.Join(c.AllowedOrigins, ",")
}
