// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	FrontendURL string `yaml:"frontend_url"` // base URL the callback redirects to
	PublicURL   string `yaml:"public_url"`   // externally reachable base of this API
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type PaymentConfig struct {
	Provider string `yaml:"provider"` // chapa | stripe
	Currency string `yaml:"currency"`
	Chapa    struct {
		SecretKey string `yaml:"secret_key"`
		BaseURL   string `yaml:"base_url"`
		// WebhookSecret signs server-to-server event deliveries; the webhook
		// endpoint rejects everything when it is unset.
		WebhookSecret string `yaml:"webhook_secret"`
	} `yaml:"chapa"`
	Stripe struct {
		SecretKey string `yaml:"secret_key"`
	} `yaml:"stripe"`
	RateLimit int `yaml:"rate_limit"` // initiations per user per window
}

type ReconcilerConfig struct {
	Interval   time.Duration `yaml:"interval"`
	StaleAfter time.Duration `yaml:"stale_after"`
}

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Auth       AuthConfig       `yaml:"auth"`
	Payment    PaymentConfig    `yaml:"payment"`
	Reconciler ReconcilerConfig `yaml:"reconciler"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Payment.Provider == "" {
		cfg.Payment.Provider = "chapa"
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = "ETB"
	}
	if cfg.Payment.Chapa.BaseURL == "" {
		cfg.Payment.Chapa.BaseURL = "https://api.chapa.co"
	}
	if cfg.Payment.RateLimit <= 0 {
		cfg.Payment.RateLimit = 5
	}
	if cfg.Reconciler.Interval <= 0 {
		cfg.Reconciler.Interval = time.Minute
	}
	if cfg.Reconciler.StaleAfter <= 0 {
		cfg.Reconciler.StaleAfter = 30 * time.Minute
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}
	if !dev {
		switch cfg.Payment.Provider {
		case "chapa":
			if cfg.Payment.Chapa.SecretKey == "" {
				return nil, errors.New("payment.chapa.secret_key is required")
			}
		case "stripe":
			if cfg.Payment.Stripe.SecretKey == "" {
				return nil, errors.New("payment.stripe.secret_key is required")
			}
		default:
			return nil, fmt.Errorf("unknown payment.provider %q", cfg.Payment.Provider)
		}
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
