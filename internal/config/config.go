package config

import (
	"fmt"
	"os"
)

// Config is the application-wide configuration. Database settings are read
// separately by internal/infra/db from DATABASE_URL / POSTGRES_*.
type Config struct {
	Port string

	StripeSecretKey     string
	StripeWebhookSecret string

	RedisAddr string

	// comma-separated broker list; empty disables event publishing
	KafkaBrokers string
	KafkaTopic   string

	DownloadBaseURL string

	GoEnv string // dev/prod
}

// Load reads config from env vars.
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		KafkaBrokers: os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:   os.Getenv("KAFKA_TOPIC"),

		DownloadBaseURL: os.Getenv("DOWNLOAD_BASE_URL"),

		GoEnv: os.Getenv("GO_ENV"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}

	if cfg.StripeSecretKey == "" {
		return Config{}, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.StripeWebhookSecret == "" {
		return Config{}, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}
	if cfg.RedisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR is required")
	}
	if cfg.DownloadBaseURL == "" {
		return Config{}, fmt.Errorf("DOWNLOAD_BASE_URL is required")
	}
	if cfg.KafkaBrokers != "" && cfg.KafkaTopic == "" {
		return Config{}, fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}
