package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the simulator.
type Config struct {
	App          AppConfig
	Logger       LoggerConfig
	State        StateConfig
	Paging       PagingConfig
	Notification NotificationConfig
}

// AppConfig identifies the running instance.
type AppConfig struct {
	Name string `env:"APP_NAME" envDefault:"helpdesk-sim"`
	Env  string `env:"APP_ENV" envDefault:"development"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level    string `env:"LOG_LEVEL" envDefault:"info"`
	Encoding string `env:"LOG_ENCODING" envDefault:"json"`
}

// StateConfig controls snapshot persistence and seeding.
type StateConfig struct {
	Path string `env:"STATE_PATH" envDefault:"helpdesk-state.json"`
	Seed bool   `env:"STATE_SEED" envDefault:"true"`
}

// PagingConfig bounds list operations.
type PagingConfig struct {
	PerPageCap int `env:"PAGE_SIZE_CAP" envDefault:"100"`
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string `env:"NOTIFY_EMAIL_FROM" envDefault:"noreply@example.com"`
	WebhookURL string `env:"NOTIFY_WEBHOOK_URL"`
}

// Load reads configuration from the environment, after sourcing a .env
// file when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	if cfg.Paging.PerPageCap < 1 {
		return nil, fmt.Errorf("PAGE_SIZE_CAP must be at least 1, got %d", cfg.Paging.PerPageCap)
	}
	return cfg, nil
}
