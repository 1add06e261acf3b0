package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Client configures the snooze command line client. It is read from the
// environment only; command flags override individual fields.
type Client struct {
	BaseURL         string        `env:"SNOOZE_BASE_URL"    envDefault:"https://hack-or-snooze-v3.herokuapp.com"`
	Timeout         time.Duration `env:"SNOOZE_TIMEOUT"     envDefault:"15s"`
	CredentialsPath string        `env:"SNOOZE_CREDENTIALS"`
	LogLevel        string        `env:"SNOOZE_LOG_LEVEL"   envDefault:"warn"`
}

func ParseClient() (*Client, error) {
	var cfg Client
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.CredentialsPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("locate config dir: %w", err)
		}
		cfg.CredentialsPath = filepath.Join(dir, "snooze", "credentials.yaml")
	}

	return &cfg, nil
}
