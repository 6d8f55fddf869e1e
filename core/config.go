package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL        = "http://localhost:8000/api/v1"
	DefaultRequestTimeout = 30 * time.Second

	StoreDriverSQLite   = "sqlite3"
	StoreDriverPostgres = "postgres"
)

type StoreConfig struct {
	Driver string `koanf:"driver" mapstructure:"driver"`
	DSN    string `koanf:"dsn" mapstructure:"dsn"`
}

type Config struct {
	ServiceName    string        `koanf:"service_name" mapstructure:"service_name"`
	BaseURL        string        `koanf:"base_url" mapstructure:"base_url"`
	RequestTimeout time.Duration `koanf:"request_timeout" mapstructure:"request_timeout"`
	UserAgent      string        `koanf:"user_agent" mapstructure:"user_agent"`
	Store          StoreConfig   `koanf:"store" mapstructure:"store"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName:    "vaultra",
		BaseURL:        DefaultBaseURL,
		RequestTimeout: DefaultRequestTimeout,
		UserAgent:      "go-vaultra",
		Store: StoreConfig{
			Driver: StoreDriverSQLite,
			DSN:    "file:vaultra.db?_foreign_keys=on",
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("core: base_url is required")
	}
	parsed, err := url.Parse(strings.TrimSpace(c.BaseURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("core: base_url %q is invalid", c.BaseURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("core: request_timeout must not be negative")
	}
	switch strings.TrimSpace(c.Store.Driver) {
	case "", StoreDriverSQLite, StoreDriverPostgres:
	default:
		return fmt.Errorf("core: store driver %q is invalid", c.Store.Driver)
	}
	return nil
}
