package core

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

type fixedConfigProvider struct {
	cfg Config
}

func (p *fixedConfigProvider) Load(context.Context, Config) (Config, error) {
	return p.cfg, nil
}

type fixedOptionsResolver struct {
	cfg Config
}

func (r *fixedOptionsResolver) Resolve(Config, Config, Config) (Config, error) {
	return r.cfg, nil
}

type failingConfigProvider struct{}

func (failingConfigProvider) Load(context.Context, Config) (Config, error) {
	return Config{}, errors.New("config source unavailable")
}

func TestNewAccessLayer_DefaultDependencies(t *testing.T) {
	layer, err := NewAccessLayer(Config{}, WithTransport(&stubTransport{}))
	if err != nil {
		t.Fatalf("new access layer: %v", err)
	}
	deps := layer.Dependencies()
	if deps.Logger == nil {
		t.Fatalf("expected default logger")
	}
	if deps.LoggerProvider == nil {
		t.Fatalf("expected default logger provider")
	}
	if deps.ErrorMapper == nil {
		t.Fatalf("expected default error mapper")
	}
	if deps.ConfigProvider == nil {
		t.Fatalf("expected default config provider")
	}
	if deps.OptionsResolver == nil {
		t.Fatalf("expected default options resolver")
	}
	if _, ok := deps.CredentialStore.(*MemoryCredentialStore); !ok {
		t.Fatalf("expected in-memory credential store by default, got %T", deps.CredentialStore)
	}
	if _, ok := deps.MetricsRecorder.(NopMetricsRecorder); !ok {
		t.Fatalf("expected nop metrics recorder by default, got %T", deps.MetricsRecorder)
	}
	cfg := layer.Config()
	if cfg.ServiceName != "vaultra" || cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default config, got %#v", cfg)
	}
}

func TestNewAccessLayer_WithXOverrides(t *testing.T) {
	customLogger := stubLogger{}
	customProvider := stubLoggerProvider{logger: customLogger}
	customStore := NewMemoryCredentialStore()
	customMapper := func(err error) *goerrors.Error {
		return goerrors.New("mapped:"+err.Error(), goerrors.CategoryInternal)
	}
	resolver := &fixedOptionsResolver{cfg: Config{
		ServiceName: "custom",
		BaseURL:     "https://api.vaultra.test/api/v1",
		Store:       StoreConfig{Driver: StoreDriverSQLite, DSN: "file::memory:"},
	}}

	layer, err := NewAccessLayer(Config{},
		WithTransport(&stubTransport{}),
		WithLogger(customLogger),
		WithLoggerProvider(customProvider),
		WithErrorMapper(customMapper),
		WithCredentialStore(customStore),
		WithOptionsResolver(resolver),
	)
	if err != nil {
		t.Fatalf("new access layer: %v", err)
	}
	deps := layer.Dependencies()
	if _, ok := deps.Logger.(stubLogger); !ok {
		t.Fatalf("expected custom logger, got %T", deps.Logger)
	}
	if deps.CredentialStore != customStore {
		t.Fatalf("expected custom credential store")
	}
	if layer.Config().ServiceName != "custom" {
		t.Fatalf("expected resolver config, got %#v", layer.Config())
	}
}

func TestNewAccessLayer_ConfigLayeringPrecedence(t *testing.T) {
	provider := NewCfgxConfigProvider(NewStaticConfigLoader(map[string]any{
		"service_name": "from-config",
		"base_url":     "https://config.vaultra.test/api/v1",
		"store": map[string]any{
			"driver": StoreDriverPostgres,
			"dsn":    "postgres://localhost/vaultra",
		},
	}))

	layer, err := NewAccessLayer(Config{ServiceName: "from-runtime"},
		WithTransport(&stubTransport{}),
		WithConfigProvider(provider),
	)
	if err != nil {
		t.Fatalf("new access layer: %v", err)
	}

	cfg := layer.Config()
	if cfg.ServiceName != "from-runtime" {
		t.Fatalf("expected runtime value to override config/default, got %q", cfg.ServiceName)
	}
	if cfg.BaseURL != "https://config.vaultra.test/api/v1" {
		t.Fatalf("expected config layer base url, got %q", cfg.BaseURL)
	}
	if cfg.Store.Driver != StoreDriverPostgres {
		t.Fatalf("expected config layer store driver, got %q", cfg.Store.Driver)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Fatalf("expected default request timeout, got %s", cfg.RequestTimeout)
	}
}

func TestNewAccessLayer_ConfigFailureUsesErrorMapper(t *testing.T) {
	_, err := NewAccessLayer(Config{},
		WithTransport(&stubTransport{}),
		WithConfigProvider(failingConfigProvider{}),
		WithErrorMapper(func(err error) *goerrors.Error {
			return goerrors.New("mapped: "+err.Error(), goerrors.CategoryInternal).WithTextCode("MAPPED")
		}),
	)
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected mapped go-errors envelope, got %T (%v)", err, err)
	}
	if rich.TextCode != "MAPPED" {
		t.Fatalf("expected custom mapper to run, got %q", rich.TextCode)
	}
}

func TestNewAccessLayer_InvalidRuntimeConfigFails(t *testing.T) {
	_, err := NewAccessLayer(Config{BaseURL: "not a url"}, WithTransport(&stubTransport{}))
	if err == nil {
		t.Fatalf("expected invalid base url error")
	}
}
