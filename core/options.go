package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-config/cfgx"
	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
)

type ErrorMapper func(err error) *goerrors.Error

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type accessLayerBuilder struct {
	runtimeConfig   Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	credentialStore CredentialStore
	transport       TransportAdapter
	requestID       func() string
}

type Option func(*accessLayerBuilder)

func WithLogger(logger Logger) Option {
	return func(b *accessLayerBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *accessLayerBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(b *accessLayerBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithErrorMapper(mapper ErrorMapper) Option {
	return func(b *accessLayerBuilder) {
		b.errorMapper = mapper
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *accessLayerBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *accessLayerBuilder) {
		b.optionsResolver = resolver
	}
}

func WithCredentialStore(store CredentialStore) Option {
	return func(b *accessLayerBuilder) {
		b.credentialStore = store
	}
}

func WithTransport(adapter TransportAdapter) Option {
	return func(b *accessLayerBuilder) {
		b.transport = adapter
	}
}

// WithRequestIDGenerator replaces the generator used for X-Request-ID.
func WithRequestIDGenerator(fn func() string) Option {
	return func(b *accessLayerBuilder) {
		b.requestID = fn
	}
}

func defaultAccessLayerBuilder(runtime Config) accessLayerBuilder {
	loggerProvider, logger := glog.Resolve("vaultra", nil, nil)
	return accessLayerBuilder{
		runtimeConfig:   runtime,
		loggerProvider:  loggerProvider,
		logger:          logger,
		metricsRecorder: NopMetricsRecorder{},
		errorMapper:     defaultErrorMapper,
		configProvider:  NewCfgxConfigProvider(nil),
		optionsResolver: GoOptionsResolver{},
	}
}

type staticRawConfigLoader struct {
	Values map[string]any
}

func (l staticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.Values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.Values))
	for key, value := range l.Values {
		out[key] = value
	}
	return out, nil
}

// NewStaticConfigLoader serves a fixed raw config map.
func NewStaticConfigLoader(values map[string]any) RawConfigLoader {
	return staticRawConfigLoader{Values: values}
}

type clientEnv struct {
	BaseURL        string        `env:"VAULTRA_API_URL"`
	RequestTimeout time.Duration `env:"VAULTRA_REQUEST_TIMEOUT"`
	UserAgent      string        `env:"VAULTRA_USER_AGENT"`
	StoreDriver    string        `env:"VAULTRA_STORE_DRIVER"`
	StoreDSN       string        `env:"VAULTRA_STORE_DSN"`
}

// EnvConfigLoader reads client settings from the environment. Environment,
// when set, replaces the process environment.
type EnvConfigLoader struct {
	Environment map[string]string
}

func (l EnvConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	var raw clientEnv
	var err error
	if l.Environment != nil {
		err = env.ParseWithOptions(&raw, env.Options{Environment: l.Environment})
	} else {
		err = env.Parse(&raw)
	}
	if err != nil {
		return nil, fmt.Errorf("core: parse env: %w", err)
	}

	out := map[string]any{}
	if value := strings.TrimSpace(raw.BaseURL); value != "" {
		out["base_url"] = value
	}
	if raw.RequestTimeout > 0 {
		out["request_timeout"] = raw.RequestTimeout
	}
	if value := strings.TrimSpace(raw.UserAgent); value != "" {
		out["user_agent"] = value
	}
	store := map[string]any{}
	if value := strings.TrimSpace(raw.StoreDriver); value != "" {
		store["driver"] = value
	}
	if value := strings.TrimSpace(raw.StoreDSN); value != "" {
		store["dsn"] = value
	}
	if len(store) > 0 {
		out["store"] = store
	}
	return out, nil
}

type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	loader := p.Loader
	if loader == nil {
		loader = staticRawConfigLoader{}
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	cfg, err := cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GoOptionsResolver layers defaults, loaded config and runtime overrides, in
// that order of precedence, and validates the merged result.
type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	stack, err := opts.NewStack(
		opts.NewLayer(opts.NewScope("defaults", 0), configToLayerMap(defaults, true), opts.WithSnapshotID[map[string]any]("defaults")),
		opts.NewLayer(opts.NewScope("config", 10), configToLayerMap(loaded, false), opts.WithSnapshotID[map[string]any]("config")),
		opts.NewLayer(opts.NewScope("runtime", 20), configToLayerMap(runtime, false), opts.WithSnapshotID[map[string]any]("runtime")),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: build config layers: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: merge config layers: %w", err)
	}
	return cfgx.Build[Config](merged.Value,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
}

// configToLayerMap keeps only set fields unless zero is true, so a blank
// override never masks a lower layer.
func configToLayerMap(cfg Config, zero bool) map[string]any {
	layer := map[string]any{}
	putString(layer, "service_name", cfg.ServiceName, zero)
	putString(layer, "base_url", cfg.BaseURL, zero)
	putString(layer, "user_agent", cfg.UserAgent, zero)
	if zero || cfg.RequestTimeout > 0 {
		layer["request_timeout"] = cfg.RequestTimeout
	}

	store := map[string]any{}
	putString(store, "driver", cfg.Store.Driver, zero)
	putString(store, "dsn", cfg.Store.DSN, zero)
	if len(store) > 0 {
		layer["store"] = store
	}
	return layer
}

func putString(dst map[string]any, key, value string, zero bool) {
	if zero || strings.TrimSpace(value) != "" {
		dst[key] = value
	}
}

// ResolveConfig merges defaults, loaded config and runtime overrides the
// same way NewAccessLayer does, for callers that need the config before
// building the access layer (for example to open the credential store).
func ResolveConfig(ctx context.Context, provider ConfigProvider, runtime Config) (Config, error) {
	if provider == nil {
		provider = NewCfgxConfigProvider(nil)
	}
	defaults := DefaultConfig()
	loaded, err := provider.Load(ctx, defaults)
	if err != nil {
		return Config{}, mapBuildError(defaultErrorMapper, err)
	}
	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		return Config{}, mapBuildError(defaultErrorMapper, err)
	}
	return resolved, nil
}
