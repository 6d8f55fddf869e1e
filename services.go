package vaultra

import (
	"github.com/goliatone/go-vaultra/api"
	"github.com/goliatone/go-vaultra/core"
	"github.com/goliatone/go-vaultra/transport"
)

type Config = core.Config

type StoreConfig = core.StoreConfig

type Option = core.Option

type AccessLayer = core.AccessLayer

type AccessLayerDependencies = core.AccessLayerDependencies
type CredentialStore = core.CredentialStore
type TransportAdapter = core.TransportAdapter
type MetricsRecorder = core.MetricsRecorder
type Navigator = core.Navigator
type NavigatorFunc = core.NavigatorFunc

type Requester = core.Requester
type RequestOptions = core.RequestOptions
type Result = core.Result

type Client = api.Client
type ClientOption = api.ClientOption

var (
	WithLogger             = core.WithLogger
	WithLoggerProvider     = core.WithLoggerProvider
	WithMetricsRecorder    = core.WithMetricsRecorder
	WithErrorMapper        = core.WithErrorMapper
	WithConfigProvider     = core.WithConfigProvider
	WithOptionsResolver    = core.WithOptionsResolver
	WithCredentialStore    = core.WithCredentialStore
	WithTransport          = core.WithTransport
	WithRequestIDGenerator = core.WithRequestIDGenerator

	WithNavigator = api.WithNavigator
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

// NewAccessLayer builds an access layer over the REST transport unless opts
// supply another one.
func NewAccessLayer(cfg Config, opts ...Option) (*AccessLayer, error) {
	withDefaults := make([]Option, 0, len(opts)+1)
	withDefaults = append(withDefaults, core.WithTransport(transport.NewRESTAdapterFromConfig(cfg)))
	withDefaults = append(withDefaults, opts...)
	return core.NewAccessLayer(cfg, withDefaults...)
}

// New returns an endpoint client sharing one access layer and its credential
// store.
func New(cfg Config, opts ...Option) (*Client, error) {
	layer, err := NewAccessLayer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return api.NewClientFromAccessLayer(layer)
}

func NewClient(layer *AccessLayer, opts ...ClientOption) (*Client, error) {
	return api.NewClientFromAccessLayer(layer, opts...)
}

func Setup(cfg Config, opts ...Option) (*Client, error) {
	return New(cfg, opts...)
}
