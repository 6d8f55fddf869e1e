package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-ID"
	HeaderUserAgent     = "User-Agent"

	contentTypeJSON = "application/json"
)

// Requester is the contract every endpoint wrapper depends on.
type Requester interface {
	Request(ctx context.Context, endpointPath string, opts RequestOptions) (*Result, error)
}

type RequestOptions struct {
	// Method defaults to GET.
	Method string
	// Body is sent verbatim when it is []byte, json.RawMessage or string and
	// JSON encoded otherwise.
	Body    any
	Headers map[string]string
}

// Result is a successful response. Callers that share a deduplicated read
// receive the same *Result.
type Result struct {
	StatusCode int
	Header     map[string]string
	// Payload is nil for 204 and empty bodies.
	Payload   json.RawMessage
	RequestID string
}

func (r *Result) Empty() bool {
	return r == nil || len(r.Payload) == 0
}

// Decode unmarshals the payload into target. An empty payload leaves target
// untouched.
func (r *Result) Decode(target any) error {
	if r.Empty() {
		return nil
	}
	if err := json.Unmarshal(r.Payload, target); err != nil {
		return decodeFailure(err, r.StatusCode, r.RequestID)
	}
	return nil
}

func DecodeResult[T any](result *Result) (T, error) {
	var out T
	if err := result.Decode(&out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// RequestJSON issues the request and decodes the payload into T.
func RequestJSON[T any](ctx context.Context, requester Requester, endpointPath string, opts RequestOptions) (T, error) {
	var zero T
	if requester == nil {
		return zero, clientError("core: requester is required", goerrors.CategoryInternal,
			http.StatusInternalServerError, ClientErrorInternal, nil)
	}
	result, err := requester.Request(ctx, endpointPath, opts)
	if err != nil {
		return zero, err
	}
	return DecodeResult[T](result)
}

// AccessLayer is the single entry point for network I/O. It injects the
// bearer credential, normalizes responses, and shares one network call among
// concurrent GETs for the same path and query.
type AccessLayer struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	credentials     CredentialStore
	transport       TransportAdapter
	requestID       func() string
	reads           *sharedReads
}

type AccessLayerDependencies struct {
	Logger          Logger
	LoggerProvider  LoggerProvider
	MetricsRecorder MetricsRecorder
	ErrorMapper     ErrorMapper
	ConfigProvider  ConfigProvider
	OptionsResolver OptionsResolver
	CredentialStore CredentialStore
	Transport       TransportAdapter
}

func NewAccessLayer(cfg Config, opts ...Option) (*AccessLayer, error) {
	builder := defaultAccessLayerBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("vaultra", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("vaultra.access"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.credentialStore == nil {
		builder.credentialStore = NewMemoryCredentialStore()
	}
	if builder.requestID == nil {
		builder.requestID = uuid.NewString
	}
	if builder.transport == nil {
		return nil, mapBuildError(builder.errorMapper, fmt.Errorf("core: transport adapter is required"))
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	return &AccessLayer{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorMapper:     builder.errorMapper,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		credentials:     builder.credentialStore,
		transport:       builder.transport,
		requestID:       builder.requestID,
		reads:           newSharedReads(),
	}, nil
}

func Setup(cfg Config, opts ...Option) (*AccessLayer, error) {
	return NewAccessLayer(cfg, opts...)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (a *AccessLayer) Config() Config {
	if a == nil {
		return Config{}
	}
	return a.config
}

func (a *AccessLayer) Credentials() CredentialStore {
	if a == nil {
		return nil
	}
	return a.credentials
}

func (a *AccessLayer) Dependencies() AccessLayerDependencies {
	if a == nil {
		return AccessLayerDependencies{}
	}
	return AccessLayerDependencies{
		Logger:          a.logger,
		LoggerProvider:  a.loggerProvider,
		MetricsRecorder: a.metricsRecorder,
		ErrorMapper:     a.errorMapper,
		ConfigProvider:  a.configProvider,
		OptionsResolver: a.optionsResolver,
		CredentialStore: a.credentials,
		Transport:       a.transport,
	}
}

// Waiters reports how many callers are currently waiting on a shared read
// for key. It is zero once every caller has returned.
func (a *AccessLayer) Waiters(key string) int {
	if a == nil || a.reads == nil {
		return 0
	}
	return a.reads.waiters(key)
}

// Request sends a request to endpointPath, relative to the configured base
// URL. Concurrent GETs for the same endpointPath, compared verbatim including
// the query string, share one network call and observe the same outcome. The
// entry is dropped as soon as that call settles. Other methods always issue
// their own call.
func (a *AccessLayer) Request(ctx context.Context, endpointPath string, opts RequestOptions) (*Result, error) {
	if a == nil || a.transport == nil {
		return nil, clientError(
			"core: access layer requires a transport adapter",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			ClientErrorInternal,
			nil,
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method := normalizeMethod(opts.Method)
	body, err := encodeBody(opts.Body)
	if err != nil {
		return nil, clientWrapError(
			err,
			goerrors.CategoryBadInput,
			"core: encode request body",
			http.StatusBadRequest,
			ClientErrorBadInput,
			map[string]any{"method": method, "path": endpointPath},
		)
	}

	if method != http.MethodGet {
		return a.dispatch(ctx, method, endpointPath, body, opts.Headers, false)
	}
	return a.sharedRead(ctx, endpointPath, body, opts.Headers)
}

func (a *AccessLayer) sharedRead(ctx context.Context, key string, body []byte, headers map[string]string) (*Result, error) {
	// The shared call outlives any single caller; a caller that gives up
	// only stops waiting.
	detached := context.WithoutCancel(ctx)
	led := false
	ch := a.reads.group.DoChan(key, func() (value any, err error) {
		led = true
		defer func() {
			if recovered := recover(); recovered != nil {
				value, err = (*Result)(nil), panicFailure(recovered, key)
			}
		}()
		result, err := a.dispatch(detached, http.MethodGet, key, body, headers, true)
		return result, err
	})
	a.reads.enter(key)
	defer a.reads.leave(key)

	select {
	case shared := <-ch:
		// led is only written by the call that produced this outcome
		if shared.Shared && !led {
			a.observeJoin(ctx, key)
		}
		result, _ := shared.Val.(*Result)
		return result, shared.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (a *AccessLayer) dispatch(
	ctx context.Context,
	method string,
	endpointPath string,
	body []byte,
	overrides map[string]string,
	shared bool,
) (*Result, error) {
	headers := a.composeHeaders(overrides)
	requestID := headers[HeaderRequestID]
	startedAt := time.Now().UTC()

	response, err := a.transport.Do(ctx, TransportRequest{
		Method:  method,
		URL:     a.resolveURL(endpointPath),
		Headers: headers,
		Body:    body,
		Metadata: map[string]any{
			"request_id": requestID,
			"shared":     shared,
		},
	})
	if err != nil {
		err = transportFailure(err, method, endpointPath, requestID)
		a.observeRequest(ctx, startedAt, requestSummary{
			method:    method,
			path:      endpointPath,
			requestID: requestID,
			shared:    shared,
		}, err)
		return nil, err
	}

	result, err := interpretResponse(response, requestID)
	a.observeRequest(ctx, startedAt, requestSummary{
		method:     method,
		path:       endpointPath,
		requestID:  requestID,
		statusCode: response.StatusCode,
		shared:     shared,
	}, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// composeHeaders applies the JSON content type, the bearer credential when
// present, and then caller overrides, keyed by canonical header name.
func (a *AccessLayer) composeHeaders(overrides map[string]string) map[string]string {
	headers := map[string]string{
		HeaderContentType: contentTypeJSON,
	}
	if agent := strings.TrimSpace(a.config.UserAgent); agent != "" {
		headers[HeaderUserAgent] = agent
	}
	if a.credentials != nil {
		if token, ok := a.credentials.Credential(); ok {
			headers[HeaderAuthorization] = "Bearer " + token
		}
	}
	for key, value := range overrides {
		trimmed := strings.TrimSpace(key)
		if trimmed == "" {
			continue
		}
		headers[http.CanonicalHeaderKey(trimmed)] = value
	}
	if strings.TrimSpace(headers[HeaderRequestID]) == "" && a.requestID != nil {
		headers[HeaderRequestID] = a.requestID()
	}
	return headers
}

func (a *AccessLayer) resolveURL(endpointPath string) string {
	trimmed := strings.TrimSpace(endpointPath)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return trimmed
	}
	base := strings.TrimRight(strings.TrimSpace(a.config.BaseURL), "/")
	if trimmed != "" && !strings.HasPrefix(trimmed, "/") && !strings.HasPrefix(trimmed, "?") {
		trimmed = "/" + trimmed
	}
	return base + trimmed
}

func interpretResponse(response TransportResponse, requestID string) (*Result, error) {
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, responseFailure(response.StatusCode, response.Body, requestID)
	}

	result := &Result{
		StatusCode: response.StatusCode,
		Header:     response.Headers,
		RequestID:  requestID,
	}
	if response.StatusCode == http.StatusNoContent {
		return result, nil
	}
	trimmed := strings.TrimSpace(string(response.Body))
	if trimmed == "" {
		return nil, decodeFailure(fmt.Errorf("core: response body is empty"), response.StatusCode, requestID)
	}
	if !json.Valid([]byte(trimmed)) {
		return nil, decodeFailure(fmt.Errorf("core: response body is not valid json"), response.StatusCode, requestID)
	}
	result.Payload = json.RawMessage(trimmed)
	return result, nil
}

func transportFailure(err error, method string, endpointPath string, requestID string) error {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return err
	}
	return clientWrapError(
		err,
		goerrors.CategoryExternal,
		"core: request transport failed",
		http.StatusBadGateway,
		ClientErrorTransportFailure,
		map[string]any{"method": method, "path": endpointPath, "request_id": requestID},
	)
}

func decodeFailure(err error, statusCode int, requestID string) error {
	metadata := map[string]any{"status_code": statusCode}
	if requestID != "" {
		metadata["request_id"] = requestID
	}
	return clientWrapError(
		err,
		goerrors.CategoryExternal,
		"core: decode response body",
		http.StatusBadGateway,
		ClientErrorDecodeFailure,
		metadata,
	)
}

func normalizeMethod(method string) string {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return http.MethodGet
	}
	return method
}

func encodeBody(body any) ([]byte, error) {
	switch typed := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return typed, nil
	case json.RawMessage:
		return []byte(typed), nil
	case string:
		return []byte(typed), nil
	default:
		return json.Marshal(typed)
	}
}
