package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-vaultra/core"
)

const KindREST = "rest"

const defaultMaxResponseBytes int64 = 10 << 20

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RESTAdapter performs one HTTP round trip per Do call. It never retries and
// sends the URL exactly as given, so the raw query reaches the backend in the
// order the endpoint wrapper built it.
type RESTAdapter struct {
	Client               HTTPDoer
	DefaultHeaders       map[string]string
	MaxResponseBodyBytes int64
}

func NewRESTAdapter(client HTTPDoer) *RESTAdapter {
	if client == nil {
		client = &http.Client{Timeout: core.DefaultRequestTimeout}
	}
	return &RESTAdapter{
		Client:               client,
		DefaultHeaders:       map[string]string{},
		MaxResponseBodyBytes: defaultMaxResponseBytes,
	}
}

// NewRESTAdapterFromConfig bounds every call by cfg.RequestTimeout. This is
// also how long a hung shared read keeps its in-flight entry.
func NewRESTAdapterFromConfig(cfg core.Config) *RESTAdapter {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = core.DefaultRequestTimeout
	}
	adapter := NewRESTAdapter(&http.Client{Timeout: timeout})
	if ua := strings.TrimSpace(cfg.UserAgent); ua != "" {
		adapter.DefaultHeaders[core.HeaderUserAgent] = ua
	}
	return adapter
}

func (*RESTAdapter) Kind() string {
	return KindREST
}

func (a *RESTAdapter) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if a == nil || a.Client == nil {
		return core.TransportResponse{}, failureInternal.errorf(nil,
			"transport: rest adapter requires an http client",
			map[string]any{"adapter": KindREST})
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := a.newRequest(ctx, req)
	if err != nil {
		return core.TransportResponse{}, err
	}

	startedAt := time.Now()
	httpRes, err := a.Client.Do(httpReq)
	if err != nil {
		return core.TransportResponse{}, failureUpstream.errorf(err, "transport: execute http request", map[string]any{
			"adapter": KindREST,
			"method":  httpReq.Method,
			"url":     httpReq.URL.String(),
		})
	}
	defer httpRes.Body.Close()

	payload, err := a.readBody(httpRes)
	if err != nil {
		return core.TransportResponse{}, err
	}

	return core.TransportResponse{
		StatusCode: httpRes.StatusCode,
		Headers:    flattenHeaders(httpRes.Header),
		Body:       payload,
		Metadata: map[string]any{
			"kind":        KindREST,
			"duration_ms": time.Since(startedAt).Milliseconds(),
		},
	}, nil
}

func (a *RESTAdapter) newRequest(ctx context.Context, req core.TransportRequest) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		return nil, failureBadRequest.errorf(nil, "transport: request url is required",
			map[string]any{"adapter": KindREST})
	}
	if _, err := url.Parse(rawURL); err != nil {
		return nil, failureBadRequest.errorf(err, "transport: invalid request url",
			map[string]any{"adapter": KindREST, "url": rawURL})
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, failureBadRequest.errorf(err, "transport: create http request",
			map[string]any{"adapter": KindREST, "method": method, "url": rawURL})
	}
	// per-request headers win over adapter defaults
	setHeaders(httpReq.Header, a.DefaultHeaders)
	setHeaders(httpReq.Header, req.Headers)
	return httpReq, nil
}

func (a *RESTAdapter) readBody(res *http.Response) ([]byte, error) {
	limit := a.MaxResponseBodyBytes
	if limit <= 0 {
		limit = defaultMaxResponseBytes
	}
	payload, err := io.ReadAll(io.LimitReader(res.Body, limit+1))
	if err != nil {
		return nil, failureUpstream.errorf(err, "transport: read response body",
			map[string]any{"adapter": KindREST, "status_code": res.StatusCode})
	}
	if int64(len(payload)) > limit {
		return nil, failureUpstream.errorf(nil,
			fmt.Sprintf("transport: response body exceeds limit of %d bytes", limit),
			map[string]any{"adapter": KindREST, "status_code": res.StatusCode, "response_limit_b": limit})
	}
	return payload, nil
}

func setHeaders(dst http.Header, src map[string]string) {
	for key, value := range src {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		dst.Set(key, strings.TrimSpace(value))
	}
}

func flattenHeaders(headers http.Header) map[string]string {
	flat := make(map[string]string, len(headers))
	for key, values := range headers {
		flat[key] = strings.Join(values, ",")
	}
	return flat
}

var _ core.TransportAdapter = (*RESTAdapter)(nil)
