package prometheus

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-vaultra/core"
)

func TestRecorder_RequestCounterAndHistogram(t *testing.T) {
	recorder := NewRecorder("")
	tags := map[string]string{"method": "GET", "status": "success", "status_code": "200"}

	recorder.IncCounter(context.Background(), core.MetricRequestTotal, 1, tags)
	recorder.IncCounter(context.Background(), core.MetricRequestTotal, 2, tags)
	recorder.ObserveHistogram(context.Background(), core.MetricRequestDuration, 12, tags)

	got := testutil.ToFloat64(recorder.requestTotal.WithLabelValues("GET", "success", "200"))
	if got != 3 {
		t.Fatalf("expected request counter 3, got %v", got)
	}
	if count := testutil.CollectAndCount(recorder.requestDuration); count != 1 {
		t.Fatalf("expected one histogram series, got %d", count)
	}
}

func TestRecorder_DeduplicatedCounter(t *testing.T) {
	recorder := NewRecorder("vaultra")
	recorder.IncCounter(context.Background(), core.MetricRequestDeduplicated, 1, map[string]string{"method": "GET"})

	if got := testutil.ToFloat64(recorder.deduplicated.WithLabelValues("GET")); got != 1 {
		t.Fatalf("expected dedup counter 1, got %v", got)
	}
}

func TestRecorder_IgnoresUnknownMetricsAndMissingTags(t *testing.T) {
	recorder := NewRecorder("vaultra")
	recorder.IncCounter(context.Background(), "vaultra.unknown", 1, nil)
	recorder.IncCounter(context.Background(), core.MetricRequestTotal, 1, map[string]string{"method": "POST"})

	if count := testutil.CollectAndCount(recorder.requestTotal); count != 1 {
		t.Fatalf("expected a single request series, got %d", count)
	}
	if got := testutil.ToFloat64(recorder.requestTotal.WithLabelValues("POST", "", "")); got != 1 {
		t.Fatalf("expected missing labels to default to empty, got %v", got)
	}
}

func TestRecorder_HandlerExposesMetrics(t *testing.T) {
	recorder := NewRecorder("vaultra")
	recorder.IncCounter(context.Background(), core.MetricRequestTotal, 1, map[string]string{
		"method": "GET", "status": "failure", "status_code": "401",
	})

	server := httptest.NewServer(recorder.Handler())
	defer server.Close()

	res, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "vaultra_request_total") {
		t.Fatalf("expected request counter in exposition, got %s", body)
	}
	if !strings.Contains(string(body), `status_code="401"`) {
		t.Fatalf("expected status code label in exposition")
	}
}

func TestRecorder_WiredIntoAccessLayer(t *testing.T) {
	recorder := NewRecorder("vaultra")
	transport := transportFunc(func(context.Context, core.TransportRequest) (core.TransportResponse, error) {
		return core.TransportResponse{StatusCode: http.StatusOK, Body: []byte(`{"id":"user_1"}`)}, nil
	})
	layer, err := core.NewAccessLayer(core.DefaultConfig(),
		core.WithTransport(transport),
		core.WithMetricsRecorder(recorder),
	)
	if err != nil {
		t.Fatalf("new access layer: %v", err)
	}
	if _, err := layer.Request(context.Background(), "/auth/me", core.RequestOptions{}); err != nil {
		t.Fatalf("request: %v", err)
	}
	if got := testutil.ToFloat64(recorder.requestTotal.WithLabelValues("GET", "success", "200")); got != 1 {
		t.Fatalf("expected access layer to record one success, got %v", got)
	}
}

type transportFunc func(context.Context, core.TransportRequest) (core.TransportResponse, error)

func (transportFunc) Kind() string { return "func" }

func (f transportFunc) Do(ctx context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	return f(ctx, req)
}
