// Package prometheus exposes access layer metrics as Prometheus collectors.
package prometheus

import (
	"context"
	"net/http"
	"strings"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-vaultra/core"
)

const DefaultNamespace = "vaultra"

var requestLabels = []string{"method", "status", "status_code"}

// Recorder implements core.MetricsRecorder on an owned registry. Metric
// names it does not know are dropped.
type Recorder struct {
	registry *prom.Registry

	requestTotal    *prom.CounterVec
	requestDuration *prom.HistogramVec
	deduplicated    *prom.CounterVec
}

func NewRecorder(namespace string) *Recorder {
	if strings.TrimSpace(namespace) == "" {
		namespace = DefaultNamespace
	}

	r := &Recorder{registry: prom.NewRegistry()}

	r.requestTotal = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: namespace,
			Subsystem: "request",
			Name:      "total",
			Help:      "Total number of backend requests by outcome",
		},
		requestLabels,
	)

	r.requestDuration = prom.NewHistogramVec(
		prom.HistogramOpts{
			Namespace: namespace,
			Subsystem: "request",
			Name:      "duration_ms",
			Help:      "Backend request duration in milliseconds",
			Buckets:   prom.ExponentialBuckets(5, 2, 12), // 5ms to ~10s
		},
		requestLabels,
	)

	r.deduplicated = prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: namespace,
			Subsystem: "request",
			Name:      "deduplicated_total",
			Help:      "Reads that joined an in-flight request instead of dispatching",
		},
		[]string{"method"},
	)

	r.registry.MustRegister(r.requestTotal, r.requestDuration, r.deduplicated)
	return r
}

func (r *Recorder) Registry() *prom.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func (r *Recorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	if r == nil || value <= 0 {
		return
	}
	switch name {
	case core.MetricRequestTotal:
		r.requestTotal.WithLabelValues(labelValues(requestLabels, tags)...).Add(float64(value))
	case core.MetricRequestDeduplicated:
		r.deduplicated.WithLabelValues(tags["method"]).Add(float64(value))
	}
}

func (r *Recorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	if r == nil {
		return
	}
	if name == core.MetricRequestDuration {
		r.requestDuration.WithLabelValues(labelValues(requestLabels, tags)...).Observe(value)
	}
}

func labelValues(labels []string, tags map[string]string) []string {
	values := make([]string, len(labels))
	for i, label := range labels {
		values[i] = tags[label]
	}
	return values
}

var _ core.MetricsRecorder = (*Recorder)(nil)
