package core

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type requestSummary struct {
	method     string
	path       string
	requestID  string
	statusCode int
	shared     bool
}

func (a *AccessLayer) observeRequest(
	ctx context.Context,
	startedAt time.Time,
	summary requestSummary,
	err error,
) {
	if a == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	duration := time.Since(startedAt)

	fields := map[string]any{
		"method":      summary.method,
		"path":        summary.path,
		"request_id":  summary.requestID,
		"status":      status,
		"duration_ms": duration.Milliseconds(),
		"shared":      summary.shared,
	}
	if summary.statusCode > 0 {
		fields["status_code"] = summary.statusCode
	}
	if err != nil {
		fields["error"] = err.Error()
		enrichErrorFields(fields, err)
	}

	tags := map[string]string{
		"method": summary.method,
		"status": status,
	}
	if summary.statusCode > 0 {
		tags["status_code"] = strconv.Itoa(summary.statusCode)
	}

	a.recordCounter(ctx, MetricRequestTotal, 1, tags)
	a.recordHistogram(ctx, MetricRequestDuration, float64(duration.Milliseconds()), tags)

	if err != nil {
		a.logWithLevel(ctx, "error", "request failed", fields)
		return
	}
	a.logWithLevel(ctx, "info", "request succeeded", fields)
}

func (a *AccessLayer) observeJoin(ctx context.Context, key string) {
	if a == nil {
		return
	}
	a.recordCounter(ctx, MetricRequestDeduplicated, 1, map[string]string{"method": "GET"})
	a.logWithLevel(ctx, "debug", "request joined in-flight read", map[string]any{"path": key})
}

// enrichErrorFields copies the envelope of a rich error into log fields.
func enrichErrorFields(fields map[string]any, err error) {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich == nil {
		return
	}
	if rich.TextCode != "" {
		fields["error_text_code"] = rich.TextCode
	}
	if rich.Category != "" {
		fields["error_category"] = string(rich.Category)
	}
	if rich.Code != 0 {
		fields["error_status"] = rich.Code
	}
	if len(rich.Metadata) > 0 {
		metadata := RedactSensitiveMap(rich.Metadata)
		// the raw body is already represented by error_code and details
		delete(metadata, "response")
		fields["error_metadata"] = metadata
	}
}

func (a *AccessLayer) logWithLevel(ctx context.Context, level string, message string, fields map[string]any) {
	if a == nil || a.logger == nil {
		return
	}
	logger := a.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		logger.Error(message, args...)
	case "debug":
		logger.Debug(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (a *AccessLayer) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if a == nil || a.metricsRecorder == nil {
		return
	}
	a.metricsRecorder.IncCounter(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func (a *AccessLayer) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if a == nil || a.metricsRecorder == nil {
		return
	}
	a.metricsRecorder.ObserveHistogram(ctx, strings.TrimSpace(name), value, cloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	if len(fields) == 0 {
		return map[string]any{}
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return copied
}

func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}
