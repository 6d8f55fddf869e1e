package gologger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	glog "github.com/goliatone/go-logger/glog"
)

func TestResolveDeterministicFallback(t *testing.T) {
	loggerOnly := &capturingLogger{id: "logger"}
	providerLogger := &capturingLogger{id: "provider"}
	provider := &capturingProvider{logger: providerLogger}

	var resolvedProvider glog.LoggerProvider
	_, resolved := Resolve("vaultra", provider, loggerOnly)
	got := resolved.(*capturingLogger)
	if got.id != "provider" {
		t.Fatalf("expected provider logger precedence, got %q", got.id)
	}

	resolvedProvider, resolved = Resolve("vaultra", nil, loggerOnly)
	got = resolved.(*capturingLogger)
	if got.id != "logger" {
		t.Fatalf("expected direct logger when provider is nil, got %q", got.id)
	}
	if resolvedProvider == nil {
		t.Fatalf("expected provider wrapper from logger")
	}

	_, resolved = Resolve("vaultra", nil, nil)
	if resolved == nil {
		t.Fatalf("expected nop logger fallback")
	}
}

func TestOptionsReturnsLoggerPair(t *testing.T) {
	opts := Options("vaultra", nil, &capturingLogger{id: "logger"})
	if len(opts) != 2 {
		t.Fatalf("expected two access layer options, got %d", len(opts))
	}
	for i, opt := range opts {
		if opt == nil {
			t.Fatalf("expected option %d to be set", i)
		}
	}
}

func TestLogrusProviderWritesStructuredFields(t *testing.T) {
	var out bytes.Buffer
	provider := NewLogrusProvider(&out, "info")

	logger := provider.GetLogger("vaultra.access")
	logger.Info("request succeeded", "path", "/metrics?business_id=acct_1", "status_code", 200)

	line := decodeLine(t, out.String())
	if line["msg"] != "request succeeded" {
		t.Fatalf("expected message, got %#v", line["msg"])
	}
	if line["logger"] != "vaultra.access" {
		t.Fatalf("expected logger name field, got %#v", line["logger"])
	}
	if line["path"] != "/metrics?business_id=acct_1" {
		t.Fatalf("expected path field, got %#v", line["path"])
	}
	if line["status_code"] != float64(200) {
		t.Fatalf("expected status_code field, got %#v", line["status_code"])
	}
}

func TestLogrusLoggerLevelAndFields(t *testing.T) {
	var out bytes.Buffer
	provider := NewLogrusProvider(&out, "not-a-level")

	logger := provider.GetLogger("vaultra")
	logger.Info("dropped below warn")
	if out.Len() != 0 {
		t.Fatalf("expected info to be filtered at warn level, got %q", out.String())
	}

	fields, ok := logger.(glog.FieldsLogger)
	if !ok {
		t.Fatalf("expected fields logger")
	}
	fields.WithFields(map[string]any{"request_id": "req_1"}).WithContext(context.Background()).Error("request failed", "odd")

	line := decodeLine(t, out.String())
	if line["request_id"] != "req_1" {
		t.Fatalf("expected request_id field, got %#v", line["request_id"])
	}
	if _, ok := line["odd"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
	if line["level"] != "error" {
		t.Fatalf("expected error level, got %#v", line["level"])
	}
}

func decodeLine(t *testing.T, raw string) map[string]any {
	t.Helper()
	raw = strings.TrimSpace(raw)
	if raw == "" {
		t.Fatalf("expected a log line")
	}
	lines := strings.Split(raw, "\n")
	var line map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	return line
}

var (
	_ glog.Logger         = (*capturingLogger)(nil)
	_ glog.LoggerProvider = (*capturingProvider)(nil)
)

type capturingProvider struct {
	logger *capturingLogger
}

func (p *capturingProvider) GetLogger(string) glog.Logger {
	if p == nil || p.logger == nil {
		return glog.Nop()
	}
	return p.logger
}

type capturingLogger struct {
	id string
}

func (l *capturingLogger) Trace(string, ...any) {}
func (l *capturingLogger) Debug(string, ...any) {}
func (l *capturingLogger) Info(string, ...any)  {}
func (l *capturingLogger) Warn(string, ...any)  {}
func (l *capturingLogger) Error(string, ...any) {}
func (l *capturingLogger) Fatal(string, ...any) {}

func (l *capturingLogger) WithContext(context.Context) glog.Logger {
	return l
}
