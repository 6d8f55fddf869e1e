package gologger

import (
	"context"
	"fmt"
	"io"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-vaultra/core"
)

// Resolve uses deterministic precedence provider > logger > nop.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	return glog.Resolve(name, provider, logger)
}

// Options resolves a logger pair and returns the access layer options that
// install it.
func Options(name string, provider glog.LoggerProvider, logger glog.Logger) []core.Option {
	resolvedProvider, resolvedLogger := Resolve(name, provider, logger)
	return []core.Option{
		core.WithLoggerProvider(resolvedProvider),
		core.WithLogger(resolvedLogger),
	}
}

// LogrusLogger adapts a logrus entry to glog.Logger. Trailing key/value args
// become logrus fields.
type LogrusLogger struct {
	entry *logrus.Entry
}

func NewLogrusLogger(entry *logrus.Entry) *LogrusLogger {
	if entry == nil {
		entry = logrus.NewEntry(logrus.StandardLogger())
	}
	return &LogrusLogger{entry: entry}
}

func (l *LogrusLogger) Trace(msg string, args ...any) { l.with(args).Trace(msg) }
func (l *LogrusLogger) Debug(msg string, args ...any) { l.with(args).Debug(msg) }
func (l *LogrusLogger) Info(msg string, args ...any)  { l.with(args).Info(msg) }
func (l *LogrusLogger) Warn(msg string, args ...any)  { l.with(args).Warn(msg) }
func (l *LogrusLogger) Error(msg string, args ...any) { l.with(args).Error(msg) }
func (l *LogrusLogger) Fatal(msg string, args ...any) { l.with(args).Fatal(msg) }

func (l *LogrusLogger) WithContext(ctx context.Context) glog.Logger {
	if ctx == nil {
		return l
	}
	return &LogrusLogger{entry: l.entry.WithContext(ctx)}
}

func (l *LogrusLogger) WithFields(fields map[string]any) glog.Logger {
	if len(fields) == 0 {
		return l
	}
	return &LogrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *LogrusLogger) with(args []any) *logrus.Entry {
	if len(args) == 0 {
		return l.entry
	}
	fields := logrus.Fields{}
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 >= len(args) {
			fields[key] = nil
			continue
		}
		fields[key] = args[i+1]
	}
	return l.entry.WithFields(fields)
}

// LogrusProvider hands out loggers tagged with their name.
type LogrusProvider struct {
	base *logrus.Logger
}

// NewLogrusProvider writes JSON lines to out at the given level. An unknown
// level falls back to warn.
func NewLogrusProvider(out io.Writer, level string) *LogrusProvider {
	base := logrus.New()
	if out != nil {
		base.SetOutput(out)
	}
	base.SetFormatter(&logrus.JSONFormatter{})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.WarnLevel
	}
	base.SetLevel(parsed)
	return &LogrusProvider{base: base}
}

func (p *LogrusProvider) GetLogger(name string) glog.Logger {
	if p == nil || p.base == nil {
		return glog.Nop()
	}
	return NewLogrusLogger(p.base.WithField("logger", name))
}

var (
	_ glog.Logger         = (*LogrusLogger)(nil)
	_ glog.FieldsLogger   = (*LogrusLogger)(nil)
	_ glog.LoggerProvider = (*LogrusProvider)(nil)
)
