package core

import (
	"context"
	"sync"
)

type stubLogger struct{}

func (stubLogger) Trace(string, ...any) {}
func (stubLogger) Debug(string, ...any) {}
func (stubLogger) Info(string, ...any)  {}
func (stubLogger) Warn(string, ...any)  {}
func (stubLogger) Error(string, ...any) {}
func (stubLogger) Fatal(string, ...any) {}
func (s stubLogger) WithContext(context.Context) Logger {
	return s
}

type stubLoggerProvider struct {
	logger Logger
}

func (s stubLoggerProvider) GetLogger(string) Logger {
	return s.logger
}

// stubTransport answers every request through fn and records what it saw.
type stubTransport struct {
	mu       sync.Mutex
	requests []TransportRequest
	fn       func(context.Context, TransportRequest) (TransportResponse, error)
}

func (*stubTransport) Kind() string { return "stub" }

func (s *stubTransport) Do(ctx context.Context, req TransportRequest) (TransportResponse, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	if s.fn == nil {
		return TransportResponse{StatusCode: 204}, nil
	}
	return s.fn(ctx, req)
}

func (s *stubTransport) seen() []TransportRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TransportRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func jsonTransport(status int, body string) *stubTransport {
	return &stubTransport{fn: func(context.Context, TransportRequest) (TransportResponse, error) {
		return TransportResponse{StatusCode: status, Body: []byte(body)}, nil
	}}
}
