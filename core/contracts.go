package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

const (
	CredentialKeyToken           = "vaultra_token"
	CredentialKeySelectedAccount = "vaultra_current_business_id"
)

// CredentialStore holds the session token and the selected business id.
// Reads are synchronous and never perform I/O.
type CredentialStore interface {
	Credential() (string, bool)
	SetCredential(token string) error
	ClearCredential() error
	SelectedAccount() (string, bool)
	SetSelectedAccount(id string) error
}

type TransportRequest struct {
	Method   string
	URL      string
	Headers  map[string]string
	Body     []byte
	Metadata map[string]any
	Timeout  time.Duration
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

// Navigator receives URLs the server asks the caller to visit, such as the
// payment processor onboarding page.
type Navigator interface {
	Navigate(ctx context.Context, url string) error
}

type NavigatorFunc func(ctx context.Context, url string) error

func (f NavigatorFunc) Navigate(ctx context.Context, url string) error {
	return f(ctx, url)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
