package transport

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-vaultra/core"
)

// failure describes one class of adapter error.
type failure struct {
	category goerrors.Category
	code     int
	textCode string
}

var (
	failureBadRequest = failure{goerrors.CategoryBadInput, http.StatusBadRequest, core.ClientErrorBadInput}
	failureUpstream   = failure{goerrors.CategoryExternal, http.StatusBadGateway, core.ClientErrorTransportFailure}
	failureInternal   = failure{goerrors.CategoryInternal, http.StatusInternalServerError, core.ClientErrorInternal}
)

// errorf builds the adapter error envelope, wrapping source when present.
func (f failure) errorf(source error, message string, metadata map[string]any) error {
	var err *goerrors.Error
	if source == nil {
		err = goerrors.New(message, f.category)
	} else {
		err = goerrors.Wrap(source, f.category, message)
	}
	err = err.WithCode(f.code).WithTextCode(f.textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}
