package core

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ClientErrorBadInput         = "CLIENT_BAD_INPUT"
	ClientErrorUnauthorized     = "CLIENT_UNAUTHORIZED"
	ClientErrorForbidden        = "CLIENT_FORBIDDEN"
	ClientErrorNotFound         = "CLIENT_NOT_FOUND"
	ClientErrorConflict         = "CLIENT_CONFLICT"
	ClientErrorRateLimited      = "CLIENT_RATE_LIMITED"
	ClientErrorRequestFailed    = "CLIENT_REQUEST_FAILED"
	ClientErrorTransportFailure = "CLIENT_TRANSPORT_FAILURE"
	ClientErrorDecodeFailure    = "CLIENT_DECODE_FAILURE"
	ClientErrorMissingAccount   = "CLIENT_MISSING_ACCOUNT"
	ClientErrorInternal         = "CLIENT_INTERNAL_ERROR"
)

// FallbackFailureMessage is used when a failed response carries no usable
// message.
const FallbackFailureMessage = "Request failed"

// ErrorBody is the error envelope returned by the API. Validation failures
// put per-field detail in Error.Details; framework errors may only set Detail.
type ErrorBody struct {
	Error  *ErrorDetail `json:"error,omitempty"`
	Detail any          `json:"detail,omitempty"`
	// Body is the whole parsed response, whatever its shape. It is nil when
	// the response had no body or the body was not JSON.
	Body any `json:"-"`
}

type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func fallbackErrorBody() ErrorBody {
	return ErrorBody{Error: &ErrorDetail{Message: FallbackFailureMessage}}
}

// Message resolves the human readable failure message.
func (b ErrorBody) Message() string {
	if b.Error != nil && strings.TrimSpace(b.Error.Message) != "" {
		return strings.TrimSpace(b.Error.Message)
	}
	if detail, ok := b.Detail.(string); ok && strings.TrimSpace(detail) != "" {
		return strings.TrimSpace(detail)
	}
	return FallbackFailureMessage
}

func (b ErrorBody) code() string {
	if b.Error == nil {
		return ""
	}
	return strings.TrimSpace(b.Error.Code)
}

// FailureDetail returns the structured error body attached to a request
// failure. The second value is false when err did not come from an API
// response.
func FailureDetail(err error) (ErrorBody, bool) {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich == nil || rich.Metadata == nil {
		return ErrorBody{}, false
	}
	body, ok := rich.Metadata["response"].(ErrorBody)
	return body, ok
}

// StatusCode returns the HTTP status carried by a request failure, or zero.
func StatusCode(err error) int {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich == nil || rich.Metadata == nil {
		return 0
	}
	status, _ := rich.Metadata["status_code"].(int)
	return status
}

func responseFailure(statusCode int, raw []byte, requestID string) *goerrors.Error {
	body := parseErrorBody(raw)

	category := statusCategory(statusCode)
	metadata := map[string]any{
		"status_code": statusCode,
		"response":    body,
	}
	if body.Body != nil {
		metadata["body"] = body.Body
	}
	if code := body.code(); code != "" {
		metadata["error_code"] = code
	}
	if body.Error != nil && body.Error.Details != nil {
		metadata["details"] = body.Error.Details
	}
	if requestID != "" {
		metadata["request_id"] = requestID
	}
	return goerrors.New(body.Message(), category).
		WithCode(statusCode).
		WithTextCode(statusTextCode(statusCode)).
		WithMetadata(metadata)
}

// parseErrorBody keeps any JSON body and reads the envelope fields it can
// recognise: {"error":{...}}, {"error":"..."}, {"detail":...} and a top
// level "message" or "code".
func parseErrorBody(raw []byte) ErrorBody {
	var decoded any
	if len(bytes.TrimSpace(raw)) == 0 || json.Unmarshal(raw, &decoded) != nil {
		return fallbackErrorBody()
	}

	body := ErrorBody{Body: decoded}
	switch value := decoded.(type) {
	case string:
		body.Error = &ErrorDetail{Message: value}
	case map[string]any:
		switch envelope := value["error"].(type) {
		case map[string]any:
			detail := &ErrorDetail{Details: envelope["details"]}
			detail.Code, _ = envelope["code"].(string)
			detail.Message, _ = envelope["message"].(string)
			body.Error = detail
		case string:
			body.Error = &ErrorDetail{Message: envelope}
		}
		body.Detail = value["detail"]
		if body.Error == nil {
			message, _ := value["message"].(string)
			code, _ := value["code"].(string)
			if message != "" || code != "" {
				body.Error = &ErrorDetail{Code: code, Message: message}
			}
		}
	}
	return body
}

func clientError(message string, category goerrors.Category, code int, textCode string, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func clientWrapError(source error, category goerrors.Category, message string, code int, textCode string, metadata map[string]any) *goerrors.Error {
	if source == nil {
		return clientError(message, category, code, textCode, metadata)
	}
	err := goerrors.Wrap(source, category, message).
		WithCode(code).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// MissingAccountError reports that no business id was supplied and none is
// selected in the credential store.
func MissingAccountError() error {
	return clientError(
		"core: business id is required and no account is selected",
		goerrors.CategoryBadInput,
		http.StatusBadRequest,
		ClientErrorMissingAccount,
		nil,
	)
}

// BadInputError rejects caller input before any request is sent.
func BadInputError(message string, metadata map[string]any) error {
	return clientError(message, goerrors.CategoryBadInput, http.StatusBadRequest, ClientErrorBadInput, metadata)
}

// FieldError rejects one field of a command or query message. scope prefixes
// the message, for example "command" or "query".
func FieldError(scope, field, message string) error {
	return goerrors.NewValidation(scope+": validation failed", goerrors.FieldError{Field: field, Message: message}).
		WithCode(http.StatusBadRequest).
		WithTextCode(ClientErrorBadInput).
		WithSeverity(goerrors.SeverityError)
}

// MissingDependencyError reports a handler built without its service.
func MissingDependencyError(message string) error {
	return clientError(message, goerrors.CategoryInternal, http.StatusInternalServerError, ClientErrorInternal, nil)
}

// WrapFailure wraps a non-HTTP failure, such as a credential store write,
// into the client error envelope.
func WrapFailure(err error, message string, metadata map[string]any) error {
	if err == nil {
		return nil
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return err
	}
	return clientWrapError(err, goerrors.CategoryInternal, message, http.StatusInternalServerError, ClientErrorInternal, metadata)
}

func statusCategory(status int) goerrors.Category {
	switch status {
	case http.StatusBadRequest:
		return goerrors.CategoryBadInput
	case http.StatusUnprocessableEntity:
		return goerrors.CategoryValidation
	case http.StatusUnauthorized:
		return goerrors.CategoryAuth
	case http.StatusForbidden:
		return goerrors.CategoryAuthz
	case http.StatusNotFound:
		return goerrors.CategoryNotFound
	case http.StatusConflict:
		return goerrors.CategoryConflict
	case http.StatusTooManyRequests:
		return goerrors.CategoryRateLimit
	default:
		return goerrors.CategoryExternal
	}
}

func statusTextCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ClientErrorBadInput
	case http.StatusUnauthorized:
		return ClientErrorUnauthorized
	case http.StatusForbidden:
		return ClientErrorForbidden
	case http.StatusNotFound:
		return ClientErrorNotFound
	case http.StatusConflict:
		return ClientErrorConflict
	case http.StatusTooManyRequests:
		return ClientErrorRateLimited
	default:
		return ClientErrorRequestFailed
	}
}

func defaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return ensureClientErrorEnvelope(rich)
	}
	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	if strings.Contains(msg, "required") || strings.Contains(msg, "invalid") {
		return ensureClientErrorEnvelope(goerrors.New(err.Error(), goerrors.CategoryBadInput).
			WithTextCode(ClientErrorBadInput))
	}
	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureClientErrorEnvelope(mapped)
}

func ensureClientErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		switch err.Category {
		case goerrors.CategoryBadInput, goerrors.CategoryValidation:
			err.Code = http.StatusBadRequest
		default:
			err.Code = http.StatusInternalServerError
		}
	}
	if strings.TrimSpace(err.TextCode) == "" {
		switch err.Category {
		case goerrors.CategoryBadInput, goerrors.CategoryValidation:
			err.TextCode = ClientErrorBadInput
		default:
			err.TextCode = ClientErrorInternal
		}
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}
