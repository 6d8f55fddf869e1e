package core

import (
	stderrors "errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestResponseFailure_MapsStatusToStableCodes(t *testing.T) {
	cases := []struct {
		status   int
		category goerrors.Category
		textCode string
	}{
		{http.StatusBadRequest, goerrors.CategoryBadInput, ClientErrorBadInput},
		{http.StatusUnprocessableEntity, goerrors.CategoryValidation, ClientErrorBadInput},
		{http.StatusUnauthorized, goerrors.CategoryAuth, ClientErrorUnauthorized},
		{http.StatusForbidden, goerrors.CategoryAuthz, ClientErrorForbidden},
		{http.StatusNotFound, goerrors.CategoryNotFound, ClientErrorNotFound},
		{http.StatusConflict, goerrors.CategoryConflict, ClientErrorConflict},
		{http.StatusTooManyRequests, goerrors.CategoryRateLimit, ClientErrorRateLimited},
		{http.StatusInternalServerError, goerrors.CategoryExternal, ClientErrorRequestFailed},
	}
	for _, tc := range cases {
		err := responseFailure(tc.status, nil, "")
		if err.Category != tc.category {
			t.Fatalf("status %d: expected category %q, got %q", tc.status, tc.category, err.Category)
		}
		if err.TextCode != tc.textCode {
			t.Fatalf("status %d: expected text code %q, got %q", tc.status, tc.textCode, err.TextCode)
		}
		if err.Code != tc.status {
			t.Fatalf("status %d: expected code to carry status, got %d", tc.status, err.Code)
		}
		if err.Message != FallbackFailureMessage {
			t.Fatalf("status %d: expected fallback message, got %q", tc.status, err.Message)
		}
	}
}

func TestResponseFailure_UsesFrameworkDetailString(t *testing.T) {
	err := responseFailure(http.StatusUnauthorized, []byte(`{"detail":"Not authenticated"}`), "req_1")
	if err.Message != "Not authenticated" {
		t.Fatalf("expected detail message, got %q", err.Message)
	}
	if err.Metadata["request_id"] != "req_1" {
		t.Fatalf("expected request id metadata, got %#v", err.Metadata)
	}
}

func TestResponseFailure_CarriesErrorCodeAndDetails(t *testing.T) {
	err := responseFailure(
		http.StatusUnprocessableEntity,
		[]byte(`{"error":{"code":"VALIDATION_ERROR","message":"Invalid email","details":[{"field":"email"}]}}`),
		"",
	)
	if err.Message != "Invalid email" {
		t.Fatalf("unexpected message %q", err.Message)
	}
	if err.Metadata["error_code"] != "VALIDATION_ERROR" {
		t.Fatalf("expected error_code metadata, got %#v", err.Metadata["error_code"])
	}
	if _, ok := err.Metadata["details"].([]any); !ok {
		t.Fatalf("expected details metadata, got %#v", err.Metadata["details"])
	}
	body, ok := FailureDetail(err)
	if !ok || body.Error == nil || body.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected failure detail, got %#v", body)
	}
	if StatusCode(err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", StatusCode(err))
	}
}

func TestDefaultErrorMapper_AssignsStableCodes(t *testing.T) {
	mapped := defaultErrorMapper(stderrors.New("core: base_url is required"))
	if mapped.TextCode != ClientErrorBadInput || mapped.Code != http.StatusBadRequest {
		t.Fatalf("expected bad input mapping, got %q %d", mapped.TextCode, mapped.Code)
	}

	mapped = defaultErrorMapper(stderrors.New("disk on fire"))
	if mapped.TextCode == "" || mapped.Code == 0 {
		t.Fatalf("expected envelope defaults, got %q %d", mapped.TextCode, mapped.Code)
	}

	rich := goerrors.New("already rich", goerrors.CategoryConflict).WithTextCode(ClientErrorConflict)
	if got := defaultErrorMapper(rich); got.TextCode != ClientErrorConflict {
		t.Fatalf("expected rich error text code preserved, got %q", got.TextCode)
	}
}

func TestWrapFailure(t *testing.T) {
	if WrapFailure(nil, "ignored", nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
	err := WrapFailure(stderrors.New("disk full"), "core: persist", map[string]any{"key": "vaultra_token"})
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != ClientErrorInternal {
		t.Fatalf("expected internal envelope, got %#v", err)
	}
	already := BadInputError("bad", nil)
	if WrapFailure(already, "outer", nil) != already {
		t.Fatalf("expected rich error passthrough")
	}
}

func TestResponseFailure_KeepsNonEnvelopeBodies(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		message string
		check   func(t *testing.T, body any)
	}{
		{
			name:    "error string",
			raw:     `{"error":"token expired"}`,
			message: "token expired",
			check: func(t *testing.T, body any) {
				object, ok := body.(map[string]any)
				if !ok || object["error"] != "token expired" {
					t.Fatalf("expected parsed object, got %#v", body)
				}
			},
		},
		{
			name:    "array",
			raw:     `["bad"]`,
			message: FallbackFailureMessage,
			check: func(t *testing.T, body any) {
				items, ok := body.([]any)
				if !ok || len(items) != 1 || items[0] != "bad" {
					t.Fatalf("expected parsed array, got %#v", body)
				}
			},
		},
		{
			name:    "flat message",
			raw:     `{"message":"X","field":"email"}`,
			message: "X",
			check: func(t *testing.T, body any) {
				object, ok := body.(map[string]any)
				if !ok || object["field"] != "email" || object["message"] != "X" {
					t.Fatalf("expected every field to survive, got %#v", body)
				}
			},
		},
		{
			name:    "validation detail list",
			raw:     `{"detail":[{"loc":["body","email"],"msg":"field required"}]}`,
			message: FallbackFailureMessage,
			check: func(t *testing.T, body any) {
				object, ok := body.(map[string]any)
				if !ok {
					t.Fatalf("expected parsed object, got %#v", body)
				}
				if _, ok := object["detail"].([]any); !ok {
					t.Fatalf("expected detail list, got %#v", object["detail"])
				}
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := responseFailure(http.StatusBadRequest, []byte(tc.raw), "")
			if err.Message != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, err.Message)
			}
			detail, ok := FailureDetail(err)
			if !ok {
				t.Fatalf("expected failure detail")
			}
			if detail.Message() != tc.message {
				t.Fatalf("expected detail message %q, got %q", tc.message, detail.Message())
			}
			tc.check(t, detail.Body)
			tc.check(t, err.Metadata["body"])
		})
	}
}

func TestResponseFailure_FallsBackOnlyWithoutJSON(t *testing.T) {
	for _, raw := range []string{"", "   ", "<html>boom</html>"} {
		err := responseFailure(http.StatusBadGateway, []byte(raw), "")
		if err.Message != FallbackFailureMessage {
			t.Fatalf("%q: expected fallback message, got %q", raw, err.Message)
		}
		if _, ok := err.Metadata["body"]; ok {
			t.Fatalf("%q: expected no parsed body, got %#v", raw, err.Metadata["body"])
		}
		detail, _ := FailureDetail(err)
		if detail.Body != nil {
			t.Fatalf("%q: expected nil body, got %#v", raw, detail.Body)
		}
	}
}
