package core

import "testing"

func TestRedactSensitiveMapPreservesTraceabilityMetadata(t *testing.T) {
	redacted := RedactSensitiveMap(map[string]any{
		"request_id":    "req_1",
		"business_id":   "acct_1",
		"access_token":  "secret-token",
		"authorization": "Bearer secret-token",
		"nested":        map[string]any{"password": "hunter2", "conversation_id": "conv_1"},
		"events":        []any{map[string]any{"api_key": "key_1"}, map[string]any{"trace_id": "trace_1"}},
	})

	if redacted["request_id"] != "req_1" || redacted["business_id"] != "acct_1" {
		t.Fatalf("expected traceability keys to remain visible, got %#v", redacted)
	}
	if redacted["access_token"] != RedactedValue || redacted["authorization"] != RedactedValue {
		t.Fatalf("expected credentials to be redacted, got %#v", redacted)
	}
	nested, ok := redacted["nested"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested redacted map")
	}
	if nested["password"] != RedactedValue {
		t.Fatalf("expected nested password to be redacted, got %#v", nested["password"])
	}
	if nested["conversation_id"] != "conv_1" {
		t.Fatalf("expected nested conversation_id to remain visible, got %#v", nested["conversation_id"])
	}
	events, ok := redacted["events"].([]any)
	if !ok || len(events) != 2 {
		t.Fatalf("expected redacted events slice, got %#v", redacted["events"])
	}
	if first, _ := events[0].(map[string]any); first["api_key"] != RedactedValue {
		t.Fatalf("expected api_key in slice to be redacted, got %#v", events[0])
	}
}

func TestRedactSensitiveMapEmpty(t *testing.T) {
	if out := RedactSensitiveMap(nil); out == nil || len(out) != 0 {
		t.Fatalf("expected empty map, got %#v", out)
	}
}

func TestRedactSensitiveMapMasksEmailsAndHeaders(t *testing.T) {
	input := map[string]any{
		"email":   "alice@acme.test",
		"headers": map[string]string{"Authorization": "Bearer tok_1", "X-Request-ID": "req_1"},
	}
	redacted := RedactSensitiveMap(input)

	if redacted["email"] != "a***@acme.test" {
		t.Fatalf("expected masked email, got %#v", redacted["email"])
	}
	headers, ok := redacted["headers"].(map[string]any)
	if !ok {
		t.Fatalf("expected header map to be copied, got %#v", redacted["headers"])
	}
	if headers["Authorization"] != RedactedValue {
		t.Fatalf("expected authorization header to be redacted, got %#v", headers["Authorization"])
	}
	if headers["X-Request-ID"] != "req_1" {
		t.Fatalf("expected request id header to remain visible, got %#v", headers["X-Request-ID"])
	}
	if input["email"] != "alice@acme.test" {
		t.Fatalf("expected input to be left untouched")
	}
}

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"bob@example.com": "b***@example.com",
		"not-an-email":    RedactedValue,
		"@example.com":    RedactedValue,
	}
	for in, want := range cases {
		if got := MaskEmail(in); got != want {
			t.Fatalf("MaskEmail(%q) = %q, want %q", in, got, want)
		}
	}
}
