package core

import "strings"

const RedactedValue = "[REDACTED]"

var sensitiveKeyTokens = []string{
	"password",
	"secret",
	"token",
	"authorization",
	"api_key",
	"apikey",
	"cookie",
	"credential",
}

// RedactSensitiveMap returns a copy of metadata that is safe to log. Secrets
// are replaced, email addresses are masked, and nested maps and slices are
// walked. The input is never modified.
func RedactSensitiveMap(metadata map[string]any) map[string]any {
	out := make(map[string]any, len(metadata))
	for key, value := range metadata {
		out[key] = redactEntry(key, value)
	}
	return out
}

func redactEntry(key string, value any) any {
	normalized := strings.ToLower(strings.TrimSpace(key))
	switch {
	case isTraceabilityKey(normalized):
		return value
	case isSensitiveKey(normalized):
		return RedactedValue
	case strings.Contains(normalized, "email"):
		if email, ok := value.(string); ok {
			return MaskEmail(email)
		}
	}

	switch typed := value.(type) {
	case map[string]any:
		return RedactSensitiveMap(typed)
	case map[string]string:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = redactEntry(k, v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = redactEntry("", item)
		}
		return out
	default:
		return value
	}
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok || local == "" {
		return RedactedValue
	}
	return local[:1] + "***@" + domain
}

func isSensitiveKey(key string) bool {
	if key == "" {
		return false
	}
	for _, token := range sensitiveKeyTokens {
		if strings.Contains(key, token) {
			return true
		}
	}
	return false
}

func isTraceabilityKey(key string) bool {
	switch key {
	case "request_id",
		"trace_id",
		"business_id",
		"conversation_id",
		"status_code",
		"error_code":
		return true
	default:
		return false
	}
}
