package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type cliBackend struct {
	mu   sync.Mutex
	seen []string
	auth []string
}

func (b *cliBackend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seen = append(b.seen, r.Method+" "+r.URL.RequestURI())
	b.auth = append(b.auth, r.Header.Get("Authorization"))
}

func (b *cliBackend) last() (string, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.seen) == 0 {
		return "", ""
	}
	return b.seen[len(b.seen)-1], b.auth[len(b.auth)-1]
}

func (b *cliBackend) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.seen)
}

func newCLIBackend(t *testing.T) (*httptest.Server, *cliBackend) {
	t.Helper()
	backend := &cliBackend{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backend.record(r)
		w.Header().Set("Content-Type", "application/json")
		switch r.Method + " " + r.URL.Path {
		case "POST /auth/login":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"token": "tok_cli",
				"user": map[string]any{
					"id":         "user_1",
					"email":      "a@b.co",
					"businesses": []map[string]any{{"id": "acct_1", "name": "Acme"}},
				},
			})
		case "GET /auth/me":
			if r.Header.Get("Authorization") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "user_1", "email": "a@b.co", "businesses": []any{}})
		case "GET /metrics":
			_ = json.NewEncoder(w).Encode(map[string]any{"business_id": r.URL.Query().Get("business_id"), "transaction_count": 3})
		case "GET /metrics/history":
			_ = json.NewEncoder(w).Encode(map[string]any{"metrics": []any{}})
		case "GET /integrations/stripe/connect":
			_ = json.NewEncoder(w).Encode(map[string]any{"url": "https://connect.stripe.test/onboard"})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"not found"}`))
		}
	}))
	t.Cleanup(server.Close)
	return server, backend
}

type cliHarness struct {
	t       *testing.T
	environ map[string]string
}

func newCLIHarness(t *testing.T, apiURL string) *cliHarness {
	dsn := "file:" + filepath.Join(t.TempDir(), "vaultra.db")
	return &cliHarness{t: t, environ: map[string]string{
		"VAULTRA_API_URL":      apiURL,
		"VAULTRA_STORE_DRIVER": "sqlite3",
		"VAULTRA_STORE_DSN":    dsn,
	}}
}

func (h *cliHarness) run(args ...string) (int, string, string) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr, h.environ)
	return code, stdout.String(), stderr.String()
}

func TestCLI_LoginPersistsSessionAcrossInvocations(t *testing.T) {
	server, backend := newCLIBackend(t)
	cli := newCLIHarness(t, server.URL)

	code, stdout, stderr := cli.run("login", "--email", "a@b.co", "--password", "secret")
	if code != 0 {
		t.Fatalf("login exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, `"token": "tok_cli"`) {
		t.Fatalf("expected indented token payload, got %s", stdout)
	}

	code, stdout, stderr = cli.run("metrics")
	if code != 0 {
		t.Fatalf("metrics exit %d: %s", code, stderr)
	}
	request, auth := backend.last()
	if request != "GET /metrics?business_id=acct_1" {
		t.Fatalf("expected selected account from store, got %q", request)
	}
	if auth != "Bearer tok_cli" {
		t.Fatalf("expected stored token on request, got %q", auth)
	}
	if !strings.Contains(stdout, `"transaction_count": 3`) {
		t.Fatalf("unexpected metrics output %s", stdout)
	}
}

func TestCLI_UseAndHistoryFlags(t *testing.T) {
	server, backend := newCLIBackend(t)
	cli := newCLIHarness(t, server.URL)

	if code, _, stderr := cli.run("use", "acct_2"); code != 0 {
		t.Fatalf("use exit %d: %s", code, stderr)
	}
	code, stdout, stderr := cli.run("--json", "metrics", "--history", "--start", "2026-01-01", "--end", "2026-02-01")
	if code != 0 {
		t.Fatalf("metrics history exit %d: %s", code, stderr)
	}
	request, _ := backend.last()
	if request != "GET /metrics/history?business_id=acct_2&start_date=2026-01-01&end_date=2026-02-01" {
		t.Fatalf("unexpected history request %q", request)
	}
	if strings.TrimSpace(stdout) != `{"metrics":[]}` {
		t.Fatalf("expected compact json output, got %q", stdout)
	}
}

func TestCLI_ValidationFailsBeforeNetwork(t *testing.T) {
	server, backend := newCLIBackend(t)
	cli := newCLIHarness(t, server.URL)
	if code, _, _ := cli.run("use", "acct_1"); code != 0 {
		t.Fatalf("use failed")
	}

	code, _, stderr := cli.run("metrics", "--history", "--start", "01/02/2026")
	if code != 1 {
		t.Fatalf("expected exit 1 for bad date, got %d", code)
	}
	if stderr == "" {
		t.Fatalf("expected validation message on stderr")
	}
	if backend.count() != 0 {
		t.Fatalf("expected no network call, got %d", backend.count())
	}
}

func TestCLI_MissingAccountFails(t *testing.T) {
	server, backend := newCLIBackend(t)
	cli := newCLIHarness(t, server.URL)

	code, _, stderr := cli.run("readiness")
	if code != 1 {
		t.Fatalf("expected exit 1 without a selected business, got %d", code)
	}
	if !strings.Contains(stderr, "vaultra:") {
		t.Fatalf("expected failure message, got %q", stderr)
	}
	if backend.count() != 0 {
		t.Fatalf("expected no network call, got %d", backend.count())
	}
}

func TestCLI_StripeConnectPrintsURL(t *testing.T) {
	server, _ := newCLIBackend(t)
	cli := newCLIHarness(t, server.URL)
	if code, _, _ := cli.run("use", "acct_1"); code != 0 {
		t.Fatalf("use failed")
	}

	code, stdout, stderr := cli.run("stripe", "connect")
	if code != 0 {
		t.Fatalf("stripe connect exit %d: %s", code, stderr)
	}
	if !strings.Contains(stderr, "https://connect.stripe.test/onboard") {
		t.Fatalf("expected onboarding url on stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, `"url"`) {
		t.Fatalf("expected connect payload on stdout, got %q", stdout)
	}
}

func TestCLI_LogoutDropsAuthorization(t *testing.T) {
	server, _ := newCLIBackend(t)
	cli := newCLIHarness(t, server.URL)

	if code, _, stderr := cli.run("login", "--email", "a@b.co", "--password", "secret"); code != 0 {
		t.Fatalf("login exit %d: %s", code, stderr)
	}
	if code, _, stderr := cli.run("logout"); code != 0 {
		t.Fatalf("logout exit %d: %s", code, stderr)
	}
	code, _, stderr := cli.run("whoami")
	if code != 1 {
		t.Fatalf("expected whoami to fail after logout, got %d", code)
	}
	if !strings.Contains(stderr, "Not authenticated") {
		t.Fatalf("expected server message, got %q", stderr)
	}
}

func TestCLI_APIURLFlagOverridesEnvironment(t *testing.T) {
	server, backend := newCLIBackend(t)
	cli := newCLIHarness(t, "http://127.0.0.1:1")

	code, _, stderr := cli.run("--api-url", server.URL, "login", "--email", "a@b.co", "--password", "secret")
	if code != 0 {
		t.Fatalf("login exit %d: %s", code, stderr)
	}
	if backend.count() != 1 {
		t.Fatalf("expected request against flag url, got %d", backend.count())
	}
}
