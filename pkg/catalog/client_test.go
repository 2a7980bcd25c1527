package catalog

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// newTestClient starts a server running handler and returns an
// authenticated client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		Credentials: Credentials{AccessToken: "test-token"},
		BaseURL:     server.URL,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

// respond writes status and body, failing the test on write errors.
func respond(t *testing.T, w http.ResponseWriter, status int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		t.Fatalf("failed to write response body: %v", err)
	}
}

// countingTransport counts requests and fails the test if any are made.
type countingTransport struct {
	t     *testing.T
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	c.t.Errorf("unexpected request to %s", req.URL)
	return nil, http.ErrHandlerTimeout
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantURL string
		wantErr bool
	}{
		{
			name:    "defaults",
			cfg:     Config{},
			wantURL: DefaultBaseURL,
		},
		{
			name:    "custom base url trailing slash trimmed",
			cfg:     Config{BaseURL: "http://localhost:9999/v1/"},
			wantURL: "http://localhost:9999/v1",
		},
		{
			name:    "relative base url rejected",
			cfg:     Config{BaseURL: "/v1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.baseURL != tt.wantURL {
				t.Errorf("expected base url %q, got %q", tt.wantURL, client.baseURL)
			}
			if client.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient when none configured")
			}
		})
	}
}

func TestClient_Credentials(t *testing.T) {
	client, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if client.IsAuthenticated() {
		t.Error("expected new client without credentials to be unauthenticated")
	}
	if tok := client.token(); tok != nil {
		t.Errorf("expected nil token, got %+v", tok)
	}

	client.SetCredentials(Credentials{AccessToken: "abc", RefreshToken: "def"})

	if !client.IsAuthenticated() {
		t.Error("expected client to be authenticated after SetCredentials")
	}
	token, ok := client.AccessToken()
	if !ok || token != "abc" {
		t.Errorf("expected access token abc, got %q (ok=%v)", token, ok)
	}
	if got := client.Credentials().RefreshToken; got != "def" {
		t.Errorf("expected refresh token def, got %q", got)
	}
	if tok := client.token(); tok == nil || tok.Type() != "Bearer" {
		t.Errorf("expected bearer token, got %+v", tok)
	}
}

func TestClient_IndependentCredentials(t *testing.T) {
	a, _ := NewClient(Config{Credentials: Credentials{AccessToken: "token-a"}})
	b, _ := NewClient(Config{Credentials: Credentials{AccessToken: "token-b"}})

	a.SetCredentials(Credentials{AccessToken: "token-a2"})

	if tok, _ := b.AccessToken(); tok != "token-b" {
		t.Errorf("expected client b to keep token-b, got %q", tok)
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func TestClient_Logger(t *testing.T) {
	logger := &recordingLogger{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, http.StatusOK, `{"id":"u1"}`)
	}))
	defer server.Close()

	client, err := NewClient(Config{
		Credentials: Credentials{AccessToken: "test-token"},
		BaseURL:     server.URL,
		Logger:      logger,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if _, err := Get[User](t.Context(), client, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logger.lines) == 0 {
		t.Error("expected debug log lines")
	}
}
