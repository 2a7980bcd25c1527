package catalog

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestClient_Get(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantStatus  int
		wantMessage string
	}{
		{
			name:   "success returns body unchanged",
			status: http.StatusOK,
			body:   `{"id":"x", "extra":  [1,2]}`,
		},
		{
			name:        "not found",
			status:      http.StatusNotFound,
			body:        `{"error":{"status":404,"message":"Non existing id: 'spotify:album:nope'"}}`,
			wantErr:     true,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Non existing id: 'spotify:album:nope'",
		},
		{
			name:       "unauthorized with plain body",
			status:     http.StatusUnauthorized,
			body:       "token expired",
			wantErr:    true,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "server error is not retried",
			status:     http.StatusBadGateway,
			body:       "upstream",
			wantErr:    true,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				attempts++
				if r.Method != http.MethodGet {
					t.Errorf("expected GET request, got %s", r.Method)
				}
				if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
					t.Errorf("expected bearer authorization, got %q", auth)
				}
				if r.URL.Path != "/albums/x" {
					t.Errorf("expected path /albums/x, got %s", r.URL.Path)
				}
				respond(t, w, tt.status, tt.body)
			})

			body, err := client.get(context.Background(), "/albums/x", false)

			if attempts != 1 {
				t.Errorf("expected exactly 1 attempt, got %d", attempts)
			}

			if tt.wantErr {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected *APIError, got %v", err)
				}
				if apiErr.StatusCode != tt.wantStatus {
					t.Errorf("expected status %d, got %d", tt.wantStatus, apiErr.StatusCode)
				}
				if apiErr.Body != tt.body {
					t.Errorf("expected body %q, got %q", tt.body, apiErr.Body)
				}
				if apiErr.Message != tt.wantMessage {
					t.Errorf("expected message %q, got %q", tt.wantMessage, apiErr.Message)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(body) != tt.body {
				t.Errorf("expected body %q, got %q", tt.body, string(body))
			}
		})
	}
}

func TestClient_GetAbsolute(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		respond(t, w, http.StatusOK, `{}`)
	})

	// An absolute target must not be prefixed with the base URL again.
	target := client.baseURL + "/search?offset=20&limit=20"
	if _, err := client.get(context.Background(), target, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/search" {
		t.Errorf("expected path /search, got %s", gotPath)
	}
	if gotQuery != "offset=20&limit=20" {
		t.Errorf("expected query to be passed through, got %s", gotQuery)
	}
}

func TestClient_GetNotAuthenticated(t *testing.T) {
	transport := &countingTransport{t: t}
	client, err := NewClient(Config{HTTPClient: &http.Client{Transport: transport}})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.get(context.Background(), "/me", false)
	if !errors.Is(err, errNotAuthenticated) {
		t.Errorf("expected errNotAuthenticated, got %v", err)
	}
	if n := transport.calls.Load(); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestClient_GetContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		respond(t, w, http.StatusOK, `{}`)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.get(ctx, "/me", false)
	if err == nil {
		t.Fatal("expected context deadline error, got nil")
	}
	if !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("expected context deadline error, got %v", err)
	}
}

func TestAPIError_Is(t *testing.T) {
	notFound := &APIError{StatusCode: http.StatusNotFound, Body: "nope"}

	if !errors.Is(notFound, ErrNotFound) {
		t.Error("expected 404 to match ErrNotFound")
	}
	if errors.Is(notFound, ErrUnauthorized) {
		t.Error("expected 404 not to match ErrUnauthorized")
	}
	if notFound.Temporary() {
		t.Error("expected 404 not to be temporary")
	}
	if !(&APIError{StatusCode: http.StatusServiceUnavailable}).Temporary() {
		t.Error("expected 503 to be temporary")
	}
	if !strings.Contains(notFound.Error(), "nope") {
		t.Errorf("expected error text to include body, got %q", notFound.Error())
	}
}

func TestEndpoint_String(t *testing.T) {
	tests := []struct {
		name string
		ep   endpoint
		want string
	}{
		{
			name: "path only",
			ep:   newEndpoint("albums", "abc"),
			want: "/albums/abc",
		},
		{
			name: "segments are escaped",
			ep:   newEndpoint("users", "a b/c"),
			want: "/users/a%20b%2Fc",
		},
		{
			name: "empty values skipped",
			ep:   newEndpoint("search").set("q", "x").set("country", ""),
			want: "/search?q=x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ep.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
