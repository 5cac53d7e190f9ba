package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dayoung-lee/taskboard/internal/middleware"
	"github.com/dayoung-lee/taskboard/internal/token"
)

func newAuthChain(t *testing.T) (http.Handler, *string) {
	t.Helper()

	var seenUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = middleware.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	auth := middleware.NewAuth(token.NewPrefix())
	return auth.Middleware(inner), &seenUserID
}

func TestAuth_ValidToken(t *testing.T) {
	chain, seenUserID := newAuthChain(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	req.Header.Set("Authorization", "Bearer mock-jwt-token-42")
	w := httptest.NewRecorder()

	chain.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if *seenUserID != "42" {
		t.Errorf("expected user id 42 in context, got %q", *seenUserID)
	}
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"wrong prefix", "Bearer some-other-token-1"},
		{"non-numeric suffix", "Bearer mock-jwt-token-abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, seenUserID := newAuthChain(t)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			chain.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
			if *seenUserID != "" {
				t.Errorf("handler ran with user id %q", *seenUserID)
			}
		})
	}
}

func TestAuth_ExemptPaths(t *testing.T) {
	tests := []struct {
		name string
		path string
		want int
	}{
		{"health", "/health", http.StatusOK},
		{"login", "/api/v1/auth/login", http.StatusOK},
		{"register", "/api/v1/auth/register", http.StatusOK},
		{"logout", "/api/v1/auth/logout", http.StatusOK},
		{"me requires token", "/api/v1/auth/me", http.StatusUnauthorized},
		{"tasks requires token", "/api/v1/tasks", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, _ := newAuthChain(t)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			chain.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("path %s: expected %d, got %d", tt.path, tt.want, w.Code)
			}
		})
	}
}
