package middleware

import (
	"encoding/json"
	"net/http"
	"path"
	"strings"

	"github.com/dayoung-lee/taskboard/internal/token"
)

// Auth resolves the bearer token on each request to a user id and stores it
// in the request context. It does not verify that the id names an existing
// user; endpoints that care (auth/me) check that themselves.
type Auth struct {
	issuer token.Issuer
}

func NewAuth(issuer token.Issuer) *Auth {
	return &Auth{issuer: issuer}
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !requiresAuth(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "UNAUTHORIZED", "Unauthorized")
			return
		}

		tok, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			writeAuthError(w, "UNAUTHORIZED", "Unauthorized")
			return
		}

		userID, err := a.issuer.Resolve(tok)
		if err != nil {
			writeAuthError(w, "INVALID_TOKEN", "Invalid token")
			return
		}

		ctx := SetUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requiresAuth exempts the health check and the auth endpoints, except
// auth/me which identifies the caller by token.
func requiresAuth(p string) bool {
	cleanPath := path.Clean(p)
	if cleanPath == "/health" {
		return false
	}
	if cleanPath == "/api/v1/auth/me" {
		return true
	}
	return !strings.HasPrefix(cleanPath, "/api/v1/auth/")
}

// Missing header and malformed token are both 401; only the message differs.
func writeAuthError(w http.ResponseWriter, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
