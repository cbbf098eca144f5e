// Package auth guards the configuration API with a shared bearer token.
package auth

import (
	"crypto/subtle"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// Middleware creates an HTTP middleware that checks the bearer token on every
// request against token. No sessions are kept.
func Middleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, err := extractBearerToken(r)
			if err != nil {
				log.Printf("Auth failed: %v", err)
				http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				log.Printf("Auth failed: token mismatch for %s %s", r.Method, r.URL.Path)
				http.Error(w, "Unauthorized: authentication failed", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractBearerToken extracts the bearer token from the Authorization header
// Expected format: "Authorization: Bearer <token>"
func extractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("missing Authorization header")
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok {
		return "", fmt.Errorf("invalid Authorization header format")
	}

	if !strings.EqualFold(scheme, "bearer") {
		return "", fmt.Errorf("authorization scheme must be Bearer")
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("empty bearer token")
	}

	return token, nil
}
