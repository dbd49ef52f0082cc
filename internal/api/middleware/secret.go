package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/catan-leaderboard/internal/api/apierr"
)

type contextKey string

const secretContextKey contextKey = "board-secret"

// RequireSecret rejects requests that carry no board password. The password
// travels as a bearer token and is checked against the board by the service.
func RequireSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret := extractSecret(r)
		if secret == "" {
			apierr.WriteError(w, apierr.NewUnauthorizedError())
			return
		}

		ctx := context.WithValue(r.Context(), secretContextKey, secret)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractSecret extracts the board password from the Authorization header
func extractSecret(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetSecret returns the board password from the request context
func GetSecret(ctx context.Context) string {
	secret, _ := ctx.Value(secretContextKey).(string)
	return secret
}
