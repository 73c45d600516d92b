package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// RequireAuth creates a middleware that validates the bearer token in the
// Authorization header and injects the authenticated user ID into the
// request context. Requests without a verifiable token never reach the
// wrapped handler.
func RequireAuth(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "authorization header required")
				return
			}

			// Accept both "Bearer <token>" and a bare token, which is
			// what the original web client sent.
			tokenString := authHeader
			if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 {
				if !strings.EqualFold(parts[0], "Bearer") {
					writeAuthError(w, "authorization header format must be Bearer {token}")
					return
				}
				tokenString = parts[1]
			}

			claims, err := tokens.ValidateAccessToken(tokenString)
			if err != nil {
				writeAuthError(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user ID placed in the
// context by RequireAuth.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDContextKey).(int64)
	return id, ok
}

// WithUserID returns a context carrying an authenticated user ID. Tests
// use it to exercise handlers without running the middleware.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"code":"NOT_AUTHENTICATED","error":"` + message + `"}`))
}
