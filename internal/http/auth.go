package httpapi

import (
	"context"
	"net/http"
	"strings"

	"portfolio-backend-go/internal/services"
)

type contextKey string

const ctxSubject contextKey = "subject"

// WithAdminAuth gates a route behind a valid bearer token carrying the admin
// subject. It rejects before any handler touches the store.
func WithAdminAuth(tokens services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			claims, err := tokens.Authorize(tokenStr)
			if err != nil {
				WriteServiceError(w, err)
				return
			}
			subject, _ := claims["sub"].(string)
			ctx := context.WithValue(r.Context(), ctxSubject, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentSubject returns the authenticated token subject, if any.
func CurrentSubject(r *http.Request) string {
	if value, ok := r.Context().Value(ctxSubject).(string); ok {
		return value
	}
	return ""
}
