package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pennywise/client/internal/models"
	"github.com/pennywise/client/internal/services"
)

type contextKey string

const (
	userKey          contextKey = "user"
	correlationIDKey contextKey = "correlationID"
)

// TokenVerifier checks a bearer token. *auth.Issuer satisfies it.
type TokenVerifier interface {
	Verify(token string) (models.User, error)
}

// Auth rejects requests without a valid bearer token and stores the token's
// user in the request context.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				services.SendErrorResponse(w, "Authorization header required", http.StatusUnauthorized, nil)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				services.SendErrorResponse(w, "Invalid authorization header format", http.StatusUnauthorized, nil)
				return
			}

			user, err := verifier.Verify(parts[1])
			if err != nil {
				services.SendErrorResponse(w, "Invalid token", http.StatusUnauthorized, nil)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom returns the user stored by Auth.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}
