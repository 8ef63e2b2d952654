package middleware

import (
	"context"
	"log/slog"
	"net/http"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/andrewpaige1/revisa-api/models"
	"github.com/andrewpaige1/revisa-api/utils"
)

type contextKey string

const userKey contextKey = "user"

// UserSyncer resolves a token subject to a stored user.
type UserSyncer interface {
	SyncUser(ctx context.Context, auth0ID, nickname string) (*models.User, error)
}

// SyncUserMiddleware ensures the token subject exists in the DB and attaches it to context
func SyncUserMiddleware(users UserSyncer) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth0ID, ok := utils.GetAuth0ID(r)
			if !ok {
				http.Error(w, "No token subject found", http.StatusUnauthorized)
				return
			}

			user, err := users.SyncUser(r.Context(), auth0ID, nicknameClaim(r))
			if err != nil {
				slog.Error("sync user", "subject", auth0ID, "error", err)
				http.Error(w, "Failed to load user", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

func nicknameClaim(r *http.Request) string {
	claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !ok {
		return ""
	}
	if custom, ok := claims.CustomClaims.(*CustomClaims); ok && custom != nil {
		return custom.Nickname
	}
	return ""
}

// UserFromContext returns the user attached by SyncUserMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}
