package router

import (
	"net/http"

	"github.com/verdantly/wellness-api/internal/datasources"
	"github.com/verdantly/wellness-api/internal/domain"
)

// NewRequireAdminMiddleware builds a middleware that rejects requests from
// users whose account does not carry the admin flag. It implies requireAuth.
func NewRequireAdminMiddleware(users datasources.UserFetcher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := domain.LoggerFromContext(ctx)

			userID := domain.UserIDFromContext(ctx)
			if userID == 0 {
				logger.ErrorContext(ctx, "attempt to use admin endpoint without user ID")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			user, err := users.GetUser(ctx, userID)
			if err != nil {
				logger.ErrorContext(ctx, "unable to fetch user for admin check",
					"error", err, "user_id", userID)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			if !user.IsAdmin {
				logger.WarnContext(ctx, "non-admin user attempted admin endpoint", "user_id", userID)
				w.WriteHeader(http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
