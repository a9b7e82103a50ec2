package middleware

import (
	"errors"
	"net/http"

	"github.com/vaughan-dsouza/betasks/internal/applog"
	"github.com/vaughan-dsouza/betasks/internal/models"
	"github.com/vaughan-dsouza/betasks/internal/session"
	"github.com/vaughan-dsouza/betasks/internal/utils"
)

// Authenticate requires a valid session cookie. A missing cookie is 401 and
// any other failure is 403.
func Authenticate(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := sessions.Verify(r.Context(), session.FromRequest(r))
			if errors.Is(err, session.ErrMissingToken) {
				utils.JSONError(w, http.StatusUnauthorized, "No token provided")
				return
			}
			if err != nil {
				applog.Security(r, "auth.token.reject", map[string]any{"reason": err.Error()})
				utils.JSONError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			// push claims into context
			next.ServeHTTP(w, r.WithContext(utils.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := utils.ClaimsFrom(r.Context())
		if !ok || claims.Role != models.RoleAdmin {
			var uid int64
			if ok {
				uid = claims.ID
			}
			applog.Security(r, "access.denied.admin", map[string]any{"user_id": uid})
			utils.JSONError(w, http.StatusForbidden, "Access denied. Admins only.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
