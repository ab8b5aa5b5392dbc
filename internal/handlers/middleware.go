package handlers

import (
	"errors"
	"net/http"

	"github.com/userdesk/apiserver/internal/auth"
	"github.com/userdesk/apiserver/internal/services"
	"github.com/userdesk/apiserver/internal/store"
)

// RequireAuth enforces bearer-token authentication. Checks run in a
// fixed order and short-circuit: header presence, Bearer scheme, token
// validity, token freshness, user existence. Only when all pass is the
// resolved user attached to the request context and the wrapped
// handler invoked. No authorization decision is cached across
// requests.
func RequireAuth(tokens *auth.TokenService, users *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			userID, err := tokens.Validate(tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeError(w, http.StatusNotFound, "user not found")
					return
				}
				writeError(w, http.StatusInternalServerError, "failed to load user")
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// RequireAdmin runs the full RequireAuth chain and additionally
// requires the resolved user to be an administrator.
func RequireAdmin(tokens *auth.TokenService, users *services.UserService) func(http.Handler) http.Handler {
	requireAuth := RequireAuth(tokens, users)
	return func(next http.Handler) http.Handler {
		return requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := UserFromContext(r.Context())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !user.IsAdmin {
				writeError(w, http.StatusForbidden, "admin privileges required")
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
