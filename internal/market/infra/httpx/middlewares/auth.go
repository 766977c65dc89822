// Package middlewares holds the authentication and role-guard middlewares
// shared by the REST routes and the websocket endpoint.
package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/freshly-yours/marketplace/internal/market/core/domain/entity"
	"github.com/freshly-yours/marketplace/internal/market/core/ports"
)

// actorKey is an unexported type for context keys in this package. Using a
// custom type prevents collisions with keys from other packages.
type actorKey struct{}

// Authenticator exchanges a bearer credential for a verified actor and
// stores it on the request context. The websocket endpoint also accepts the
// token as a "token" query parameter, since browser WebSocket clients cannot
// set an Authorization header on the upgrade request.
func Authenticator(auth ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w, "No token provided, access denied")
				return
			}

			actor, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				unauthorized(w, "Token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), actorKey{}, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated requests whose actor has the wrong role.
func RequireRole(role entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok || actor.Role != role {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","message":"Access denied. ` + string(role) + ` only."}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ActorFromContext returns the verified actor the Authenticator attached.
func ActorFromContext(ctx context.Context) (*entity.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(*entity.Actor)
	return actor, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","message":"` + msg + `"}`))
}
