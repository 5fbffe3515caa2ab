package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/ollanpharmacy/pharmacy-api/internal/users"
)

type ctxKey struct{}

// UserFrom returns the authenticated user stored by Middleware.
func UserFrom(ctx context.Context) (users.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(users.User)
	return u, ok
}

// Middleware authenticates a bearer token from the Authorization header, or
// from a "token" query parameter for websocket clients that cannot set
// headers.
func Middleware(secret string, repo *users.Repo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				token = strings.TrimPrefix(h, "Bearer ")
			} else if q := r.URL.Query().Get("token"); q != "" {
				token = q
			}
			if token == "" {
				http.Error(w, `{"error":"no token provided"}`, http.StatusUnauthorized)
				return
			}
			claims, err := Parse(secret, token)
			if err != nil {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}
			u, err := repo.GetByID(r.Context(), claims.UserID)
			if err != nil {
				http.Error(w, `{"error":"user not found"}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, u)))
		})
	}
}

// RequireRole gates a subtree to one role. Must run after Middleware.
func RequireRole(role users.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFrom(r.Context())
			if !ok || u.Role != role {
				http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
