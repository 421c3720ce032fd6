package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pearlbistro/ordering-api/internal/http/response"
	"github.com/pearlbistro/ordering-api/pkg/auth"
	"github.com/pearlbistro/ordering-api/pkg/logger"
)

type ctxKey string

const CtxClaims ctxKey = "claims"

// RoleAuthority resolves an identity's role. Backed by the user store in
// production; the guard only needs this one lookup.
type RoleAuthority interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// Guard composes the route-level gates. RequireAuth must run before
// RequireAdmin or RequireSelf; both read the claims it stores in context.
type Guard struct {
	roles  RoleAuthority
	secret string
}

func NewGuard(roles RoleAuthority, secret string) *Guard {
	return &Guard{roles: roles, secret: secret}
}

// RequireAuth rejects with 401 before any handler or store logic runs.
func (g *Guard) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			response.Unauthorized(w, "Missing or invalid authorization header")
			return
		}

		raw := strings.TrimPrefix(authz, "Bearer ")
		claims, err := auth.Parse(raw, g.secret)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), CtxClaims, claims)
		ctx = context.WithValue(ctx, logger.UserEmailKey, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin performs a fresh role lookup for the verified identity. A
// lookup failure fails closed.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := Claims(r)
		if claims == nil {
			response.Unauthorized(w, "Missing or invalid authorization header")
			return
		}

		isAdmin, err := g.roles.IsAdmin(r.Context(), claims.Email)
		if err != nil {
			logger.ErrorContext(r.Context(), "Role lookup failed", "error", err, "email", claims.Email)
			response.Forbidden(w, "Admin access required")
			return
		}
		if !isAdmin {
			response.Forbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSelf restricts a route to the identity named by the given URL param.
func (g *Guard) RequireSelf(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := Claims(r)
			if claims == nil {
				response.Unauthorized(w, "Missing or invalid authorization header")
				return
			}

			if !strings.EqualFold(chi.URLParam(r, param), claims.Email) {
				response.Forbidden(w, "Forbidden access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func Claims(r *http.Request) *auth.Claims {
	v := r.Context().Value(CtxClaims)
	if v == nil {
		return nil
	}
	return v.(*auth.Claims)
}
