package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"memberfund-backend/internal/domain"
	"memberfund-backend/internal/engine"
	"memberfund-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "member_claims"

// AuthMiddleware validates the bearer token and stores the claims in the
// request context for handlers downstream.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, security.ErrInvalidToken)
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, err)
				return
			}
			if claims.Type != security.TokenTypeAccess {
				writeError(w, security.ErrWrongTokenType)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the authenticated member's claims, or nil on
// an unauthenticated request.
func ClaimsFromContext(ctx context.Context) *security.MemberClaims {
	claims, _ := ctx.Value(claimsKey).(*security.MemberClaims)
	return claims
}

// RequireRoles gates a handler to the given roles. It assumes
// AuthMiddleware already ran.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				writeError(w, security.ErrInvalidToken)
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, fmt.Errorf("%w: role %s may not access this resource", engine.ErrUnauthorized, claims.Role))
		})
	}
}
