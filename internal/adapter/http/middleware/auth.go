package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/oseme/esusu/internal/domain"
	"github.com/oseme/esusu/internal/infrastructure/auth"
)

// ContextKey is the type for context keys.
type ContextKey string

// MemberContextKey is the context key for the authenticated member.
const MemberContextKey ContextKey = "member"

// Auth creates an authentication middleware that resolves the bearer
// token into a domain.Member and stores it on the request context.
func Auth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			member := &domain.Member{
				ID:    claims.MemberID,
				Email: claims.Email,
				Role:  claims.Role,
			}

			ctx := context.WithValue(r.Context(), MemberContextKey, member)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole creates a middleware rejecting members below a minimum
// role. It must run after Auth.
func RequireRole(minRole domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			member, ok := MemberFromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !member.Role.AtLeast(minRole) {
				http.Error(w, "insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MemberFromContext extracts the authenticated member from context.
func MemberFromContext(ctx context.Context) (*domain.Member, bool) {
	member, ok := ctx.Value(MemberContextKey).(*domain.Member)
	return member, ok
}
