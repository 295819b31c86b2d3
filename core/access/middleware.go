package access

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/relabs-tech/catalog/core/logger"
)

// contextKey is the type for context keys. Go linter does not like plain strings
type contextKey string

// the predefined context key
const (
	contextKeyClaims contextKey = "_claims_"
)

// ContextWithClaims returns a new context with the claims added to it
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, contextKeyClaims, claims)
}

// ClaimsFromContext retrieves claims from the context, or nil if the
// request was not authenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, ok := ctx.Value(contextKeyClaims).(*Claims)
	if ok {
		return claims
	}
	return nil
}

// NewBearerMiddleware returns a middleware handler to validate bearer tokens.
//
// Tokens are accepted as "Authorization: Bearer" header. A request without
// a token is rejected with http.StatusUnauthorized, a request with an
// invalid or expired token with http.StatusForbidden.
//
// On success the decoded claims are stored in the request context and the
// request logger is extended with the caller's identity.
func NewBearerMiddleware(tokens *TokenService) mux.MiddlewareFunc {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			segments := strings.Fields(r.Header.Get("Authorization"))
			if len(segments) < 2 {
				http.Error(w, "bearer token missing", http.StatusUnauthorized)
				return
			}
			claims, err := tokens.Verify(segments[1])
			if err != nil {
				http.Error(w, "invalid bearer token", http.StatusForbidden)
				return
			}
			ctx := ContextWithClaims(r.Context(), claims)
			ctx, _ = logger.ContextWithLoggerIdentity(ctx, claims.Username)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
