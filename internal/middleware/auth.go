package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/aiqa-platform/user-service/internal/apperr"
	"github.com/aiqa-platform/user-service/internal/auth"
	"github.com/aiqa-platform/user-service/internal/http/respond"
	"github.com/aiqa-platform/user-service/internal/models"
	"github.com/aiqa-platform/user-service/internal/storage"
)

type contextKey string

const principalContextKey contextKey = "principal"

// Authenticate extracts and verifies a bearer token and, on success,
// binds the resolved user into the request context. A missing header,
// wrong scheme, bad token, or unknown subject all leave the request
// anonymous rather than rejecting it — whether anonymous access is
// acceptable is decided per route by RequireAuth. The gate never mutates
// or re-issues tokens, and binding happens at most once per request.
func Authenticate(codec *auth.TokenCodec, store storage.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if PrincipalFrom(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			token := extractBearer(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			username, err := codec.VerifySubject(token, time.Now())
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := store.FindByUsername(r.Context(), username)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey, &user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests with no bound principal. The response is
// a uniform 401: missing, malformed, expired, and tampered tokens are
// deliberately indistinguishable to the client.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if PrincipalFrom(r.Context()) == nil {
			respond.Error(w, apperr.ErrInvalidToken)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PrincipalFrom returns the authenticated user bound to the request, or
// nil for anonymous requests.
func PrincipalFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(principalContextKey).(*models.User)
	return user
}

// MustPrincipal returns the authenticated user or panics. Only for
// handlers behind RequireAuth.
func MustPrincipal(ctx context.Context) *models.User {
	user := PrincipalFrom(ctx)
	if user == nil {
		panic("no principal in context - auth middleware not applied?")
	}
	return user
}

// WithPrincipal binds a user into ctx. Exported for handler tests that
// bypass the middleware chain.
func WithPrincipal(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, principalContextKey, user)
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
