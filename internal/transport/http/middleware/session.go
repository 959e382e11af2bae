package middleware

import (
	"context"
	"net/http"

	"github.com/inkpress/identity-service/internal/domain"
	"github.com/inkpress/identity-service/internal/infrastructure/security"
)

type ctxKey string

const ctxPrincipal ctxKey = "principal"

// SessionReader resolves a raw session token into a principal. Unreadable
// tokens resolve to the anonymous principal, never an error.
type SessionReader interface {
	Read(token string) domain.Principal
}

// Session reads the session cookie on every request and stores the resulting
// principal in the context. It never rejects: public endpoints see the
// anonymous principal, gates downstream decide what that means.
func Session(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := security.ReadSessionCookie(r)
			if err != nil {
				token = ""
			}
			p := sessions.Read(token)

			ctx := WithPrincipal(r.Context(), p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

// PrincipalFromContext returns the stored principal, or the anonymous
// principal when the session middleware did not run.
func PrincipalFromContext(ctx context.Context) domain.Principal {
	if p, ok := ctx.Value(ctxPrincipal).(domain.Principal); ok {
		return p
	}
	return domain.Anonymous()
}
