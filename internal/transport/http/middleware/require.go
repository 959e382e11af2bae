package middleware

import (
	"net/http"

	"github.com/inkpress/identity-service/internal/domain"
)

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// Require gates a route on a minimum role. An anonymous principal is rejected
// with 401, an authenticated one lacking the role with 403; the two are never
// conflated. Assumes Session() already ran.
func Require(role domain.Role, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := PrincipalFromContext(r.Context())
			if err := domain.Authorize(p, role); err != nil {
				writeErr(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
