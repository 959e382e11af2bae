package response

import (
	"net/http"

	appctx "github.com/inkpress/identity-service/internal/pkg/context"
)

// RequestIDFromContext extracts the request id the middleware stored, if any.
func RequestIDFromContext(r *http.Request) string {
	return appctx.GetRequestID(r.Context())
}
