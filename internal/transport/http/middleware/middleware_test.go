package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inkpress/identity-service/internal/domain"
	"github.com/inkpress/identity-service/internal/infrastructure/security"
	appctx "github.com/inkpress/identity-service/internal/pkg/context"
	"github.com/inkpress/identity-service/internal/transport/http/response"
)

func TestRequestIDGeneratesWhenAbsent(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = appctx.GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatalf("expected a generated request id in context")
	}
	if got := rr.Header().Get(HeaderXRequestID); got != seen {
		t.Fatalf("response header %q != context id %q", got, seen)
	}
}

func TestRequestIDEchoesInbound(t *testing.T) {
	t.Parallel()

	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := appctx.GetRequestID(r.Context()); got != "req-abc" {
			t.Fatalf("expected req-abc, got %q", got)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "req-abc")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get(HeaderXRequestID); got != "req-abc" {
		t.Fatalf("inbound id not echoed: %q", got)
	}
}

func TestSessionResolvesCookieToPrincipal(t *testing.T) {
	t.Parallel()

	signer := security.NewSessionSigner("secret", "test")
	token, err := signer.Issue(42, true, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var p domain.Principal
	h := Session(signer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p = PrincipalFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: security.SessionCookieName, Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !p.Authenticated || p.UserID != 42 || !p.IsAdmin {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestSessionMissingCookieIsAnonymous(t *testing.T) {
	t.Parallel()

	signer := security.NewSessionSigner("secret", "test")

	var p domain.Principal
	h := Session(signer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p = PrincipalFromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if p.Authenticated {
		t.Fatalf("expected anonymous principal, got %+v", p)
	}
}

func TestSessionTamperedCookieIsAnonymous(t *testing.T) {
	t.Parallel()

	signer := security.NewSessionSigner("secret", "test")
	token, _ := signer.Issue(42, false, time.Hour)

	var p domain.Principal
	h := Session(signer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p = PrincipalFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: security.SessionCookieName, Value: token + "x"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if p.Authenticated {
		t.Fatalf("tampered cookie must resolve to anonymous, got %+v", p)
	}
}

func requireChain(t *testing.T, role domain.Role, p domain.Principal) *httptest.ResponseRecorder {
	t.Helper()

	h := Require(role, response.WriteError)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithPrincipal(req.Context(), p))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRequireDistinguishes401From403(t *testing.T) {
	t.Parallel()

	if rr := requireChain(t, domain.RoleUser, domain.Anonymous()); rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous on user route: expected 401, got %d", rr.Code)
	}
	if rr := requireChain(t, domain.RoleAdmin, domain.Anonymous()); rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous on admin route: expected 401, got %d", rr.Code)
	}
	if rr := requireChain(t, domain.RoleAdmin, domain.SignedIn(1, false)); rr.Code != http.StatusForbidden {
		t.Fatalf("non-admin on admin route: expected 403, got %d", rr.Code)
	}
	if rr := requireChain(t, domain.RoleAdmin, domain.SignedIn(1, true)); rr.Code != http.StatusOK {
		t.Fatalf("admin on admin route: expected 200, got %d", rr.Code)
	}
	if rr := requireChain(t, domain.RoleUser, domain.SignedIn(1, false)); rr.Code != http.StatusOK {
		t.Fatalf("user on user route: expected 200, got %d", rr.Code)
	}
}

func TestMetricsPassesThrough(t *testing.T) {
	t.Parallel()

	h := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rr.Code != http.StatusTeapot {
		t.Fatalf("middleware altered status: %d", rr.Code)
	}
}
