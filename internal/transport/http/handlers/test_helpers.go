package http_handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/inkpress/identity-service/internal/application/auth"
	"github.com/inkpress/identity-service/internal/infrastructure/memory"
	"github.com/inkpress/identity-service/internal/infrastructure/security"
)

// mustJSONBody marshals v to JSON and returns an io.Reader for request body.
func mustJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

// mustReadJSON decodes JSON from r into out, unwrapping the {"data": ...}
// success envelope when the body carries one. A direct decode must never run
// against an enveloped body: unknown keys are ignored, so it would "succeed"
// and leave out zeroed.
func mustReadJSON(t *testing.T, r io.Reader, out any) {
	t.Helper()

	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("decode json failed; body=%s err=%v", string(raw), err)
	}

	if data, ok := fields["data"]; ok {
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("decode data failed; body=%s err=%v", string(raw), err)
		}
		return
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode json failed; body=%s err=%v", string(raw), err)
	}
}

// readCookie finds cookie by name from response headers.
func readCookie(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// newTestHandler wires an AuthHandler over in-memory infrastructure.
func newTestHandler(t *testing.T) (*AuthHandler, *auth.Service, *memory.Publisher, *security.SessionSigner) {
	t.Helper()

	dir := memory.NewDirectory()
	pub := memory.NewPublisher()
	signer := security.NewSessionSigner("handler-test-secret", "identity-service-test")
	svc := auth.NewService(dir, security.NewPBKDF2Hasher(), signer, pub, auth.Config{
		SessionTTL:  time.Hour,
		RememberTTL: 48 * time.Hour,
	})
	return NewAuthHandler(svc, false), svc, pub, signer
}
