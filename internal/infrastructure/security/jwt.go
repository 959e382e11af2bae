package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkpress/identity-service/internal/domain"
)

// SessionSigner issues and reads the cookie-transported session token. The
// token is stateless: its claims are the whole session, there is no
// server-side store, and logout is just cookie expiry. Payloads are
// HMAC-signed so claims cannot be forged client-side.
type SessionSigner struct {
	secret []byte
	issuer string
}

func NewSessionSigner(secret string, issuer string) *SessionSigner {
	return &SessionSigner{
		secret: []byte(secret),
		issuer: issuer,
	}
}

type sessionClaims struct {
	UserID  int64 `json:"uid"`
	IsAdmin bool  `json:"adm,omitempty"`
	jwt.RegisteredClaims
}

// Issue embeds {userId, isAdmin} as signed claims. The caller decides the
// elevated flag; the signer never consults the directory.
func (s *SessionSigner) Issue(userID int64, isAdmin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

// Read resolves a token into a principal. It never raises: absent, expired,
// tampered or otherwise unreadable tokens all resolve to the anonymous
// principal. No directory lookup happens here, so claims reflect the user's
// role at issuance time.
func (s *SessionSigner) Read(token string) domain.Principal {
	if token == "" {
		return domain.Anonymous()
	}

	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrUnauthenticated()
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Anonymous()
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.UserID <= 0 {
		return domain.Anonymous()
	}

	return domain.SignedIn(claims.UserID, claims.IsAdmin)
}
