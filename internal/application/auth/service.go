package auth

import (
	"time"
)

// MinPasswordLength applies to register and reset. Login accepts any input;
// short passwords simply fail verification.
const MinPasswordLength = 6

type Service struct {
	directory Directory
	hasher    PasswordHasher
	sessions  SessionCodec
	pub       EventPublisher // nil disables the reset-email pipeline

	sessionTTL  time.Duration
	rememberTTL time.Duration

	// decoyHash is verified against when a login email does not resolve to a
	// user, so the request still pays full derivation cost and latency does
	// not reveal whether the account exists.
	decoyHash string

	now func() time.Time
}

type Config struct {
	SessionTTL  time.Duration
	RememberTTL time.Duration
}

func NewService(directory Directory, hasher PasswordHasher, sessions SessionCodec, pub EventPublisher, cfg Config) *Service {
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	rememberTTL := cfg.RememberTTL
	if rememberTTL <= 0 {
		rememberTTL = 30 * 24 * time.Hour
	}

	decoy, err := hasher.Hash("decoy-credential-for-timing-parity")
	if err != nil {
		// Verify against the empty string still fails closed; only the
		// timing guarantee degrades.
		decoy = ""
	}

	return &Service{
		directory:   directory,
		hasher:      hasher,
		sessions:    sessions,
		pub:         pub,
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
		decoyHash:   decoy,
		now:         time.Now,
	}
}

// SessionToken is what the authentication endpoints hand to the transport
// layer; the TTL drives the cookie MaxAge so both always agree.
type SessionToken struct {
	Value string
	TTL   time.Duration
}
