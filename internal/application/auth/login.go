package auth

import (
	"context"

	"github.com/inkpress/identity-service/internal/domain"
)

// Login authenticates a user and issues a session token with non-elevated
// claims, regardless of the user's stored role. Administrative claims are
// only ever issued by AdminLogin.
//
// IMPORTANT: unknown email, passwordless account and wrong password must all
// return the same invalid_credentials error, and the unknown-email path still
// performs a full-cost verification so timing does not leak existence.
func (s *Service) Login(ctx context.Context, email, password string, remember bool) (domain.User, SessionToken, error) {
	u, err := s.authenticate(ctx, email, password)
	if err != nil {
		return domain.User{}, SessionToken{}, err
	}

	tok, err := s.issueSession(u, false, remember)
	if err != nil {
		return domain.User{}, SessionToken{}, err
	}
	return u, tok, nil
}

// AdminLogin authenticates a user that must already hold the admin role and
// issues an elevated session. The role gate folds into invalid_credentials:
// a non-admin's correct password must look exactly like a wrong one, and the
// rejected attempt leaves the record untouched.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (domain.User, SessionToken, error) {
	u, err := s.verifyCredentials(ctx, email, password)
	if err != nil {
		return domain.User{}, SessionToken{}, err
	}
	if u.Role != domain.RoleAdmin {
		return domain.User{}, SessionToken{}, domain.ErrInvalidCredentials()
	}

	u, err = s.recordSignIn(ctx, u)
	if err != nil {
		return domain.User{}, SessionToken{}, err
	}

	tok, err := s.issueSession(u, true, false)
	if err != nil {
		return domain.User{}, SessionToken{}, err
	}
	return u, tok, nil
}

// authenticate resolves email+password to a user and records the sign-in.
func (s *Service) authenticate(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.verifyCredentials(ctx, email, password)
	if err != nil {
		return domain.User{}, err
	}
	return s.recordSignIn(ctx, u)
}

// verifyCredentials checks email+password without mutating anything.
func (s *Service) verifyCredentials(ctx context.Context, email, password string) (domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.User{}, domain.ErrInvalidCredentials()
	}

	u, err := s.directory.GetByEmail(ctx, email)
	if err != nil {
		if domain.Is(err, "user_not_found") {
			// Pay the same derivation cost as the happy path.
			s.hasher.Verify(password, s.decoyHash)
			return domain.User{}, domain.ErrInvalidCredentials()
		}
		// Storage failures are fatal and must not be folded into
		// invalid_credentials.
		return domain.User{}, err
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return domain.User{}, domain.ErrInvalidCredentials()
	}
	return u, nil
}

func (s *Service) recordSignIn(ctx context.Context, u domain.User) (domain.User, error) {
	now := s.now()
	if err := s.directory.UpdateLastSignedIn(ctx, u.ID, now); err != nil {
		return domain.User{}, err
	}
	u.LastSignedIn = now
	return u, nil
}

func (s *Service) issueSession(u domain.User, elevated, remember bool) (SessionToken, error) {
	ttl := s.sessionTTL
	if remember {
		ttl = s.rememberTTL
	}

	value, err := s.sessions.Issue(u.ID, elevated, ttl)
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Value: value, TTL: ttl}, nil
}
