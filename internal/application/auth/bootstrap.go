package auth

import (
	"context"

	"github.com/inkpress/identity-service/internal/domain"
)

// EnsureAdmin guarantees an admin account exists for the given credentials.
// Existing accounts are returned untouched, even if their role is not admin;
// promotion is an explicit operational action, not a boot side effect.
//
// Safe to run on every start and from multiple replicas at once: a concurrent
// create losing the race hits the unique-email constraint and re-fetches.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, domain.ErrPasswordTooShort(MinPasswordLength)
	}

	if u, err := s.directory.GetByEmail(ctx, email); err == nil {
		return u, nil
	} else if !domain.Is(err, "user_not_found") {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		Email:        email,
		Name:         localPart(email),
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		LastSignedIn: s.now(),
	}
	created, err := s.directory.Create(ctx, u)
	if err == nil {
		return created, nil
	}
	if domain.Is(err, "email_already_exists") {
		// Lost the race to another bootstrapper.
		return s.directory.GetByEmail(ctx, email)
	}
	return domain.User{}, err
}
