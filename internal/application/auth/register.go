package auth

import (
	"context"
	"strings"

	"github.com/inkpress/identity-service/internal/domain"
)

// NormalizeEmail is how every entry point canonicalises an email before it
// reaches the directory.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func localPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

// Register creates a user account. No session is issued; the caller must log
// in separately. A duplicate email surfaces as a distinct conflict (email
// ownership is not a secret on register).
func (s *Service) Register(ctx context.Context, email, password, name string) (domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, domain.ErrPasswordTooShort(MinPasswordLength)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		// default to the email local part, as the site has always done
		name = localPart(email)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		LastSignedIn: s.now(),
	}

	created, err := s.directory.Create(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	return created, nil
}
