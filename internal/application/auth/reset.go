package auth

import (
	"context"

	"github.com/inkpress/identity-service/internal/domain"
	"github.com/inkpress/identity-service/internal/infrastructure/security"
	"github.com/inkpress/identity-service/internal/logger"
)

// RequestPasswordReset always reports success, whether or not the email
// resolves to an account (prevents enumeration). When it does, a reset token
// is issued and handed to the email pipeline.
//
// The token is NOT persisted and ResetPassword does not require it; see
// CheckResetToken and DESIGN.md for the preserved limitation.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return nil
	}

	u, err := s.directory.GetByEmail(ctx, email)
	if err != nil {
		// Unknown email and storage trouble both collapse into "success";
		// only mutating operations surface storage failures.
		if !domain.Is(err, "user_not_found") {
			logger.WithCtx(ctx).Error().Err(err).Msg("password reset lookup failed")
		}
		return nil
	}

	token, err := security.NewResetToken()
	if err != nil {
		logger.WithCtx(ctx).Error().Err(err).Int64("user_id", u.ID).Msg("reset token generation failed")
		return nil
	}

	if s.pub != nil {
		evt := PasswordResetRequested{
			Email:       u.Email,
			Token:       token,
			RequestedAt: s.now(),
		}
		if err := s.pub.PublishPasswordResetRequested(ctx, evt); err != nil {
			logger.WithCtx(ctx).Error().Err(err).Int64("user_id", u.ID).Msg("failed to publish password reset event")
		}
	}

	return nil
}

// CheckResetToken validates only the shape of a token, not that it was issued
// or belongs to anyone. Preserved structural gap; do not tighten silently.
func (s *Service) CheckResetToken(token string) bool {
	return security.CheckResetToken(token)
}

// ResetPassword re-hashes and overwrites the password for the given email.
// It does not demand a reset token. Unknown emails surface as not_found.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) (domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if len(newPassword) < MinPasswordLength {
		return domain.User{}, domain.ErrPasswordTooShort(MinPasswordLength)
	}

	u, err := s.directory.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return domain.User{}, domain.ErrHashFailed(err)
	}

	if err := s.directory.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return domain.User{}, err
	}

	u.PasswordHash = hash
	return u, nil
}
