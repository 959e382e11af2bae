package auth

import (
	"context"

	"github.com/inkpress/identity-service/internal/domain"
)

// GetUserByID resolves the account behind a session principal.
func (s *Service) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return s.directory.GetByID(ctx, id)
}

// ListUsers returns every account, newest first. Admin-only at the transport
// layer; the service does not re-check.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.directory.List(ctx)
}
