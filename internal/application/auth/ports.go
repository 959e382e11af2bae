package auth

import (
	"context"
	"time"

	"github.com/inkpress/identity-service/internal/domain"
)

/*
Directory
---------
Persistence port for users. The directory is the single source of truth and
the only shared resource: this core never caches User records across requests,
so password resets and role changes are visible on the next read.
*/
type Directory interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)

	// Create assigns the surrogate ID. A duplicate email must surface as
	// domain.ErrEmailAlreadyExists; callers rely on the directory's unique
	// constraint as the concurrency backstop.
	Create(ctx context.Context, u domain.User) (domain.User, error)

	UpdateLastSignedIn(ctx context.Context, userID int64, at time.Time) error
	UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error

	// List backs the admin user listing.
	List(ctx context.Context) ([]domain.User, error)
}

/*
PasswordHasher
--------------
Credential hashing and verification. Verify reports false for wrong passwords
AND malformed stored hashes; the two cases must be indistinguishable.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) bool
}

/*
SessionCodec
------------
Issues and reads the cookie-transported session token.
Read never fails: unreadable input is the anonymous principal.
*/
type SessionCodec interface {
	Issue(userID int64, isAdmin bool, ttl time.Duration) (string, error)
	Read(token string) domain.Principal
}

/*
EventPublisher
--------------
Hands reset requests to the email pipeline. The identity service does not
send email itself. Implementations must be safe to skip: a nil publisher
disables the pipeline without affecting the auth contract.
*/
type EventPublisher interface {
	PublishPasswordResetRequested(ctx context.Context, evt PasswordResetRequested) error
}

// PasswordResetRequested is the message the email pipeline consumes to send
// the reset link.
type PasswordResetRequested struct {
	Email       string    `json:"email"`
	Token       string    `json:"token"`
	RequestedAt time.Time `json:"requested_at"`
}
