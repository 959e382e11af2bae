package domain

import "time"

type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string // empty for non-password login methods
	Role         Role
	LastSignedIn time.Time
	CreatedAt    time.Time
}

// HasPassword reports whether the account can authenticate with a password.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}
