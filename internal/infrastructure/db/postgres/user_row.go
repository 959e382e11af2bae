package postgres

import "time"

type userRow struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         string
	LastSignedIn *time.Time
	CreatedAt    time.Time
}
