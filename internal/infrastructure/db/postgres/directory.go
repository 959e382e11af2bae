package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/inkpress/identity-service/internal/domain"
)

// Directory is the Postgres-backed implementation of auth.Directory.
// The users table carries a UNIQUE constraint on email; Create surfaces a
// violation as domain.ErrEmailAlreadyExists so the service can treat it as
// the concurrency backstop.
type Directory struct {
	db *sql.DB
}

func NewDirectory(db *sql.DB) *Directory {
	return &Directory{db: db}
}

// ---------- helpers ----------

const userColumns = `id, email, name, password_hash, role, last_signed_in, created_at`

func scanUserRow(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Email,
		&ur.Name,
		&ur.PasswordHash,
		&ur.Role,
		&ur.LastSignedIn,
		&ur.CreatedAt,
	)
	return ur, err
}

func toDomainUser(ur userRow) domain.User {
	u := domain.User{
		ID:           ur.ID,
		Email:        ur.Email,
		Name:         ur.Name,
		PasswordHash: ur.PasswordHash,
		Role:         domain.Role(ur.Role),
		CreatedAt:    ur.CreatedAt,
	}
	if ur.LastSignedIn != nil {
		u.LastSignedIn = *ur.LastSignedIn
	}
	return u
}

func isDuplicate(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "duplicate")
}

// ---------- auth.Directory ----------

func (d *Directory) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1;
`
	ur, err := scanUserRow(d.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrStorageUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (d *Directory) GetByID(ctx context.Context, id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, domain.ErrUserNotFound()
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := scanUserRow(d.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrStorageUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (d *Directory) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}

	const q = `
INSERT INTO users (email, name, password_hash, role, last_signed_in)
VALUES ($1,$2,$3,$4,$5)
RETURNING ` + userColumns + `;
`
	var lastSignedIn *time.Time
	if !u.LastSignedIn.IsZero() {
		lastSignedIn = &u.LastSignedIn
	}

	ur, err := scanUserRow(d.db.QueryRowContext(ctx, q,
		u.Email, u.Name, u.PasswordHash, string(u.Role), lastSignedIn,
	))
	if err != nil {
		if isDuplicate(err) {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrStorageUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (d *Directory) UpdateLastSignedIn(ctx context.Context, userID int64, at time.Time) error {
	const q = `
UPDATE users
SET last_signed_in = $2
WHERE id = $1;
`
	res, err := d.db.ExecContext(ctx, q, userID, at)
	if err != nil {
		return domain.ErrStorageUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func (d *Directory) UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error {
	if newHash == "" {
		return domain.ErrMissingField("password_hash")
	}

	const q = `
UPDATE users
SET password_hash = $2
WHERE id = $1;
`
	res, err := d.db.ExecContext(ctx, q, userID, newHash)
	if err != nil {
		return domain.ErrStorageUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func (d *Directory) List(ctx context.Context) ([]domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
ORDER BY id DESC;
`
	rows, err := d.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrStorageUnavailable(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var ur userRow
		if err := rows.Scan(
			&ur.ID,
			&ur.Email,
			&ur.Name,
			&ur.PasswordHash,
			&ur.Role,
			&ur.LastSignedIn,
			&ur.CreatedAt,
		); err != nil {
			return nil, domain.ErrStorageUnavailable(err)
		}
		users = append(users, toDomainUser(ur))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrStorageUnavailable(err)
	}
	return users, nil
}
