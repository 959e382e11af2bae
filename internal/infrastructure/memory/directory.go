// Package memory provides in-process implementations of the persistence and
// messaging ports, used by tests and local development without Postgres or
// RabbitMQ.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/inkpress/identity-service/internal/domain"
)

// Directory is a mutex-guarded map implementation of auth.Directory. It
// enforces the same unique-email constraint as the Postgres schema, so the
// conflict paths of the service are exercisable without a database.
type Directory struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]domain.User
	byEmail map[string]int64
}

func NewDirectory() *Directory {
	return &Directory{
		nextID:  1,
		byID:    make(map[int64]domain.User),
		byEmail: make(map[string]int64),
	}
}

func (d *Directory) GetByEmail(_ context.Context, email string) (domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id, ok := d.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return d.byID[id], nil
}

func (d *Directory) GetByID(_ context.Context, id int64) (domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (d *Directory) Create(_ context.Context, u domain.User) (domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}

	u.ID = d.nextID
	d.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	d.byID[u.ID] = u
	d.byEmail[u.Email] = u.ID
	return u, nil
}

func (d *Directory) UpdateLastSignedIn(_ context.Context, userID int64, at time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.LastSignedIn = at
	d.byID[userID] = u
	return nil
}

func (d *Directory) UpdatePasswordHash(_ context.Context, userID int64, newHash string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	d.byID[userID] = u
	return nil
}

func (d *Directory) List(_ context.Context) ([]domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users := make([]domain.User, 0, len(d.byID))
	for _, u := range d.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	return users, nil
}
