package dto

import (
	"time"

	"github.com/inkpress/identity-service/internal/domain"
)

// UserView is the client-facing projection of a user. It never carries the
// password hash.
type UserView struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	LastSignedIn *time.Time `json:"last_signed_in,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func NewUserView(u domain.User) UserView {
	v := UserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
	if !u.LastSignedIn.IsZero() {
		t := u.LastSignedIn
		v.LastSignedIn = &t
	}
	return v
}

type AuthData struct {
	User UserView `json:"user"`
}

type MeData struct {
	User UserView `json:"user"`
}

type UsersData struct {
	Users []UserView `json:"users"`
}

func NewUsersData(users []domain.User) UsersData {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u))
	}
	return UsersData{Users: views}
}

type ResetRequestedData struct {
	Status string `json:"status"`
}
