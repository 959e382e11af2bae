package domain

type Role string

const (
	// RoleUser can manage its own account and read public content.
	RoleUser Role = "user"
	// RoleAdmin additionally owns every mutating back-office operation
	// (posts, categories, comments, settings, user listing).
	RoleAdmin Role = "admin"

	// RoleNone marks an operation as public. Never stored on a User.
	RoleNone Role = ""
)

func IsValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}
