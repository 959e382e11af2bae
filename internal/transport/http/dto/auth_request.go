package dto

// -------- Core auth --------

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"omitempty,max=100"`
}

func (r *RegisterRequest) Validate() error { return validateRequest(r) }

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

func (r *LoginRequest) Validate() error { return validateRequest(r) }

// AdminLoginRequest has no remember option: elevated sessions always use the
// short TTL.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *AdminLoginRequest) Validate() error { return validateRequest(r) }

// -------- Password reset --------

// Step A: request reset. The server always answers 202 to avoid enumeration.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *PasswordResetRequest) Validate() error { return validateRequest(r) }

// Step B: apply the new password.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"omitempty"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

func (r *ResetPasswordRequest) Validate() error { return validateRequest(r) }
