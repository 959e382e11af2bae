package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	// Core auth
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	AdminLogin(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)

	// Password reset
	RequestPasswordReset(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)

	// Admin
	AdminListUsers(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler

	RequestIDMW func(http.Handler) http.Handler
	MetricsMW   func(http.Handler) http.Handler
	SessionMW   func(http.Handler) http.Handler
	UserMW      func(http.Handler) http.Handler
	AdminMW     func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.SessionMW == nil {
		return nil, fmt.Errorf("nil Session middleware")
	}
	if deps.UserMW == nil {
		return nil, fmt.Errorf("nil User middleware")
	}
	if deps.AdminMW == nil {
		return nil, fmt.Errorf("nil Admin middleware")
	}

	r := chi.NewRouter()
	if deps.RequestIDMW != nil {
		r.Use(deps.RequestIDMW)
	}
	if deps.MetricsMW != nil {
		r.Use(deps.MetricsMW)
	}

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/identity/v1", func(r chi.Router) {
		// Session resolution runs on every identity route; it never rejects.
		r.Use(deps.SessionMW)

		// --- Core auth ---
		r.Post("/register", deps.Auth.Register)
		r.Post("/login", deps.Auth.Login)
		r.With(deps.UserMW).Post("/logout", deps.Auth.Logout)
		r.With(deps.UserMW).Get("/me", deps.Auth.Me)

		// --- Password reset ---
		r.Post("/password/reset/request", deps.Auth.RequestPasswordReset)
		r.Post("/password/reset", deps.Auth.ResetPassword)

		// --- Admin ---
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", deps.Auth.AdminLogin)
			r.With(deps.AdminMW).Get("/users", deps.Auth.AdminListUsers)
		})
	})

	return r, nil
}
