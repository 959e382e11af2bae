package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/inkpress/identity-service/internal/application/auth"
	"github.com/inkpress/identity-service/internal/config"
	"github.com/inkpress/identity-service/internal/domain"
	"github.com/inkpress/identity-service/internal/infrastructure/db/postgres"
	"github.com/inkpress/identity-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/inkpress/identity-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/inkpress/identity-service/internal/infrastructure/security"
	"github.com/inkpress/identity-service/internal/logger"
	http_handlers "github.com/inkpress/identity-service/internal/transport/http/handlers"
	"github.com/inkpress/identity-service/internal/transport/http/middleware"
	"github.com/inkpress/identity-service/internal/transport/http/response"
	"github.com/inkpress/identity-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string) (DBCloser, error)

	NewPublisher func(rabbitURL string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type Publisher interface{}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	// 2) directory
	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	directory := postgres.NewDirectory(sqlDB)

	// dev runs without migrations
	if cfg.Env == "dev" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := postgres.EnsureSchema(ctx, sqlDB)
		cancel()
		if err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}

	// 3) publisher. RabbitURL unset means the deployment has no email
	// pipeline; reset requests still succeed, nothing is sent.
	var pub auth.EventPublisher
	if cfg.RabbitURL != "" {
		raw, err := deps.NewPublisher(cfg.RabbitURL)
		if err != nil {
			if cfg.Env == "dev" {
				logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using in-memory publisher")
				pub = memory.NewPublisher()
			} else {
				runCleanup(cleanupFns)
				return nil, nil, err
			}
		} else {
			ep, ok := raw.(auth.EventPublisher)
			if !ok {
				runCleanup(cleanupFns)
				return nil, nil, errors.New("bootstrap: NewPublisher did not return an event publisher")
			}
			pub = ep
			if c, ok := raw.(interface{ Close() error }); ok {
				cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			}
		}
	}

	// 4) security
	hasher := security.NewPBKDF2Hasher()
	signer := security.NewSessionSigner(cfg.SessionSecret, "inkpress-identity")

	// 5) service
	authSvc := auth.NewService(directory, hasher, signer, pub, auth.Config{
		SessionTTL:  cfg.SessionTTL,
		RememberTTL: cfg.RememberTTL,
	})

	// 6) admin bootstrap. Idempotent, runs on every start when configured.
	if cfg.AdminEmail != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		admin, err := authSvc.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
		cancel()
		if err != nil {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
		logger.Logger.Info().
			Int64("user_id", admin.ID).
			Str("email", admin.Email).
			Msg("admin account ensured")
	}

	// 7) handlers + middleware
	authH := http_handlers.NewAuthHandler(authSvc, cfg.SecureCookies)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	sessionMW := middleware.Session(signer)
	userMW := middleware.Require(domain.RoleUser, response.WriteError)
	adminMW := middleware.Require(domain.RoleAdmin, response.WriteError)

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health: healthH,
		Auth:   authH,

		RequestIDMW: middleware.RequestID,
		MetricsMW:   middleware.Metrics,
		SessionMW:   sessionMW,
		UserMW:      userMW,
		AdminMW:     adminMW,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string) (DBCloser, error) {
			return config.NewDB(addr)
		},
		NewPublisher: func(url string) (Publisher, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
