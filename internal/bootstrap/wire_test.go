package bootstrap

import (
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/inkpress/identity-service/internal/application/auth"
	"github.com/inkpress/identity-service/internal/config"
	"github.com/inkpress/identity-service/internal/infrastructure/memory"
	"github.com/inkpress/identity-service/internal/transport/http/router"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:              "dev",
		HTTPAddr:         ":0",
		HTTPReadTimeout:  5 * time.Second,
		HTTPWriteTimeout: 10 * time.Second,
		HTTPIdleTimeout:  60 * time.Second,
		SessionSecret:    "wire-test-secret",
		SessionTTL:       time.Hour,
		RememberTTL:      24 * time.Hour,
		DBAddr:           "postgres://ignored",
	}
}

func testDeps(t *testing.T, cfg *config.Config) Deps {
	t.Helper()

	return Deps{
		LoadConfig: func() (*config.Config, error) { return cfg, nil },
		NewDB: func(string) (DBCloser, error) {
			db, mock, err := sqlmock.New()
			if err != nil {
				return nil, err
			}
			// dev bootstrap creates the schema
			mock.MatchExpectationsInOrder(false)
			mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).
				WillReturnResult(sqlmock.NewResult(0, 0))
			return db, nil
		},
		NewPublisher: func(string) (Publisher, error) {
			return memory.NewPublisher(), nil
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

func TestNewServerWithDeps(t *testing.T) {
	t.Parallel()

	srv, cleanup, err := NewServerWithDeps(testDeps(t, testConfig()))
	if err != nil {
		t.Fatalf("NewServerWithDeps: %v", err)
	}
	defer cleanup()

	if srv.Handler == nil {
		t.Fatalf("expected wired handler")
	}
	if srv.ReadTimeout != 5*time.Second {
		t.Fatalf("read timeout not applied: %v", srv.ReadTimeout)
	}
}

func TestNewServerConfigFailure(t *testing.T) {
	t.Parallel()

	deps := testDeps(t, nil)
	deps.LoadConfig = func() (*config.Config, error) {
		return nil, errors.New("missing required env var")
	}

	if _, _, err := NewServerWithDeps(deps); err == nil {
		t.Fatalf("expected config error to propagate")
	}
}

func TestNewServerDBFailureReturnsError(t *testing.T) {
	t.Parallel()

	deps := testDeps(t, testConfig())
	deps.NewDB = func(string) (DBCloser, error) {
		return nil, errors.New("connection refused")
	}

	if _, _, err := NewServerWithDeps(deps); err == nil {
		t.Fatalf("expected db error to propagate")
	}
}

func TestNewServerRejectsNonSQLDB(t *testing.T) {
	t.Parallel()

	deps := testDeps(t, testConfig())
	deps.NewDB = func(string) (DBCloser, error) {
		return fakeCloser{}, nil
	}

	if _, _, err := NewServerWithDeps(deps); err == nil {
		t.Fatalf("expected error for non *sql.DB database")
	}
}

type fakeCloser struct{}

func (fakeCloser) Close() error { return nil }

func TestNewServerPublisherFailureInDevFallsBack(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RabbitURL = "amqp://down"
	deps := testDeps(t, cfg)
	deps.NewPublisher = func(string) (Publisher, error) {
		return nil, errors.New("broker down")
	}

	srv, cleanup, err := NewServerWithDeps(deps)
	if err != nil {
		t.Fatalf("dev must fall back to in-memory publisher: %v", err)
	}
	defer cleanup()
	if srv == nil {
		t.Fatalf("expected server")
	}
}

func TestNewServerPublisherFailureInProdIsFatal(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Env = "prod"
	cfg.RabbitURL = "amqp://down"
	deps := testDeps(t, cfg)
	deps.NewPublisher = func(string) (Publisher, error) {
		return nil, errors.New("broker down")
	}

	if _, _, err := NewServerWithDeps(deps); err == nil {
		t.Fatalf("prod must fail when the broker is unavailable")
	}
}

func TestNewServerRunsAdminBootstrap(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.AdminEmail = "root@example.com"
	cfg.AdminPassword = "hunter22"

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS users`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// EnsureAdmin: lookup misses, create succeeds.
	mock.ExpectQuery(`SELECT id, email, name, password_hash`).
		WithArgs(cfg.AdminEmail).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "email", "name", "password_hash", "role", "last_signed_in", "created_at"},
		).AddRow(int64(1), cfg.AdminEmail, "root", "aabb:ccdd", "admin", time.Now(), time.Now()))

	deps := testDeps(t, cfg)
	deps.NewDB = func(string) (DBCloser, error) { return db, nil }

	_, cleanup, err := NewServerWithDeps(deps)
	if err != nil {
		t.Fatalf("NewServerWithDeps: %v", err)
	}
	defer cleanup()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("admin bootstrap queries not issued: %v", err)
	}
}

// compile-time check: the memory publisher satisfies the service port used by
// the dev fallback.
var _ auth.EventPublisher = (*memory.Publisher)(nil)
