package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr         string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration // plain login
	RememberTTL   time.Duration // login with rememberMe
	SecureCookies bool

	// Infrastructure
	DBAddr    string
	RabbitURL string // optional; empty disables the reset-email pipeline

	// Admin bootstrap; both empty means no bootstrap at startup.
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment. A .env file, if present, is
// merged in first so local development does not need exported variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional
		log.Println("no .env file found, using system environment")
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// Required values. Fail fast: the service cannot issue or read sessions
	// without a signing secret, nor serve anything without its directory.
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("missing required env var: SESSION_SECRET")
	}

	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	// Optional with defaults.
	ttl, err := getDuration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = ttl

	rtl, err := getDuration("REMEMBER_ME_TTL", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.RememberTTL = rtl

	cfg.SecureCookies = cfg.Env == "prod" || os.Getenv("COOKIE_SECURE") == "true"

	cfg.RabbitURL = os.Getenv("RABBIT_URL")

	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}
