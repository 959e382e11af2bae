package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkpress/identity-service/internal/bootstrap"
	"github.com/inkpress/identity-service/internal/logger"
)

const shutdownGrace = 15 * time.Second

// server is the lifecycle surface serve needs; *http.Server satisfies it.
type server interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
}

// serve runs srv until a shutdown signal arrives or the listener fails, then
// drains in-flight requests within the grace window. A failed drain falls
// back to Close.
func serve(srv server, addr string, sigCh <-chan os.Signal, lg *zerolog.Logger) error {
	failed := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", addr).Msg("identity service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case sig := <-sigCh:
		lg.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-failed:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Error().Err(err).Msg("drain failed, closing")
		return srv.Close()
	}
	return nil
}

func run() int {
	lg := &logger.Logger

	srv, cleanup, err := bootstrap.NewServer()
	if err != nil {
		lg.Error().Err(err).Msg("bootstrap failed")
		return 1
	}
	defer cleanup()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if err := serve(srv, srv.Addr, sigCh, lg); err != nil {
		lg.Error().Err(err).Msg("server failed")
		return 1
	}
	lg.Info().Msg("shutdown complete")
	return 0
}

func main() {
	logger.Init()
	os.Exit(run())
}
