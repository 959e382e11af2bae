package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/inkpress/identity-service/internal/logger"
)

type stubServer struct {
	listenErr   error
	shutdownErr error

	shutdownCalled bool
	closeCalled    bool
	release        chan struct{}
}

func (s *stubServer) ListenAndServe() error {
	if s.release != nil {
		<-s.release
	}
	return s.listenErr
}

func (s *stubServer) Shutdown(ctx context.Context) error {
	s.shutdownCalled = true
	return s.shutdownErr
}

func (s *stubServer) Close() error {
	s.closeCalled = true
	return nil
}

func TestServeSignalDrainsGracefully(t *testing.T) {
	logger.InitWithWriter(io.Discard)

	sigCh := make(chan os.Signal, 1)
	sigCh <- os.Interrupt

	srv := &stubServer{listenErr: http.ErrServerClosed}
	if err := serve(srv, ":0", sigCh, &logger.Logger); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if !srv.shutdownCalled {
		t.Fatalf("expected Shutdown on signal")
	}
	if srv.closeCalled {
		t.Fatalf("Close must not run after a clean drain")
	}
}

func TestServeListenerFailureSurfaces(t *testing.T) {
	logger.InitWithWriter(io.Discard)

	boom := errors.New("listen tcp :80: bind: permission denied")
	srv := &stubServer{listenErr: boom}

	err := serve(srv, ":80", make(chan os.Signal, 1), &logger.Logger)
	if !errors.Is(err, boom) {
		t.Fatalf("expected listener error, got %v", err)
	}
	if srv.shutdownCalled {
		t.Fatalf("Shutdown must not run when the listener never came up")
	}
}

func TestServeFailedDrainFallsBackToClose(t *testing.T) {
	logger.InitWithWriter(io.Discard)

	sigCh := make(chan os.Signal, 1)
	sigCh <- os.Interrupt

	srv := &stubServer{
		listenErr:   http.ErrServerClosed,
		shutdownErr: errors.New("connections still active"),
	}
	if err := serve(srv, ":0", sigCh, &logger.Logger); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if !srv.closeCalled {
		t.Fatalf("expected Close when the drain fails")
	}
}

func TestServeBlocksUntilSignal(t *testing.T) {
	logger.InitWithWriter(io.Discard)

	sigCh := make(chan os.Signal, 1)
	srv := &stubServer{listenErr: http.ErrServerClosed, release: make(chan struct{})}

	done := make(chan error, 1)
	go func() {
		done <- serve(srv, ":0", sigCh, &logger.Logger)
	}()

	select {
	case err := <-done:
		t.Fatalf("serve returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	sigCh <- os.Interrupt
	close(srv.release)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("serve did not stop after the signal")
	}
}
