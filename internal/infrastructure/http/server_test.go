package http

import (
	"context"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestServer_RunStopsOnCancel(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := NewServer(e, "0", zerolog.Nop())
	srv.shutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestServer_RunReportsListenError(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := NewServer(e, "not-a-port", zerolog.Nop())

	select {
	case err := <-runAsync(srv):
		if err == nil {
			t.Fatal("expected listen error")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return on listen failure")
	}
}

func runAsync(srv *Server) <-chan error {
	ch := make(chan error, 1)
	go func() { ch <- srv.Run(context.Background()) }()
	return ch
}
