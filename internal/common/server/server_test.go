package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/techchallenge/vehicle-api/internal/common/logger"
)

func TestServe_GracefulShutdownRunsHooks(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	srv := NewServer(DefaultServerConfig("0"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	log := logger.NewWithWriter(io.Discard, "test", "error")

	ctx, cancel := context.WithCancel(context.Background())
	hookCalled := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, srv, listener, log, "test", []ShutdownHook{
			func(context.Context) error {
				hookCalled <- struct{}{}
				return nil
			},
		})
	}()

	resp, err := http.Get("http://" + listener.Addr().String())
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	select {
	case <-hookCalled:
	default:
		t.Error("expected shutdown hook to run")
	}
}

func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig("8000")
	if cfg.Addr != ":8000" {
		t.Errorf("expected :8000, got %s", cfg.Addr)
	}
	if cfg.ReadHeaderTimeout == 0 || cfg.WriteTimeout == 0 {
		t.Error("expected non-zero timeouts")
	}
}
