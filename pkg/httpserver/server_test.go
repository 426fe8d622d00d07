package httpserver_test

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/routekit/pkg/httpserver"
)

func freeAddr(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "unable to get free port")
	addr := l.Addr().String()
	require.NoError(t, l.Close(), "close listener")
	return addr
}

func waitListening(t *testing.T, addr string) {
	t.Helper()
	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", addr, 50*time.Millisecond)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 3*time.Second, 20*time.Millisecond, "server never started listening")
}

func TestRunAndShutdown(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithShutdownTimeout(time.Second),
	)
	assert.Equal(t, httpserver.StateIdle, srv.State())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
	}()

	waitListening(t, addr)
	assert.Equal(t, httpserver.StateServing, srv.State())

	resp, err := http.Get("http://" + addr)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err, "run")
	case <-time.After(3 * time.Second):
		require.Fail(t, "run did not finish")
	}
	assert.Equal(t, httpserver.StateStopped, srv.State())
}

func TestManualShutdown(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithShutdownTimeout(time.Second),
	)

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(context.Background(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	}()
	waitListening(t, addr)

	require.NoError(t, srv.Shutdown(context.Background()))
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		require.Fail(t, "run did not finish after shutdown")
	}
	assert.Equal(t, httpserver.StateStopped, srv.State())

	// Repeated shutdown is a no-op.
	require.NoError(t, srv.Shutdown(context.Background()))
}

// TestShutdownHookOrdering proves the pre-stop hook fires while in-flight
// requests are still draining, and the stop hook only after the drain.
func TestShutdownHookOrdering(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(step string) {
		mu.Lock()
		order = append(order, step)
		mu.Unlock()
	}
	steps := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), order...)
	}

	release := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithShutdownTimeout(2*time.Second),
		httpserver.WithPreStopHook(func(_ *slog.Logger) {
			record("prestop")
			close(release)
		}),
		httpserver.WithStopHook(func(_ *slog.Logger) {
			record("stop")
		}),
	)

	runDone := make(chan error, 1)
	go func() {
		runDone <- srv.Run(context.Background(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			record("request-start")
			<-release
			record("request-done")
			w.WriteHeader(http.StatusOK)
		}))
	}()
	waitListening(t, addr)

	reqDone := make(chan error, 1)
	go func() {
		resp, err := http.Get("http://" + addr)
		if err == nil {
			resp.Body.Close()
		}
		reqDone <- err
	}()

	require.Eventually(t, func() bool {
		for _, s := range steps() {
			if s == "request-start" {
				return true
			}
		}
		return false
	}, 3*time.Second, 10*time.Millisecond, "request never reached the handler")

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, <-reqDone, "in-flight request should complete during drain")

	select {
	case err := <-runDone:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		require.Fail(t, "run did not finish")
	}

	assert.Equal(t, []string{"request-start", "prestop", "request-done", "stop"}, steps())
}

func TestBindFailure(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	srv := httpserver.New(httpserver.WithAddr(l.Addr().String()))
	err = srv.Run(context.Background(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, httpserver.ErrStart), "bind failure must be wrapped in ErrStart")
	assert.Equal(t, httpserver.StateStopped, srv.State())
}

func TestConfigOptions(t *testing.T) {
	t.Parallel()

	cfg := httpserver.Config{
		Addr:            "127.0.0.1:18080",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     15 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
	assert.Len(t, cfg.Options(), 5)

	assert.Empty(t, httpserver.Config{}.Options())

	srv := httpserver.NewFromConfig(cfg)
	assert.Equal(t, httpserver.StateIdle, srv.State())
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", httpserver.StateIdle.String())
	assert.Equal(t, "serving", httpserver.StateServing.String())
	assert.Equal(t, "shutting_down", httpserver.StateShuttingDown.String())
	assert.Equal(t, "stopped", httpserver.StateStopped.String())
}
