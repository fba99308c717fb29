// Package server provides the HTTP runtime shared by fleetcheck services:
// routing, rate limiting, request IDs, structured error responses, health
// and readiness probes, Prometheus metrics and graceful shutdown.
//
// Services register their handlers by route pattern:
//
//	s := server.New(
//	    server.WithName("fleetcheckd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/validate": h.HandleValidate,
//	    }),
//	)
//	err := s.Run(ctx)
//
// Registered handlers run behind the middleware chain. /health, /ready and
// /metrics do not.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/time/rate"
)

const (
	name           = "fleetcheck-server"
	versionDefault = "dev"
)

// Server is the HTTP server.
type Server struct {
	name     string
	version  string
	config   *Config
	handlers map[string]http.HandlerFunc
	limiter  *rate.Limiter

	mu    sync.RWMutex
	ready bool
}

// Option is a functional option for configuring Server instances.
type Option func(*Server)

// WithName sets the service name reported on the default route.
func WithName(n string) Option {
	return func(s *Server) {
		s.name = n
	}
}

// WithVersion sets the service version reported on the default route.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg *Config) Option {
	return func(s *Server) {
		s.config = cfg
	}
}

// WithHandler registers handlers by route pattern.
func WithHandler(handlers map[string]http.HandlerFunc) Option {
	return func(s *Server) {
		for pattern, h := range handlers {
			s.handlers[pattern] = h
		}
	}
}

// New creates a server. Call Run to start it.
func New(opts ...Option) *Server {
	s := &Server{
		name:     name,
		version:  versionDefault,
		handlers: make(map[string]http.HandlerFunc),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	s.limiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)
	return s
}

// Config returns the server configuration.
func (s *Server) Config() *Config {
	return s.config
}

// Ready reports whether the server is accepting traffic.
func (s *Server) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Server) setReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Handler returns the fully routed handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// Run listens on the configured address and serves until ctx is cancelled
// or the process receives SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.setupRoutes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening",
			"name", s.name,
			"address", ln.Addr().String(),
			"rate_limit", float64(s.config.RateLimit),
			"rate_burst", s.config.RateLimitBurst)
		errCh <- srv.Serve(ln)
	}()

	s.setReady(true)

	select {
	case err := <-errCh:
		s.setReady(false)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.setReady(false)
	slog.Info("shutting down server", "timeout", s.config.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
