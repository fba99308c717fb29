// Package api wires the validation handlers into the HTTP server.
package api

import (
	"context"
	"log/slog"

	"github.com/cinefleet/fleetcheck/pkg/logging"
	"github.com/cinefleet/fleetcheck/pkg/ranges"
	"github.com/cinefleet/fleetcheck/pkg/server"
	"github.com/cinefleet/fleetcheck/pkg/validator"
)

const (
	name           = "fleetcheckd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/cinefleet/fleetcheck/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, loads the range registry (with overrides from
// FLEETCHECK_RANGES when set), sets up routes, and handles graceful shutdown.
func Serve() error {
	return ServeWithConfig(context.Background(), server.DefaultConfig(), version)
}

// ServeWithConfig is Serve with an explicit configuration and version.
func ServeWithConfig(ctx context.Context, cfg *server.Config, ver string) error {
	logging.SetDefaultStructuredLogger(name, ver)
	slog.Info("starting",
		"name", name,
		"version", ver,
		"commit", commit,
		"date", date,
	)

	handler, err := NewHandlerFromConfig(ctx, cfg, ver)
	if err != nil {
		slog.Error("failed to initialize handlers", "error", err)
		return err
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(ver),
		server.WithConfig(cfg),
		server.WithHandler(handler.Routes()),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// NewHandlerFromConfig builds the validator from the configured range
// registry and returns the API handler.
func NewHandlerFromConfig(ctx context.Context, cfg *server.Config, ver string) (*Handler, error) {
	reg, err := ranges.Load(ctx, cfg.RangesURI)
	if err != nil {
		return nil, err
	}
	slog.Info("range registry loaded",
		"fields", reg.Len(),
		"overrides", cfg.RangesURI)

	v, err := validator.New(
		validator.WithRegistry(reg),
		validator.WithVersion(ver),
		validator.WithUnregisteredNotices(true),
	)
	if err != nil {
		return nil, err
	}

	return NewHandler(v,
		WithHandlerVersion(ver),
		WithCacheMaxAge(cfg.CacheMaxAge),
	), nil
}
