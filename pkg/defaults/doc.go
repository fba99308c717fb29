// Package defaults provides centralized configuration constants for fleetcheck.
//
// This package defines timeout values, limits, and other configuration
// defaults used across the codebase. Centralizing these values ensures consistency
// and makes tuning easier.
//
// # Categories
//
//   - Loader timeouts: For fetching range registries and reports over HTTP or from ConfigMaps
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - Import limits: For CSV bulk validation
//
// # Usage
//
//	import "github.com/cinefleet/fleetcheck/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.LoaderTimeout)
//	defer cancel()
package defaults
