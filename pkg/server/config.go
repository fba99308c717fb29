package server

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/cinefleet/fleetcheck/pkg/defaults"
	"github.com/cinefleet/fleetcheck/pkg/logging"
)

// Environment variables read by DefaultConfig.
const (
	EnvPort           = "PORT"
	EnvRateLimit      = "RATE_LIMIT"
	EnvRateLimitBurst = "RATE_LIMIT_BURST"
	EnvRanges         = "FLEETCHECK_RANGES"
)

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{
		Address:         "",
		Port:            8080,
		RateLimit:       100, // 100 req/s
		RateLimitBurst:  200, // burst of 200
		CacheMaxAge:     300, // 5 minutes
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
		LogLevel:        slog.LevelInfo.String(),
	}

	// Override with environment variables if set
	if portStr := os.Getenv(EnvPort); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}

	if limitStr := os.Getenv(EnvRateLimit); limitStr != "" {
		if limit, err := strconv.ParseFloat(limitStr, 64); err == nil && limit > 0 {
			cfg.RateLimit = rate.Limit(limit)
		}
	}

	if burstStr := os.Getenv(EnvRateLimitBurst); burstStr != "" {
		if burst, err := strconv.Atoi(burstStr); err == nil && burst > 0 {
			cfg.RateLimitBurst = burst
		}
	}

	if logLevelStr := os.Getenv(logging.EnvLogLevel); logLevelStr != "" {
		cfg.LogLevel = logLevelStr
	}

	cfg.RangesURI = os.Getenv(EnvRanges)

	return cfg
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}
