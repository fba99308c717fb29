package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	fcerrors "github.com/cinefleet/fleetcheck/pkg/errors"
)

type contextKey string

const (
	contextKeyRequestID  contextKey = "requestID"
	contextKeyAPIVersion contextKey = "apiVersion"

	headerRequestID = "X-Request-Id"
)

// RequestID returns the request ID assigned by the middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID).(string)
	return id
}

// APIVersion returns the API version negotiated for the request.
func APIVersion(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyAPIVersion).(string); ok {
		return v
	}
	return DefaultAPIVersion
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withMiddleware wraps handler with request ID, API version negotiation,
// rate limiting, panic recovery, logging and metrics.
func (s *Server) withMiddleware(pattern string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		apiVersion := negotiateAPIVersion(r)

		ctx := context.WithValue(r.Context(), contextKeyRequestID, requestID)
		ctx = context.WithValue(ctx, contextKeyAPIVersion, apiVersion)
		r = r.WithContext(ctx)

		w.Header().Set(headerRequestID, requestID)
		w.Header().Set(headerAPIVersion, apiVersion)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				slog.Error("handler panicked",
					"path", r.URL.Path,
					"request_id", requestID,
					"panic", p)
				WriteError(rec, r, http.StatusInternalServerError, fcerrors.ErrCodeInternal,
					"Internal server error", true, nil)
			}

			duration := time.Since(start)
			httpRequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, pattern).Observe(duration.Seconds())

			slog.Debug("request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"request_id", requestID,
				"duration", duration)
		}()

		if !s.limiter.Allow() {
			rateLimitRejectsTotal.Inc()
			w.Header().Set("Retry-After", "1")
			WriteError(rec, r, http.StatusTooManyRequests, fcerrors.ErrCodeRateLimitExceeded,
				"Rate limit exceeded", true, map[string]any{
					"limit": float64(s.config.RateLimit),
					"burst": s.config.RateLimitBurst,
				})
			return
		}

		handler(rec, r)
	}
}
