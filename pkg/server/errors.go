package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	fcerrors "github.com/cinefleet/fleetcheck/pkg/errors"
	"github.com/cinefleet/fleetcheck/pkg/serializer"
)

// WriteError writes a structured error response.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code fcerrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr writes err as a structured error response. A
// StructuredError keeps its code, message and context; any other error is
// reported as internal with fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, extraDetails map[string]any) {
	var se *fcerrors.StructuredError
	if errors.As(err, &se) {
		details := mergeDetails(se.Context, extraDetails)
		if se.Cause != nil {
			details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message, retryableFromCode(se.Code), details)
		return
	}

	details := mergeDetails(extraDetails, map[string]any{"error": err.Error()})
	WriteError(w, r, http.StatusInternalServerError, fcerrors.ErrCodeInternal, fallbackMessage,
		retryableFromCode(fcerrors.ErrCodeInternal), details)
}

// HTTPStatusFromCode maps an error code to an HTTP status.
func HTTPStatusFromCode(code fcerrors.ErrorCode) int {
	switch code {
	case fcerrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case fcerrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case fcerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case fcerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case fcerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case fcerrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case fcerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code fcerrors.ErrorCode) bool {
	switch code {
	case fcerrors.ErrCodeTimeout, fcerrors.ErrCodeUnavailable, fcerrors.ErrCodeRateLimitExceeded, fcerrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
