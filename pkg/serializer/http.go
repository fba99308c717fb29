package serializer

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the JSON encoding before writing headers to prevent partial responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Serialize first to detect errors before writing headers
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}

// Respond writes data in the format requested by the Accept header of r
// (YAML or table when asked for, JSON otherwise).
func Respond(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	format := NegotiateFormat(r)
	if format == FormatJSON {
		RespondJSON(w, statusCode, data)
		return
	}

	b, err := Marshal(format, data)
	if err != nil {
		slog.Error("response encoding failed", "format", format, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(statusCode)
	if _, err := w.Write(b); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

// NegotiateFormat picks a response format from the Accept header.
func NegotiateFormat(r *http.Request) Format {
	accept := strings.ToLower(r.Header.Get("Accept"))
	switch {
	case strings.Contains(accept, "yaml"):
		return FormatYAML
	case strings.Contains(accept, "text/plain"):
		return FormatTable
	default:
		return FormatJSON
	}
}
