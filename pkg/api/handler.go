package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cinefleet/fleetcheck/pkg/defaults"
	fcerrors "github.com/cinefleet/fleetcheck/pkg/errors"
	"github.com/cinefleet/fleetcheck/pkg/importer"
	"github.com/cinefleet/fleetcheck/pkg/measurement"
	"github.com/cinefleet/fleetcheck/pkg/ranges"
	"github.com/cinefleet/fleetcheck/pkg/report"
	"github.com/cinefleet/fleetcheck/pkg/serializer"
	"github.com/cinefleet/fleetcheck/pkg/server"
	"github.com/cinefleet/fleetcheck/pkg/validator"
)

// ValidateRequest is the body of POST /v1/validate. Either Field and Value
// or Readings must be set.
type ValidateRequest struct {
	Field    measurement.Field         `json:"field,omitempty"`
	Value    any                       `json:"value,omitempty"`
	Readings map[measurement.Field]any `json:"readings,omitempty"`
}

// ValidateResponse is the response for a single field.
type ValidateResponse struct {
	Field      measurement.Field   `json:"field" yaml:"field"`
	Registered bool                `json:"registered" yaml:"registered"`
	Findings   []validator.Finding `json:"findings" yaml:"findings"`
	Summary    validator.Summary   `json:"summary" yaml:"summary"`
}

// SummaryRequest is the object form of the POST /v1/summary body. A bare
// JSON array of findings is accepted too.
type SummaryRequest struct {
	Findings []validator.Finding `json:"findings"`
}

// Handler serves the validation API.
type Handler struct {
	validator   *validator.Validator
	version     string
	cacheMaxAge int
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithCacheMaxAge sets the Cache-Control max-age for range lookups.
func WithCacheMaxAge(seconds int) HandlerOption {
	return func(h *Handler) {
		h.cacheMaxAge = seconds
	}
}

// WithHandlerVersion sets the version stamped into result documents.
func WithHandlerVersion(v string) HandlerOption {
	return func(h *Handler) {
		h.version = v
	}
}

// NewHandler returns a Handler validating with v.
func NewHandler(v *validator.Validator, opts ...HandlerOption) *Handler {
	h := &Handler{validator: v}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the API routes keyed by pattern.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/validate":        h.HandleValidate,
		"/v1/validate/report": h.HandleValidateReport,
		"/v1/validate/csv":    h.HandleValidateCSV,
		"/v1/summary":         h.HandleSummary,
		"/v1/ranges":          h.HandleRanges,
		"/v1/ranges/{field}":  h.HandleRange,
	}
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	server.WriteError(w, r, http.StatusMethodNotAllowed, fcerrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method": r.Method,
		})
	return false
}

func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			server.WriteError(w, r, http.StatusRequestEntityTooLarge, fcerrors.ErrCodeInvalidRequest,
				"Request body too large", false, map[string]any{"limit": limit})
			return nil, false
		}
		server.WriteError(w, r, http.StatusBadRequest, fcerrors.ErrCodeInvalidRequest,
			"Failed to read request body", false, map[string]any{"error": err.Error()})
		return nil, false
	}
	return body, true
}

func writeContextError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, context.DeadlineExceeded) {
		server.WriteError(w, r, http.StatusGatewayTimeout, fcerrors.ErrCodeTimeout,
			"Request timed out", true, nil)
		return
	}
	server.WriteErrorFromErr(w, r, err, fallback, nil)
}

// HandleValidate validates one field value or a map of readings.
//
// Example:
//
//	POST /v1/validate
//	Body: {"field": "voltagePN", "value": 190}
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ValidateHandlerTimeout)
	defer cancel()

	body, ok := readBody(w, r, defaults.MaxRequestBodyBytes)
	if !ok {
		return
	}

	var req ValidateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, fcerrors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{"error": err.Error()})
		return
	}

	switch {
	case len(req.Readings) > 0:
		rep := report.New()
		rep.Readings = req.Readings
		result, err := h.validator.ValidateReport(ctx, rep)
		if err != nil {
			writeContextError(w, r, err, "Failed to validate readings")
			return
		}
		serializer.Respond(w, r, http.StatusOK, result)

	case req.Field != "":
		value, err := measurement.FromAny(req.Value)
		if err != nil {
			server.WriteError(w, r, http.StatusBadRequest, fcerrors.ErrCodeInvalidRequest,
				"Invalid value", false, map[string]any{"field": req.Field, "error": err.Error()})
			return
		}
		_, registered := h.validator.Registry().Get(req.Field)
		findings := h.validator.Validate(req.Field, value)
		if findings == nil {
			findings = []validator.Finding{}
		}
		serializer.Respond(w, r, http.StatusOK, ValidateResponse{
			Field:      req.Field,
			Registered: registered,
			Findings:   findings,
			Summary:    validator.Summarize(findings),
		})

	default:
		server.WriteError(w, r, http.StatusBadRequest, fcerrors.ErrCodeInvalidRequest,
			"Request must set field and value, or readings", false, nil)
	}
}

// HandleValidateReport validates a ServiceReport document sent as JSON or YAML.
func (h *Handler) HandleValidateReport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ValidateHandlerTimeout)
	defer cancel()

	body, ok := readBody(w, r, defaults.MaxRequestBodyBytes)
	if !ok {
		return
	}

	rep, err := report.Parse(body)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, fcerrors.ErrCodeInvalidRequest,
			"Invalid service report", false, map[string]any{"error": err.Error()})
		return
	}

	slog.Debug("report validation request received",
		"projector", rep.Projector,
		"readings", len(rep.Readings))

	result, err := h.validator.ValidateReport(ctx, rep)
	if err != nil {
		writeContextError(w, r, err, "Failed to validate report")
		return
	}
	serializer.Respond(w, r, http.StatusOK, result)
}

// HandleValidateCSV validates a CSV export. The identity column and worker
// count can be set with the idColumn and workers query parameters.
//
// Example:
//
//	POST /v1/validate/csv?idColumn=serialNumber&workers=4
//	Content-Type: text/csv
func (h *Handler) HandleValidateCSV(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.ImportHandlerTimeout)
	defer cancel()

	opts := []importer.Option{importer.WithVersion(h.version)}
	q := r.URL.Query()
	if q.Has("idColumn") {
		opts = append(opts, importer.WithIDColumn(q.Get("idColumn")))
	}
	if ws := q.Get("workers"); ws != "" {
		n, err := strconv.Atoi(ws)
		if err != nil || n < 1 {
			server.WriteError(w, r, http.StatusBadRequest, fcerrors.ErrCodeInvalidRequest,
				"Invalid workers parameter", false, map[string]any{"workers": ws})
			return
		}
		opts = append(opts, importer.WithWorkers(n))
	}

	body, ok := readBody(w, r, defaults.MaxImportBodyBytes)
	if !ok {
		return
	}

	result, err := importer.New(h.validator, opts...).Import(ctx, strings.NewReader(string(body)))
	if err != nil {
		writeContextError(w, r, err, "Failed to import csv")
		return
	}
	serializer.Respond(w, r, http.StatusOK, result)
}

// HandleSummary aggregates findings supplied by the caller.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	body, ok := readBody(w, r, defaults.MaxRequestBodyBytes)
	if !ok {
		return
	}

	findings, err := decodeFindings(body)
	if err != nil {
		server.WriteError(w, r, http.StatusBadRequest, fcerrors.ErrCodeInvalidRequest,
			"Invalid request body", false, map[string]any{"error": err.Error()})
		return
	}

	serializer.Respond(w, r, http.StatusOK, validator.Summarize(findings))
}

func decodeFindings(body []byte) ([]validator.Finding, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var findings []validator.Finding
		if err := json.Unmarshal(body, &findings); err != nil {
			return nil, err
		}
		return findings, nil
	}

	var req SummaryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return req.Findings, nil
}

// HandleRanges lists the registry. The optional category query parameter
// filters by category.
func (h *Handler) HandleRanges(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	doc := h.validator.Registry().Document()

	if c := r.URL.Query().Get("category"); c != "" {
		category := ranges.Category(strings.ToLower(c))
		if !category.IsValid() {
			server.WriteError(w, r, http.StatusBadRequest, fcerrors.ErrCodeInvalidRequest,
				"Invalid category", false, map[string]any{
					"category": c,
					"valid":    ranges.Categories,
				})
			return
		}
		filtered := doc.Specs[:0]
		for _, s := range doc.Specs {
			if s.Category == category {
				filtered = append(filtered, s)
			}
		}
		doc.Specs = filtered
	}

	h.setCacheHeaders(w)
	serializer.Respond(w, r, http.StatusOK, doc)
}

// HandleRange returns the spec of one field. Unknown fields get a 404 with
// "did you mean" suggestions.
func (h *Handler) HandleRange(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	field := measurement.Field(r.PathValue("field"))
	spec, ok := h.validator.Lookup(field)
	if !ok {
		details := map[string]any{"field": field}
		if s := h.validator.Registry().Suggest(string(field)); len(s) > 0 {
			details["suggestions"] = s
		}
		server.WriteError(w, r, http.StatusNotFound, fcerrors.ErrCodeNotFound,
			fmt.Sprintf("No range registered for field %q", field), false, details)
		return
	}

	h.setCacheHeaders(w)
	serializer.Respond(w, r, http.StatusOK, spec)
}

func (h *Handler) setCacheHeaders(w http.ResponseWriter) {
	if h.cacheMaxAge > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", h.cacheMaxAge))
	}
}
