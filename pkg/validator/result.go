package validator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cinefleet/fleetcheck/pkg/header"
	"github.com/cinefleet/fleetcheck/pkg/measurement"
	"github.com/cinefleet/fleetcheck/pkg/ranges"
	"github.com/cinefleet/fleetcheck/pkg/report"
)

// Kind is the kind for validation results.
const Kind = "ValidationResult"

// FieldResult holds the findings for one reading.
type FieldResult struct {
	Field    measurement.Field `json:"field" yaml:"field"`
	Value    string            `json:"value" yaml:"value"`
	Findings []Finding         `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// ValidationResult is the outcome of validating a service report.
type ValidationResult struct {
	header.Header `json:",inline" yaml:",inline"`

	Projector string `json:"projector,omitempty" yaml:"projector,omitempty"`
	Site      string `json:"site,omitempty" yaml:"site,omitempty"`

	// Results lists every validated reading in field order.
	Results []FieldResult `json:"results" yaml:"results"`

	// Unvalidated lists readings with no registered spec. The validator has
	// no opinion on them; callers decide whether that is acceptable.
	Unvalidated []measurement.Field `json:"unvalidated,omitempty" yaml:"unvalidated,omitempty"`

	// Excluded lists readings skipped by exclude patterns.
	Excluded []measurement.Field `json:"excluded,omitempty" yaml:"excluded,omitempty"`

	Summary  Summary       `json:"summary" yaml:"summary"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Findings returns all findings of the result in field order.
func (r *ValidationResult) Findings() []Finding {
	var out []Finding
	for _, fr := range r.Results {
		out = append(out, fr.Findings...)
	}
	return out
}

// Table implements serializer.Tabler.
func (r *ValidationResult) Table() ([]string, [][]string) {
	headers := []string{"FIELD", "VALUE", "SEVERITY", "CATEGORY", "MESSAGE", "SUGGESTED"}

	var rows [][]string
	for _, fr := range r.Results {
		if len(fr.Findings) == 0 {
			rows = append(rows, []string{string(fr.Field), fr.Value, "ok", "", "", ""})
			continue
		}
		for _, f := range fr.Findings {
			rows = append(rows, []string{
				string(fr.Field), fr.Value, string(f.Severity), string(f.Category), f.Message, suggestion(f.SuggestedValue),
			})
		}
	}

	rows = append(rows, []string{
		"SUMMARY", "",
		fmt.Sprintf("errors=%d warnings=%d suggestions=%d", r.Summary.Errors, r.Summary.Warnings, r.Summary.Suggestions),
		"", fmt.Sprintf("valid=%t", r.Summary.IsValid), "",
	})
	return headers, rows
}

func suggestion(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return measurement.Numeric(t).String()
	default:
		return fmt.Sprint(t)
	}
}

// ValidateReport validates every reading of a service report.
// Context cancellation is checked between readings.
func (v *Validator) ValidateReport(ctx context.Context, rep *report.Report) (*ValidationResult, error) {
	start := time.Now()

	if rep == nil {
		return nil, fmt.Errorf("report cannot be nil")
	}

	result := &ValidationResult{
		Projector: rep.Projector,
		Site:      rep.Site,
		Results:   []FieldResult{},
	}
	result.Init(Kind, header.DefaultAPIVersion(Kind), v.Version)
	if rep.Projector != "" {
		result.Metadata["projector"] = rep.Projector
	}

	fields := rep.Fields()
	kept := measurement.FilterOut(fields, v.excludes)
	if len(kept) != len(fields) {
		result.Excluded = excluded(fields, kept)
	}

	var all []Finding
	for _, field := range kept {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if _, ok := v.registry.Get(field); !ok {
			result.Unvalidated = append(result.Unvalidated, field)
			unregisteredTotal.Inc()
			if v.notices {
				notice := v.unregisteredNotice(field)
				result.Results = append(result.Results, FieldResult{
					Field:    field,
					Value:    fmt.Sprint(rep.Readings[field]),
					Findings: []Finding{notice},
				})
				all = append(all, notice)
			}
			continue
		}

		fr := FieldResult{Field: field}
		value, err := rep.Value(field)
		if err != nil {
			fr.Value = fmt.Sprint(rep.Readings[field])
			fr.Findings = []Finding{{
				Field:    field,
				Message:  err.Error(),
				Severity: ranges.SeverityError,
				Category: ranges.CategoryTechnical,
			}}
		} else {
			fr.Value = value.String()
			fr.Findings = v.Validate(field, value)
		}

		result.Results = append(result.Results, fr)
		all = append(all, fr.Findings...)
	}

	result.Summary = Summarize(all)
	result.Duration = time.Since(start)
	reportDuration.Observe(result.Duration.Seconds())

	slog.Debug("report validation completed",
		"projector", rep.Projector,
		"fields", len(result.Results),
		"unvalidated", len(result.Unvalidated),
		"errors", result.Summary.Errors,
		"warnings", result.Summary.Warnings,
		"valid", result.Summary.IsValid,
		"duration", result.Duration)

	return result, nil
}

func (v *Validator) unregisteredNotice(field measurement.Field) Finding {
	f := Finding{
		Field:    field,
		Message:  fmt.Sprintf("field %q has no registered range and was not validated", field),
		Severity: ranges.SeverityInfo,
		Category: ranges.CategoryOperational,
	}

	if suggestions := v.registry.Suggest(string(field)); len(suggestions) > 0 {
		names := make([]string, 0, len(suggestions))
		for _, s := range suggestions {
			names = append(names, string(s))
		}
		f.Message = fmt.Sprintf("%s; did you mean %s?", f.Message, strings.Join(names, " or "))
		f.SuggestedValue = names[0]
	}
	return f
}

func excluded(all, kept []measurement.Field) []measurement.Field {
	keep := make(map[measurement.Field]bool, len(kept))
	for _, f := range kept {
		keep[f] = true
	}
	var out []measurement.Field
	for _, f := range all {
		if !keep[f] {
			out = append(out, f)
		}
	}
	return out
}
