package validator

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/cinefleet/fleetcheck/pkg/measurement"
	"github.com/cinefleet/fleetcheck/pkg/ranges"
)

// Validator classifies field values against a range registry.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string

	registry *ranges.Registry
	notices  bool
	excludes []string
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithRegistry returns an Option that replaces the embedded default registry.
func WithRegistry(r *ranges.Registry) Option {
	return func(v *Validator) {
		v.registry = r
	}
}

// WithUnregisteredNotices makes ValidateReport emit an info finding for each
// reading that has no registered spec.
func WithUnregisteredNotices(enabled bool) Option {
	return func(v *Validator) {
		v.notices = enabled
	}
}

// WithExcludes returns an Option that skips report fields matching any of
// the wildcard patterns (prefix*, *suffix, *contains* or exact).
func WithExcludes(patterns ...string) Option {
	return func(v *Validator) {
		v.excludes = append(v.excludes, patterns...)
	}
}

// New creates a new Validator with the provided options. Without
// WithRegistry the embedded default registry is used.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	if v.registry == nil {
		reg, err := ranges.Default()
		if err != nil {
			return nil, err
		}
		v.registry = reg
	}
	return v, nil
}

// Registry returns the registry the validator checks against.
func (v *Validator) Registry() *ranges.Registry {
	return v.registry
}

// Lookup returns the spec registered for field, for rendering hints such as
// min, max and unit next to an input.
func (v *Validator) Lookup(field measurement.Field) (*ranges.RangeSpec, bool) {
	return v.registry.Lookup(field)
}

// Excludes reports whether field matches one of the exclude patterns.
func (v *Validator) Excludes(field measurement.Field) bool {
	return len(measurement.FilterOut([]measurement.Field{field}, v.excludes)) == 0
}

// Validate classifies value for field. It returns nil when the value is
// healthy or the field has no registered spec. It never fails: malformed
// input is reported as a finding.
func (v *Validator) Validate(field measurement.Field, value measurement.Value) []Finding {
	spec, ok := v.registry.Get(field)
	if !ok {
		return nil
	}
	if value == nil {
		value = measurement.Unparsed("")
	}

	var findings []Finding
	if spec.Kind() == ranges.KindEnumerated {
		findings = validateEnumerated(spec, value)
	} else {
		findings = validateNumeric(spec, value)
	}

	for _, f := range findings {
		findingsTotal.WithLabelValues(string(f.Severity), string(f.Category)).Inc()
	}
	if len(findings) > 0 {
		slog.Debug("field validation produced findings",
			"field", field,
			"value", value.String(),
			"findings", len(findings))
	}
	return findings
}

// ValidateRaw parses raw text and validates it.
func (v *Validator) ValidateRaw(field measurement.Field, raw string) []Finding {
	return v.Validate(field, measurement.Parse(raw))
}

func validateNumeric(spec *ranges.RangeSpec, value measurement.Value) []Finding {
	n, ok := measurement.AsNumber(value)
	if !ok {
		return unparsable(spec, value, "is not a numeric value")
	}

	unit := withUnit(spec.Unit)
	shown := measurement.Numeric(n).String()

	if !spec.Absolute.Contains(n) {
		return []Finding{{
			Field:          spec.Field,
			Message:        fmt.Sprintf("%s%s is outside the valid range %s%s", shown, unit, spec.Absolute, unit),
			Severity:       ranges.SeverityError,
			Category:       spec.Category,
			SuggestedValue: spec.Normal.Nearest(n),
		}}
	}

	if spec.Normal.Contains(n) {
		return nil
	}

	if side, critical := criticalSide(spec, n); critical {
		return []Finding{{
			Field:          spec.Field,
			Message:        fmt.Sprintf("%s%s is critically %s (critical range %s%s)", shown, unit, side, spec.Critical, unit),
			Severity:       spec.CriticalSeverity,
			Category:       spec.Category,
			SuggestedValue: spec.Normal.Nearest(n),
		}}
	}

	return []Finding{{
		Field:          spec.Field,
		Message:        fmt.Sprintf("%s%s is outside the normal range %s%s but not critical", shown, unit, spec.Normal, unit),
		Severity:       ranges.SeverityWarning,
		Category:       spec.Category,
		SuggestedValue: spec.Normal.Nearest(n),
	}}
}

// criticalSide reports whether n, already known to be outside the normal
// range, lies in the critical range on a side the spec declares dangerous.
func criticalSide(spec *ranges.RangeSpec, n float64) (string, bool) {
	if spec.Critical == nil || !spec.Critical.Contains(n) {
		return "", false
	}

	low := n < spec.Normal.Min
	switch spec.CriticalDirection {
	case ranges.DirectionLow:
		return "low", low
	case ranges.DirectionHigh:
		return "high", !low
	case ranges.DirectionBoth:
		if low {
			return "low", true
		}
		return "high", true
	default:
		return "", false
	}
}

func validateEnumerated(spec *ranges.RangeSpec, value measurement.Value) []Finding {
	token, ok := measurement.AsToken(value)
	if !ok {
		return unparsable(spec, value, "is not a recognized value")
	}

	finding := func(severity ranges.Severity, msg string) []Finding {
		f := Finding{
			Field:    spec.Field,
			Message:  msg,
			Severity: severity,
			Category: spec.Category,
		}
		if s, ok := ranges.Closest(token, spec.NormalValues); ok {
			f.SuggestedValue = s
		}
		return []Finding{f}
	}

	switch {
	case !slices.Contains(spec.ValidValues, token):
		return finding(ranges.SeverityError,
			fmt.Sprintf("%q is not a recognized value (valid: %s)", token, strings.Join(spec.ValidValues, ", ")))
	case slices.Contains(spec.NormalValues, token):
		return nil
	case slices.Contains(spec.CriticalValues, token):
		return finding(spec.CriticalSeverity,
			fmt.Sprintf("%q is a critical value (expected one of %s)", token, strings.Join(spec.NormalValues, ", ")))
	default:
		return finding(ranges.SeverityWarning,
			fmt.Sprintf("%q is valid but outside the normal values %s", token, strings.Join(spec.NormalValues, ", ")))
	}
}

// unparsable handles values that cannot be coerced to the spec's shape.
// Blank input is only an error for required fields.
func unparsable(spec *ranges.RangeSpec, value measurement.Value, reason string) []Finding {
	if measurement.IsBlank(value) {
		if !spec.Required {
			return nil
		}
		return []Finding{{
			Field:    spec.Field,
			Message:  "value is required",
			Severity: ranges.SeverityError,
			Category: ranges.CategoryTechnical,
		}}
	}
	return []Finding{{
		Field:    spec.Field,
		Message:  fmt.Sprintf("%q %s", value.String(), reason),
		Severity: ranges.SeverityError,
		Category: ranges.CategoryTechnical,
	}}
}

func withUnit(unit string) string {
	if unit == "" {
		return ""
	}
	return " " + unit
}
