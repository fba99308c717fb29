// Package form tracks the validation state of one open service report form.
//
// A Form keeps the latest findings per field and recomputes the summary from
// them on demand. Findings for a field are only visible after the field has
// been touched, so a blank form does not open covered in errors. The summary
// always covers every field, touched or not.
package form

import (
	"slices"
	"sync"

	"github.com/cinefleet/fleetcheck/pkg/measurement"
	"github.com/cinefleet/fleetcheck/pkg/report"
	"github.com/cinefleet/fleetcheck/pkg/validator"
)

// Form is safe for concurrent use.
type Form struct {
	validator *validator.Validator

	mu       sync.RWMutex
	values   map[measurement.Field]measurement.Value
	findings map[measurement.Field][]validator.Finding
	touched  map[measurement.Field]bool
}

// New returns an empty form validated by v.
func New(v *validator.Validator) *Form {
	return &Form{
		validator: v,
		values:    make(map[measurement.Field]measurement.Value),
		findings:  make(map[measurement.Field][]validator.Finding),
		touched:   make(map[measurement.Field]bool),
	}
}

// Set records value for field, replaces the field's findings and returns them.
func (f *Form) Set(field measurement.Field, value measurement.Value) []validator.Finding {
	findings := f.validator.Validate(field, value)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[field] = value
	if len(findings) == 0 {
		delete(f.findings, field)
	} else {
		f.findings[field] = findings
	}
	return slices.Clone(findings)
}

// SetRaw parses raw and records it for field.
func (f *Form) SetRaw(field measurement.Field, raw string) []validator.Finding {
	return f.Set(field, measurement.Parse(raw))
}

// Load validates every reading of rep. Readings that cannot be converted are
// recorded as blank.
func (f *Form) Load(rep *report.Report) {
	for _, field := range rep.Fields() {
		value, err := rep.Value(field)
		if err != nil {
			value = measurement.Unparsed("")
		}
		f.Set(field, value)
	}
}

// Clear forgets the value, findings and touch state of field.
func (f *Form) Clear(field measurement.Field) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.values, field)
	delete(f.findings, field)
	delete(f.touched, field)
}

// Touch marks field as focused at least once.
func (f *Form) Touch(field measurement.Field) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[field] = true
}

// Touched reports whether field has been focused.
func (f *Form) Touched(field measurement.Field) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.touched[field]
}

// Value returns the last value recorded for field.
func (f *Form) Value(field measurement.Field) (measurement.Value, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[field]
	return v, ok
}

// Visible returns the findings to render under field: none until the field
// has been touched.
func (f *Form) Visible(field measurement.Field) []validator.Finding {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if !f.touched[field] {
		return nil
	}
	return slices.Clone(f.findings[field])
}

// Findings returns the current findings of all fields in field order.
func (f *Form) Findings() []validator.Finding {
	f.mu.RLock()
	defer f.mu.RUnlock()

	fields := make([]measurement.Field, 0, len(f.findings))
	for field := range f.findings {
		fields = append(fields, field)
	}
	measurement.SortFields(fields)

	var out []validator.Finding
	for _, field := range fields {
		out = append(out, f.findings[field]...)
	}
	return out
}

// Summary aggregates the current findings of every field.
func (f *Form) Summary() validator.Summary {
	return validator.Summarize(f.Findings())
}
