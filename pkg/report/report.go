// Package report defines the service report document: the set of readings a
// field service engineer records during a projector site visit.
//
// Reports are Kubernetes-style documents and can be read from files, HTTP(S)
// URLs or ConfigMaps:
//
//	kind: ServiceReport
//	apiVersion: servicereport.fleetcheck.cinefleet.io/v1
//	projector: SN-10442
//	site: Odeon Leicester Square
//	engineer: j.doe
//	visitDate: "2025-03-14"
//	readings:
//	  brightness: 5200
//	  voltagePN: 231
//	  resolution: 4K
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/cinefleet/fleetcheck/pkg/header"
	"github.com/cinefleet/fleetcheck/pkg/measurement"
	"github.com/cinefleet/fleetcheck/pkg/serializer"
)

// Kind is the document kind of a service report.
const Kind = "ServiceReport"

// Report is a service report document.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// Projector is the projector serial number.
	Projector string `json:"projector,omitempty" yaml:"projector,omitempty"`
	Site      string `json:"site,omitempty" yaml:"site,omitempty"`
	Engineer  string `json:"engineer,omitempty" yaml:"engineer,omitempty"`
	VisitDate string `json:"visitDate,omitempty" yaml:"visitDate,omitempty"`

	// Readings maps field identifiers to raw values as entered.
	Readings map[measurement.Field]any `json:"readings" yaml:"readings"`
}

// Option configures a Report.
type Option func(*Report)

// WithProjector sets the projector serial number.
func WithProjector(serial string) Option {
	return func(r *Report) {
		r.Projector = serial
	}
}

// WithSite sets the site name.
func WithSite(site string) Option {
	return func(r *Report) {
		r.Site = site
	}
}

// WithReading records a raw value for field.
func WithReading(field measurement.Field, value any) Option {
	return func(r *Report) {
		r.Readings[field] = value
	}
}

// New returns an initialized report.
func New(opts ...Option) *Report {
	r := &Report{
		Readings: make(map[measurement.Field]any),
	}
	r.Set(Kind)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fields returns the identifiers of all readings in sorted order.
func (r *Report) Fields() []measurement.Field {
	fields := make([]measurement.Field, 0, len(r.Readings))
	for f := range r.Readings {
		fields = append(fields, f)
	}
	measurement.SortFields(fields)
	return fields
}

// Value returns the typed value recorded for field. Missing readings are
// returned as a blank Unparsed value.
func (r *Report) Value(field measurement.Field) (measurement.Value, error) {
	v, err := measurement.FromAny(r.Readings[field])
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", field, err)
	}
	return v, nil
}

// Validate checks the document envelope. Reading values are checked by the
// validator, not here.
func (r *Report) Validate() error {
	if r.Kind != "" && !strings.EqualFold(r.Kind, Kind) {
		return fmt.Errorf("unexpected document kind %q, want %q", r.Kind, Kind)
	}
	if len(r.Readings) == 0 {
		return fmt.Errorf("report has no readings")
	}
	for f := range r.Readings {
		if strings.TrimSpace(string(f)) == "" {
			return fmt.Errorf("report contains a reading with an empty field identifier")
		}
	}
	return nil
}

// Parse decodes a JSON or YAML report.
func Parse(data []byte) (*Report, error) {
	r, err := serializer.Decode[Report](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode service report: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// FromURI loads a report from a file path, HTTP(S) URL, "-" for stdin or a
// cm://namespace/name[/key] ConfigMap.
func FromURI(ctx context.Context, uri string, opts ...serializer.Option) (*Report, error) {
	data, err := serializer.ReadURI(ctx, uri, opts...)
	if err != nil {
		return nil, err
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", uri, err)
	}
	return r, nil
}
