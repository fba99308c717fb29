package ranges

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/cinefleet/fleetcheck/pkg/defaults"
	"github.com/cinefleet/fleetcheck/pkg/header"
	"github.com/cinefleet/fleetcheck/pkg/measurement"
)

const (
	// DocumentKind is the kind of a range registry document.
	DocumentKind = "RangeRegistry"
)

// Document is the serialized form of a registry.
type Document struct {
	header.Header `json:",inline" yaml:",inline"`

	Specs []RangeSpec `json:"specs" yaml:"specs"`
}

// Registry is an immutable field -> RangeSpec map. It is safe for concurrent use.
type Registry struct {
	specs  map[measurement.Field]*RangeSpec
	fields []measurement.Field
}

// NewRegistry validates specs and builds a registry from them.
// Duplicate fields are rejected.
func NewRegistry(specs ...RangeSpec) (*Registry, error) {
	r := &Registry{
		specs:  make(map[measurement.Field]*RangeSpec, len(specs)),
		fields: make([]measurement.Field, 0, len(specs)),
	}

	for i := range specs {
		s := specs[i].Clone()
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid range spec at index %d: %w", i, err)
		}
		if _, dup := r.specs[s.Field]; dup {
			return nil, fmt.Errorf("duplicate range spec for field %q", s.Field)
		}
		r.specs[s.Field] = s
		r.fields = append(r.fields, s.Field)
	}

	measurement.SortFields(r.fields)
	return r, nil
}

// Lookup returns a copy of the spec registered for field.
// ok is false when the field has no spec; that is not an error.
func (r *Registry) Lookup(field measurement.Field) (*RangeSpec, bool) {
	s, ok := r.Get(field)
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// Get returns the registered spec without copying it. Callers must not modify it.
func (r *Registry) Get(field measurement.Field) (*RangeSpec, bool) {
	if r == nil {
		return nil, false
	}
	s, ok := r.specs[field]
	return s, ok
}

// Fields returns the registered field identifiers in sorted order.
func (r *Registry) Fields() []measurement.Field {
	return slices.Clone(r.fields)
}

// Specs returns copies of all specs sorted by field.
func (r *Registry) Specs() []RangeSpec {
	out := make([]RangeSpec, 0, len(r.fields))
	for _, f := range r.fields {
		out = append(out, *r.specs[f].Clone())
	}
	return out
}

// Len returns the number of registered specs.
func (r *Registry) Len() int {
	return len(r.specs)
}

// Merge returns a new registry in which overrides replace existing specs by
// field and unknown fields are added. The receiver is unchanged.
func (r *Registry) Merge(overrides ...RangeSpec) (*Registry, error) {
	byField := make(map[measurement.Field]int, len(r.fields)+len(overrides))
	merged := r.Specs()
	for i, s := range merged {
		byField[s.Field] = i
	}

	seen := make(map[measurement.Field]bool, len(overrides))
	for _, o := range overrides {
		if seen[o.Field] {
			return nil, fmt.Errorf("duplicate override for field %q", o.Field)
		}
		seen[o.Field] = true

		if i, ok := byField[o.Field]; ok {
			merged[i] = o
			continue
		}
		byField[o.Field] = len(merged)
		merged = append(merged, o)
	}

	return NewRegistry(merged...)
}

// Document returns the registry in its serialized form.
func (r *Registry) Document() *Document {
	d := &Document{Specs: r.Specs()}
	d.Init(DocumentKind, header.DefaultAPIVersion(DocumentKind), "")
	return d
}

// Suggest returns registered fields whose identifiers are within
// defaults.SuggestionDistance edits of name, closest first. Comparison is
// case-insensitive.
func (r *Registry) Suggest(name string) []measurement.Field {
	type candidate struct {
		field    measurement.Field
		distance int
	}

	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}

	var candidates []candidate
	for _, f := range r.fields {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(string(f)))
		if d <= defaults.SuggestionDistance {
			candidates = append(candidates, candidate{field: f, distance: d})
		}
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return a.distance - b.distance
	})

	out := make([]measurement.Field, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.field)
	}
	return out
}

// Closest returns the candidate with the smallest edit distance to target.
// Ties resolve to the earliest candidate. ok is false when there are no candidates.
func Closest(target string, candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	best := candidates[0]
	bestDistance := levenshtein.ComputeDistance(target, best)
	for _, c := range candidates[1:] {
		if d := levenshtein.ComputeDistance(target, c); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best, true
}
