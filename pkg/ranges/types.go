package ranges

import (
	"fmt"
	"slices"

	"k8s.io/utils/ptr"

	"github.com/cinefleet/fleetcheck/pkg/measurement"
)

// Category groups fields by operational domain. It is a fixed property of the
// field and independent of how far a value is out of range.
type Category string

const (
	CategoryCritical      Category = "critical"
	CategoryTechnical     Category = "technical"
	CategoryEnvironmental Category = "environmental"
	CategoryOperational   Category = "operational"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryCritical, CategoryTechnical, CategoryEnvironmental, CategoryOperational}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	return slices.Contains(Categories, c)
}

// Severity is how urgently a finding should be surfaced.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank orders severities so that error > warning > info.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Direction is the side of the normal band a critical band covers.
type Direction string

const (
	DirectionLow  Direction = "low"
	DirectionHigh Direction = "high"
	DirectionBoth Direction = "both"
)

// Kind is the shape of a RangeSpec.
type Kind string

const (
	KindNumeric    Kind = "numeric"
	KindEnumerated Kind = "enumerated"
)

// Interval is a closed numeric interval.
type Interval struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether v lies in [Min, Max].
func (i Interval) Contains(v float64) bool {
	return v >= i.Min && v <= i.Max
}

// Nearest returns the bound of i closest to v, or v itself when v is inside.
func (i Interval) Nearest(v float64) float64 {
	switch {
	case v < i.Min:
		return i.Min
	case v > i.Max:
		return i.Max
	default:
		return v
	}
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s]", measurement.Numeric(i.Min), measurement.Numeric(i.Max))
}

// RangeSpec is the registry entry for one field.
type RangeSpec struct {
	Field       measurement.Field `json:"field" yaml:"field"`
	Category    Category          `json:"category" yaml:"category"`
	Unit        string            `json:"unit,omitempty" yaml:"unit,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`

	// Required fields report an error when left blank.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Numeric shape.
	Absolute          *Interval `json:"absolute,omitempty" yaml:"absolute,omitempty"`
	Normal            *Interval `json:"normal,omitempty" yaml:"normal,omitempty"`
	Critical          *Interval `json:"critical,omitempty" yaml:"critical,omitempty"`
	CriticalDirection Direction `json:"criticalDirection,omitempty" yaml:"criticalDirection,omitempty"`

	// Enumerated shape.
	ValidValues    []string `json:"validValues,omitempty" yaml:"validValues,omitempty"`
	NormalValues   []string `json:"normalValues,omitempty" yaml:"normalValues,omitempty"`
	CriticalValues []string `json:"criticalValues,omitempty" yaml:"criticalValues,omitempty"`

	// CriticalSeverity is the severity of a value inside the critical band or set.
	CriticalSeverity Severity `json:"criticalSeverity,omitempty" yaml:"criticalSeverity,omitempty"`
}

// Kind returns the shape of the spec.
func (s *RangeSpec) Kind() Kind {
	if len(s.ValidValues) > 0 {
		return KindEnumerated
	}
	return KindNumeric
}

// Validate checks the internal consistency of the spec.
func (s *RangeSpec) Validate() error {
	if s.Field == "" {
		return fmt.Errorf("field identifier cannot be empty")
	}
	if !s.Category.IsValid() {
		return fmt.Errorf("field %q: invalid category %q", s.Field, s.Category)
	}

	numeric := s.Absolute != nil || s.Normal != nil || s.Critical != nil
	enumerated := len(s.ValidValues) > 0 || len(s.NormalValues) > 0 || len(s.CriticalValues) > 0

	switch {
	case numeric && enumerated:
		return fmt.Errorf("field %q: cannot declare both numeric ranges and enumerated values", s.Field)
	case !numeric && !enumerated:
		return fmt.Errorf("field %q: must declare numeric ranges or enumerated values", s.Field)
	case numeric:
		return s.validateNumeric()
	default:
		return s.validateEnumerated()
	}
}

func (s *RangeSpec) validateNumeric() error {
	if s.Absolute == nil || s.Normal == nil {
		return fmt.Errorf("field %q: numeric spec requires absolute and normal ranges", s.Field)
	}
	for name, iv := range map[string]*Interval{"absolute": s.Absolute, "normal": s.Normal, "critical": s.Critical} {
		if iv != nil && iv.Min > iv.Max {
			return fmt.Errorf("field %q: %s range min %v exceeds max %v", s.Field, name, iv.Min, iv.Max)
		}
	}
	if s.Normal.Min < s.Absolute.Min || s.Normal.Max > s.Absolute.Max {
		return fmt.Errorf("field %q: normal range %s outside absolute range %s", s.Field, s.Normal, s.Absolute)
	}

	if s.Critical == nil {
		if s.CriticalDirection != "" {
			return fmt.Errorf("field %q: critical direction set without a critical range", s.Field)
		}
		return nil
	}

	if err := s.validateCriticalSeverity(); err != nil {
		return err
	}

	low := s.Critical.Min < s.Normal.Min
	high := s.Critical.Max > s.Normal.Max
	switch s.CriticalDirection {
	case DirectionLow:
		if !low {
			return fmt.Errorf("field %q: low critical range %s does not extend below normal %s", s.Field, s.Critical, s.Normal)
		}
	case DirectionHigh:
		if !high {
			return fmt.Errorf("field %q: high critical range %s does not extend above normal %s", s.Field, s.Critical, s.Normal)
		}
	case DirectionBoth:
		if !low || !high {
			return fmt.Errorf("field %q: critical range %s must extend on both sides of normal %s", s.Field, s.Critical, s.Normal)
		}
	default:
		return fmt.Errorf("field %q: critical range requires direction low, high or both, got %q", s.Field, s.CriticalDirection)
	}

	return nil
}

func (s *RangeSpec) validateEnumerated() error {
	if len(s.ValidValues) == 0 {
		return fmt.Errorf("field %q: enumerated spec requires valid values", s.Field)
	}
	if s.CriticalDirection != "" {
		return fmt.Errorf("field %q: critical direction does not apply to enumerated values", s.Field)
	}
	for _, v := range s.NormalValues {
		if !slices.Contains(s.ValidValues, v) {
			return fmt.Errorf("field %q: normal value %q is not a valid value", s.Field, v)
		}
		if slices.Contains(s.CriticalValues, v) {
			return fmt.Errorf("field %q: value %q cannot be both normal and critical", s.Field, v)
		}
	}
	for _, v := range s.CriticalValues {
		if !slices.Contains(s.ValidValues, v) {
			return fmt.Errorf("field %q: critical value %q is not a valid value", s.Field, v)
		}
	}
	if len(s.CriticalValues) > 0 {
		return s.validateCriticalSeverity()
	}
	return nil
}

func (s *RangeSpec) validateCriticalSeverity() error {
	switch s.CriticalSeverity {
	case SeverityError, SeverityWarning:
		return nil
	default:
		return fmt.Errorf("field %q: critical severity must be error or warning, got %q", s.Field, s.CriticalSeverity)
	}
}

// Clone returns a deep copy of the spec.
func (s *RangeSpec) Clone() *RangeSpec {
	c := *s
	c.Absolute = cloneInterval(s.Absolute)
	c.Normal = cloneInterval(s.Normal)
	c.Critical = cloneInterval(s.Critical)
	c.ValidValues = slices.Clone(s.ValidValues)
	c.NormalValues = slices.Clone(s.NormalValues)
	c.CriticalValues = slices.Clone(s.CriticalValues)
	return &c
}

func cloneInterval(i *Interval) *Interval {
	if i == nil {
		return nil
	}
	return ptr.To(*i)
}
