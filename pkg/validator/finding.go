package validator

import (
	"github.com/cinefleet/fleetcheck/pkg/measurement"
	"github.com/cinefleet/fleetcheck/pkg/ranges"
)

// Finding is one validation result for a single field value.
type Finding struct {
	Field    measurement.Field `json:"field" yaml:"field"`
	Message  string            `json:"message" yaml:"message"`
	Severity ranges.Severity   `json:"severity" yaml:"severity"`
	Category ranges.Category   `json:"category" yaml:"category"`

	// SuggestedValue is a float64 for numeric fields or a string for
	// enumerated fields and unregistered field names.
	SuggestedValue any `json:"suggestedValue,omitempty" yaml:"suggestedValue,omitempty"`
}

// Summary aggregates findings by severity and category.
type Summary struct {
	Errors      int `json:"errors" yaml:"errors"`
	Warnings    int `json:"warnings" yaml:"warnings"`
	Suggestions int `json:"suggestions" yaml:"suggestions"`

	CriticalIssues      int `json:"criticalIssues" yaml:"criticalIssues"`
	TechnicalIssues     int `json:"technicalIssues" yaml:"technicalIssues"`
	EnvironmentalIssues int `json:"environmentalIssues" yaml:"environmentalIssues"`
	OperationalIssues   int `json:"operationalIssues" yaml:"operationalIssues"`

	Total   int  `json:"total" yaml:"total"`
	IsValid bool `json:"isValid" yaml:"isValid"`
}

// Summarize counts findings by severity and by category. A set of findings
// is valid iff it contains no errors. Summarize(nil) is valid with all counts zero.
func Summarize(findings []Finding) Summary {
	var s Summary
	for _, f := range findings {
		s.add(f)
	}
	s.IsValid = s.Errors == 0
	return s
}

// Combine adds summaries together, e.g. the per-row summaries of an import.
func Combine(summaries ...Summary) Summary {
	var out Summary
	for _, s := range summaries {
		out.Errors += s.Errors
		out.Warnings += s.Warnings
		out.Suggestions += s.Suggestions
		out.CriticalIssues += s.CriticalIssues
		out.TechnicalIssues += s.TechnicalIssues
		out.EnvironmentalIssues += s.EnvironmentalIssues
		out.OperationalIssues += s.OperationalIssues
		out.Total += s.Total
	}
	out.IsValid = out.Errors == 0
	return out
}

func (s *Summary) add(f Finding) {
	s.Total++

	switch f.Severity {
	case ranges.SeverityError:
		s.Errors++
	case ranges.SeverityWarning:
		s.Warnings++
	case ranges.SeverityInfo:
		s.Suggestions++
	}

	switch f.Category {
	case ranges.CategoryCritical:
		s.CriticalIssues++
	case ranges.CategoryTechnical:
		s.TechnicalIssues++
	case ranges.CategoryEnvironmental:
		s.EnvironmentalIssues++
	case ranges.CategoryOperational:
		s.OperationalIssues++
	}
}
