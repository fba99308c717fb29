package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinefleet/fleetcheck/pkg/ranges"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, Summary{IsValid: true}, s)
	assert.Equal(t, s, Summarize([]Finding{}))
}

func TestSummarize(t *testing.T) {
	findings := []Finding{
		{Field: "voltagePN", Severity: ranges.SeverityError, Category: ranges.CategoryTechnical},
		{Field: "humidity", Severity: ranges.SeverityWarning, Category: ranges.CategoryEnvironmental},
		{Field: "temperature", Severity: ranges.SeverityError, Category: ranges.CategoryEnvironmental},
	}

	s := Summarize(findings)
	assert.Equal(t, 2, s.Errors)
	assert.Equal(t, 1, s.Warnings)
	assert.Equal(t, 0, s.Suggestions)
	assert.Equal(t, 1, s.TechnicalIssues)
	assert.Equal(t, 2, s.EnvironmentalIssues)
	assert.Equal(t, 3, s.Total)
	assert.False(t, s.IsValid)
}

func TestSummarize_WarningsAndInfoAreValid(t *testing.T) {
	s := Summarize([]Finding{
		{Severity: ranges.SeverityWarning, Category: ranges.CategoryCritical},
		{Severity: ranges.SeverityInfo, Category: ranges.CategoryOperational},
	})
	assert.True(t, s.IsValid)
	assert.Equal(t, 1, s.Suggestions)
	assert.Equal(t, 1, s.CriticalIssues)
	assert.Equal(t, 1, s.OperationalIssues)
}

func TestSummarize_ErrorsCountedOnce(t *testing.T) {
	var findings []Finding
	for _, c := range ranges.Categories {
		findings = append(findings, Finding{Severity: ranges.SeverityError, Category: c})
	}

	s := Summarize(findings)
	assert.Equal(t, len(ranges.Categories), s.Errors)
	assert.Equal(t, s.Errors,
		s.CriticalIssues+s.TechnicalIssues+s.EnvironmentalIssues+s.OperationalIssues)
}

func TestCombine(t *testing.T) {
	a := Summarize([]Finding{{Severity: ranges.SeverityWarning, Category: ranges.CategoryTechnical}})
	b := Summarize([]Finding{{Severity: ranges.SeverityError, Category: ranges.CategoryOperational}})

	c := Combine(a, b)
	assert.Equal(t, 1, c.Errors)
	assert.Equal(t, 1, c.Warnings)
	assert.Equal(t, 2, c.Total)
	assert.False(t, c.IsValid)

	assert.True(t, Combine().IsValid)
	assert.True(t, Combine(a).IsValid)
}
