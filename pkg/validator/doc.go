// Package validator checks projector field readings against the range registry.
//
// # Overview
//
// Validate classifies one raw value for one field and returns zero or more
// findings. A finding carries a severity (error, warning or info) and the
// fixed category of the field (critical, technical, environmental or
// operational). Category never depends on how far a value is out of range.
//
// Numeric fields are classified in this order:
//
//  1. No registered spec: no findings. The field is unvalidated.
//  2. Blank: an error for required fields, nothing otherwise.
//     Non-numeric text: an error in the technical category.
//  3. Outside the absolute domain: error.
//  4. Inside the normal range: no finding.
//  5. Inside the critical range on the declared side: the spec's critical severity.
//  6. Anywhere else: warning. This covers gaps between normal and critical.
//
// Enumerated fields use set membership: unknown values are errors, critical
// values use the spec's critical severity, normal values pass and other valid
// values are warnings.
//
// Out-of-range findings carry a suggested value: the nearest normal boundary
// for numbers, the closest normal value by edit distance for enumerations.
//
// # Usage
//
//	v := validator.New(validator.WithVersion(version))
//	findings := v.Validate(measurement.FieldVoltagePN, measurement.Numeric(190))
//	summary := validator.Summarize(findings)
//
// Whole service reports are validated with ValidateReport, which returns
// per-field results, the list of unvalidated fields and a summary.
//
// A Validator holds no mutable state and is safe for concurrent use.
package validator
