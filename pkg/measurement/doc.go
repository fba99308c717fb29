// Package measurement defines the stable field identifiers and the value
// union shared by the range registry, the validator, and every rendering
// layer.
//
// # Fields
//
// A Field is the stable identifier of a measurable quantity on a projector
// service report (for example FieldVoltagePN or FieldBrightness). Fields are
// never derived from human readable labels; forms, CSV headers and API
// payloads all use the identifier directly.
//
// # Values
//
// Value is a closed union of three shapes:
//
//	Numeric   // a finite number, e.g. 230
//	Enum      // a non-numeric token, e.g. "4K"
//	Unparsed  // blank input
//
// Parse classifies raw text into one of the shapes. The validator coerces a
// value to the shape its range spec expects, so the enumerated field
// softwareVersion accepts Numeric(2) as "2.0".
package measurement
