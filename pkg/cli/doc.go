// Package cli implements the fleetcheck command-line interface.
//
// # Overview
//
// fleetcheck validates projector service readings against the range
// registry: the legal, normal and critical bands of every field a field
// service engineer records during a site visit.
//
// # Commands
//
// validate - Validate one reading or a whole service report:
//
//	fleetcheck validate --field voltagePN --value 190
//	fleetcheck validate --report visit.yaml --format table
//	fleetcheck validate -r cm://field-service/visit-0314 -o cm://field-service/visit-0314-result
//	fleetcheck validate -r visit.yaml --exclude 'pm*' --notices --fail-on-error
//
// Findings carry a severity (error, warning, info) and the fixed category of
// the field. Use --fail-on-error in pipelines to exit non-zero when any error
// is found.
//
// ranges - Show the range registry:
//
//	fleetcheck ranges
//	fleetcheck ranges --field brightness
//	fleetcheck ranges --category environmental --format table
//
// import - Validate a CSV export in bulk:
//
//	fleetcheck import --file readings.csv --id-column serialNumber --workers 8
//
// The first row names the columns. The identity column labels each row in
// the output.
//
// serve - Run the validation API server:
//
//	fleetcheck serve --port 8080
//
// # Range Overrides
//
// Every command accepts --ranges (or FLEETCHECK_RANGES) pointing at a
// RangeRegistry document. Its specs replace the built-in specs of the same
// field and add new fields:
//
//	kind: RangeRegistry
//	specs:
//	  - field: voltagePN
//	    category: technical
//	    unit: V
//	    absolute: {min: 180, max: 280}
//	    normal: {min: 215, max: 235}
//	    critical: {min: 180, max: 195}
//	    criticalDirection: low
//	    criticalSeverity: error
//
// # Input and Output
//
// Inputs may be file paths, HTTP(S) URLs, "-" for stdin, or ConfigMap URIs
// (cm://namespace/name[/key]). Output goes to stdout by default, or to a file
// or ConfigMap with --output, in json, yaml or table format.
//
// # Global Flags
//
//	--debug      Enable debug logging
//	--log-json   Emit JSON logs
package cli
