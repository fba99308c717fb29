// Package ranges holds the canonical domain knowledge for every measurable
// projector report field.
//
// # Overview
//
// A RangeSpec describes one field in exactly one of two shapes:
//
//   - numeric: an absolute legal domain, a normal (healthy) band, and an
//     optional critical band with an explicit direction (low, high, both)
//     and a fixed severity.
//   - enumerated: the set of valid tokens, the subset considered normal, and
//     the subset considered critical.
//
// Every spec also carries a fixed Category used to group findings, a display
// unit and a description.
//
// # Registry
//
// A Registry is an immutable field -> spec map. The default registry is parsed
// once from the embedded document data/ranges-v1.yaml:
//
//	reg, err := ranges.Default()
//	spec, ok := reg.Lookup(measurement.FieldVoltagePN)
//
// Alternate registries are built with NewRegistry (tests) or by merging an
// override document loaded with Load from a file, an HTTP(S) URL, or a
// Kubernetes ConfigMap URI:
//
//	reg, err := ranges.Load(ctx, "cm://projectors/fleetcheck-ranges")
//
// Lookups of unregistered fields return ok == false. This is not an error:
// callers treat such fields as unvalidated.
package ranges
