package header

import (
	"testing"
	"time"
)

func TestNew_AppliesOptions(t *testing.T) {
	h := New(
		WithKind("ServiceReport"),
		WithAPIVersion("fleetcheck.cinefleet.io/v1"),
		WithMetadata("site", "hall-7"),
	)

	if h.Kind != "ServiceReport" {
		t.Errorf("expected kind ServiceReport, got %q", h.Kind)
	}
	if h.APIVersion != "fleetcheck.cinefleet.io/v1" {
		t.Errorf("unexpected apiVersion %q", h.APIVersion)
	}
	if h.Metadata["site"] != "hall-7" {
		t.Errorf("expected site metadata, got %v", h.Metadata)
	}
}

func TestWithMetadata_InitializesNilMap(t *testing.T) {
	h := &Header{}
	WithMetadata("k", "v")(h)
	if h.Metadata["k"] != "v" {
		t.Fatalf("expected metadata k=v, got %v", h.Metadata)
	}
}

func TestSet_DerivesAPIVersionAndTimestamp(t *testing.T) {
	var h Header
	h.Set("ValidationResult")

	if h.APIVersion != "validationresult.fleetcheck.cinefleet.io/v1" {
		t.Errorf("unexpected apiVersion %q", h.APIVersion)
	}
	ts, ok := h.Metadata["timestamp"]
	if !ok {
		t.Fatal("expected timestamp metadata")
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", ts, err)
	}
	if _, ok := h.Metadata["version"]; ok {
		t.Error("version should not be set by Set")
	}
}

func TestInit_SetsVersion(t *testing.T) {
	var h Header
	h.Init("ValidationResult", "fleetcheck.cinefleet.io/v1", "1.0.0")
	if h.Metadata["version"] != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", h.Metadata["version"])
	}
}
