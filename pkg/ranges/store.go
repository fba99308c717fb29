package ranges

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	fcerrors "github.com/cinefleet/fleetcheck/pkg/errors"
)

var (
	//go:embed data/ranges-v1.yaml
	rangeData []byte

	storeOnce      sync.Once
	cachedRegistry *Registry
	cachedErr      error
)

// Default returns the registry parsed from the embedded range document.
// The data is embedded at build time, so it is parsed once and shared for the
// lifetime of the process.
func Default() (*Registry, error) {
	storeOnce.Do(func() {
		reg, err := Parse(rangeData)
		if err != nil {
			cachedErr = fmt.Errorf("failed to load embedded range registry: %w", err)
			return
		}
		cachedRegistry = reg
	})

	if cachedErr != nil {
		return nil, cachedErr
	}
	if cachedRegistry == nil {
		return nil, fcerrors.New(fcerrors.ErrCodeInternal, "range registry not initialized")
	}
	return cachedRegistry, nil
}

// MustDefault is like Default but panics if the embedded document is invalid.
// The embedded document is covered by tests, so this only fails on a broken build.
func MustDefault() *Registry {
	reg, err := Default()
	if err != nil {
		panic(err)
	}
	return reg
}

// Parse decodes a YAML or JSON registry document and builds a registry.
// Unknown keys are rejected so that typos in override documents surface early.
func Parse(data []byte) (*Registry, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return NewRegistry(doc.Specs...)
}

// ParseDocument decodes a YAML or JSON registry document without building a registry.
func ParseDocument(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fcerrors.New(fcerrors.ErrCodeInvalidRequest, "range document is empty")
	}

	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fcerrors.Wrap(fcerrors.ErrCodeInvalidRequest, "failed to decode range document", err)
	}

	if doc.Kind != "" && !strings.EqualFold(doc.Kind, DocumentKind) {
		return nil, fcerrors.New(fcerrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unexpected document kind %q, want %q", doc.Kind, DocumentKind))
	}

	return &doc, nil
}
