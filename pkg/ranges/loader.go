package ranges

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cinefleet/fleetcheck/pkg/serializer"
)

// Load reads an override document from uri (file, HTTP(S) URL or
// cm://namespace/name[/key]) and merges it over the default registry.
// An empty uri returns the default registry.
func Load(ctx context.Context, uri string, opts ...serializer.Option) (*Registry, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}
	if uri == "" {
		return base, nil
	}
	return LoadOver(ctx, base, uri, opts...)
}

// LoadOver reads an override document from uri and merges it over base.
func LoadOver(ctx context.Context, base *Registry, uri string, opts ...serializer.Option) (*Registry, error) {
	data, err := serializer.ReadURI(ctx, uri, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to read range overrides: %w", err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", uri, err)
	}

	reg, err := base.Merge(doc.Specs...)
	if err != nil {
		return nil, fmt.Errorf("failed to apply range overrides from %s: %w", uri, err)
	}

	slog.Debug("loaded range overrides",
		"uri", uri,
		"overrides", len(doc.Specs),
		"fields", reg.Len())

	return reg, nil
}
