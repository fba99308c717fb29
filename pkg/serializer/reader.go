package serializer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cinefleet/fleetcheck/pkg/defaults"
)

// ReadURI returns the raw content at uri. Supported sources are "-" (stdin),
// file paths, HTTP(S) URLs and cm://namespace/name[/key] ConfigMaps.
func ReadURI(ctx context.Context, uri string, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	trimmed := strings.TrimSpace(uri)

	switch {
	case trimmed == "":
		return nil, fmt.Errorf("input URI cannot be empty")
	case trimmed == StdoutURI:
		return io.ReadAll(os.Stdin)
	case strings.HasPrefix(trimmed, ConfigMapURIScheme):
		ref, err := ParseConfigMapURI(trimmed)
		if err != nil {
			return nil, err
		}
		return readConfigMap(ctx, ref, o)
	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		return readHTTP(ctx, trimmed, o)
	default:
		b, err := os.ReadFile(trimmed)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", trimmed, err)
		}
		return b, nil
	}
}

func readHTTP(ctx context.Context, url string, o *options) ([]byte, error) {
	c := o.httpClient
	if c == nil {
		c = &http.Client{Timeout: defaults.LoaderTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %q: %w", url, err)
	}
	req.Header.Set("Accept", "application/yaml, application/json")

	resp, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %q: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("failed to close response body", "url", url, "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %q: unexpected status %s", url, resp.Status)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, defaults.MaxImportBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %q: %w", url, err)
	}
	return b, nil
}

// Decode unmarshals YAML or JSON content into T.
func Decode[T any](data []byte) (*T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("document is empty")
	}
	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &v, nil
}

// FromURI reads uri and decodes it into T.
func FromURI[T any](ctx context.Context, uri string, opts ...Option) (*T, error) {
	b, err := ReadURI(ctx, uri, opts...)
	if err != nil {
		return nil, err
	}
	v, err := Decode[T](b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", uri, err)
	}
	return v, nil
}
