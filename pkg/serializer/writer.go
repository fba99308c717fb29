package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
	"k8s.io/client-go/kubernetes"
)

// Serializer writes a document to some destination.
type Serializer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer is implemented by serializers that hold resources.
type Closer interface {
	Close() error
}

// Option configures readers and writers that reach remote destinations.
type Option func(*options)

type options struct {
	kubeconfig string
	kubeClient kubernetes.Interface
	httpClient *http.Client
}

// WithKubeconfig sets the kubeconfig used for ConfigMap URIs.
func WithKubeconfig(path string) Option {
	return func(o *options) {
		o.kubeconfig = path
	}
}

// WithKubeClient sets the Kubernetes client used for ConfigMap URIs.
func WithKubeClient(c kubernetes.Interface) Option {
	return func(o *options) {
		o.kubeClient = c
	}
}

// WithHTTPClient sets the client used for HTTP(S) URIs.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Writer encodes documents as JSON, YAML or a table onto an io.Writer.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer

	mu     sync.Mutex
	closed bool
}

// NewWriter returns a Writer for format writing to output. Unknown formats
// fall back to JSON and a nil output falls back to stdout.
func NewWriter(format Format, output io.Writer) *Writer {
	if format.IsUnknown() {
		slog.Warn("unknown output format, defaulting to json", "format", format)
		format = FormatJSON
	}
	if output == nil {
		output = os.Stdout
	}
	return &Writer{
		format: format,
		output: output,
	}
}

// NewStdoutWriter returns a Writer for format writing to stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a serializer for path. Empty paths and "-"
// write to stdout, cm:// URIs write to a Kubernetes ConfigMap, anything else
// is created as a file.
func NewFileWriterOrStdout(format Format, path string, opts ...Option) (Serializer, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == StdoutURI {
		return NewStdoutWriter(format), nil
	}

	if strings.HasPrefix(trimmed, ConfigMapURIScheme) {
		ref, err := ParseConfigMapURI(trimmed)
		if err != nil {
			return nil, err
		}
		return newConfigMapWriter(format, ref, newOptions(opts)), nil
	}

	f, err := os.Create(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", trimmed, err)
	}

	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Serialize encodes data onto the output.
func (w *Writer) Serialize(ctx context.Context, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("writer is closed")
	}

	b, err := Marshal(w.format, data)
	if err != nil {
		return err
	}

	if _, err := w.output.Write(b); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Close releases the underlying file, if any. Closing more than once is safe.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.closer == nil {
		return nil
	}
	w.closed = true
	return w.closer.Close()
}

// Marshal encodes data in format.
func Marshal(format Format, data any) ([]byte, error) {
	switch format {
	case FormatYAML:
		b, err := yaml.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return b, nil
	case FormatTable:
		return renderTable(data)
	default:
		b, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize to json: %w", err)
		}
		return append(b, '\n'), nil
	}
}
