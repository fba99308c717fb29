package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/cinefleet/fleetcheck/pkg/defaults"
	"github.com/cinefleet/fleetcheck/pkg/k8s/client"
)

// ConfigMapRef identifies a ConfigMap and optionally one of its data keys.
type ConfigMapRef struct {
	Namespace string
	Name      string
	Key       string
}

// String returns the cm:// URI of the reference.
func (r ConfigMapRef) String() string {
	s := ConfigMapURIScheme + r.Namespace + "/" + r.Name
	if r.Key != "" {
		s += "/" + r.Key
	}
	return s
}

// ParseConfigMapURI parses cm://namespace/name[/key].
func ParseConfigMapURI(uri string) (*ConfigMapRef, error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return nil, fmt.Errorf("invalid ConfigMap URI %q: must start with %s", uri, ConfigMapURIScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, ConfigMapURIScheme), "/")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid ConfigMap URI %q: expected format %snamespace/name[/key]", uri, ConfigMapURIScheme)
	}

	ref := &ConfigMapRef{Namespace: parts[0], Name: parts[1]}
	if len(parts) == 3 {
		if parts[2] == "" {
			return nil, fmt.Errorf("invalid ConfigMap URI %q: key cannot be empty", uri)
		}
		ref.Key = parts[2]
	}
	return ref, nil
}

func kubeClient(o *options) (kubernetes.Interface, error) {
	if o.kubeClient != nil {
		return o.kubeClient, nil
	}
	c, err := client.ClientFor(o.kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return c, nil
}

// readConfigMap returns the content of the referenced key. Without a key the
// ConfigMap must hold exactly one entry.
func readConfigMap(ctx context.Context, ref *ConfigMapRef, o *options) ([]byte, error) {
	c, err := kubeClient(o)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.KubernetesTimeout)
	defer cancel()

	cm, err := c.CoreV1().ConfigMaps(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get ConfigMap %s: %w", ref, err)
	}

	if ref.Key != "" {
		v, ok := cm.Data[ref.Key]
		if !ok {
			return nil, fmt.Errorf("key %q not found in ConfigMap %s/%s", ref.Key, ref.Namespace, ref.Name)
		}
		return []byte(v), nil
	}

	if len(cm.Data) != 1 {
		keys := make([]string, 0, len(cm.Data))
		for k := range cm.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("ConfigMap %s/%s has %d keys %v: specify one as %snamespace/name/key",
			ref.Namespace, ref.Name, len(keys), keys, ConfigMapURIScheme)
	}
	for _, v := range cm.Data {
		return []byte(v), nil
	}
	return nil, nil
}

// ConfigMapWriter stores serialized documents in a ConfigMap, creating it if needed.
type ConfigMapWriter struct {
	format Format
	ref    ConfigMapRef
	opts   *options
}

func newConfigMapWriter(format Format, ref *ConfigMapRef, o *options) *ConfigMapWriter {
	if format.IsUnknown() {
		format = FormatJSON
	}
	r := *ref
	if r.Key == "" {
		r.Key = defaultConfigMapKey(format)
	}
	return &ConfigMapWriter{format: format, ref: r, opts: o}
}

func defaultConfigMapKey(f Format) string {
	switch f {
	case FormatJSON:
		return DefaultConfigMapKeyPrefix + ".json"
	case FormatTable:
		return DefaultConfigMapKeyPrefix + ".txt"
	default:
		return DefaultConfigMapKeyPrefix + ".yaml"
	}
}

// Serialize writes data under the configured key, preserving other keys.
func (w *ConfigMapWriter) Serialize(ctx context.Context, data any) error {
	b, err := Marshal(w.format, data)
	if err != nil {
		return err
	}

	c, err := kubeClient(w.opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.KubernetesTimeout)
	defer cancel()

	cms := c.CoreV1().ConfigMaps(w.ref.Namespace)
	existing, err := cms.Get(ctx, w.ref.Name, metav1.GetOptions{})
	switch {
	case apierrors.IsNotFound(err):
		cm := &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:      w.ref.Name,
				Namespace: w.ref.Namespace,
				Labels: map[string]string{
					"app.kubernetes.io/managed-by": "fleetcheck",
				},
			},
			Data: map[string]string{w.ref.Key: string(b)},
		}
		if _, err := cms.Create(ctx, cm, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("failed to create ConfigMap %s: %w", w.ref, err)
		}
		slog.Debug("created ConfigMap", "namespace", w.ref.Namespace, "name", w.ref.Name, "key", w.ref.Key)
		return nil
	case err != nil:
		return fmt.Errorf("failed to get ConfigMap %s: %w", w.ref, err)
	}

	if existing.Data == nil {
		existing.Data = make(map[string]string)
	}
	existing.Data[w.ref.Key] = string(b)
	if _, err := cms.Update(ctx, existing, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("failed to update ConfigMap %s: %w", w.ref, err)
	}
	slog.Debug("updated ConfigMap", "namespace", w.ref.Namespace, "name", w.ref.Name, "key", w.ref.Key)
	return nil
}
