package serializer

// URI scheme constants for input sources and output destinations.
const (
	// ConfigMapURIScheme is the URI scheme for Kubernetes ConfigMap sources and destinations.
	// Format: cm://namespace/configmap-name[/key]
	ConfigMapURIScheme = "cm://"

	// StdoutURI is the special URI indicating output should be written to stdout
	// (or input read from stdin).
	StdoutURI = "-"

	// DefaultConfigMapKeyPrefix prefixes the data key written to ConfigMaps.
	DefaultConfigMapKeyPrefix = "fleetcheck"
)
