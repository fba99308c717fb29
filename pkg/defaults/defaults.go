package defaults

import "time"

// Loader timeouts.
const (
	// LoaderTimeout bounds a single registry or report fetch.
	LoaderTimeout = 15 * time.Second

	// KubernetesTimeout bounds a single ConfigMap API call.
	KubernetesTimeout = 30 * time.Second
)

// Handler timeouts.
const (
	// ValidateHandlerTimeout bounds single field and report validation requests.
	ValidateHandlerTimeout = 10 * time.Second

	// ImportHandlerTimeout bounds CSV bulk validation requests.
	ImportHandlerTimeout = 60 * time.Second
)

// Server timeouts.
const (
	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Request limits.
const (
	// MaxRequestBodyBytes caps JSON and YAML request bodies.
	MaxRequestBodyBytes = 1 << 20

	// MaxImportBodyBytes caps CSV request bodies.
	MaxImportBodyBytes = 16 << 20
)

// Import defaults.
const (
	// ImportWorkers is the default number of rows validated concurrently.
	ImportWorkers = 8

	// ImportIDColumn is the default CSV column identifying a row.
	ImportIDColumn = "serialNumber"
)

// SuggestionDistance is the maximum edit distance for "did you mean" hints.
const SuggestionDistance = 3
