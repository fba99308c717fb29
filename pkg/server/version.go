package server

import (
	"net/http"
	"regexp"
	"strings"
)

const (
	// DefaultAPIVersion is served when the client does not ask for one.
	DefaultAPIVersion = "v1"

	// vendorMediaPrefix is the vendor media type prefix, e.g.
	// application/vnd.cinefleet.fleetcheck.v1+json.
	vendorMediaPrefix = "application/vnd.cinefleet.fleetcheck."

	headerAPIVersion = "X-API-Version"
)

var (
	supportedAPIVersions = []string{"v1"}
	vendorVersionPattern = regexp.MustCompile(`^v[0-9]+$`)
)

// negotiateAPIVersion reads the API version from a vendor media type in the
// Accept header, falling back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		media := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if !strings.HasPrefix(media, vendorMediaPrefix) {
			continue
		}
		v := strings.TrimPrefix(media, vendorMediaPrefix)
		if i := strings.IndexByte(v, '+'); i >= 0 {
			v = v[:i]
		}
		if vendorVersionPattern.MatchString(v) && isValidAPIVersion(v) {
			return v
		}
	}
	return DefaultAPIVersion
}

func isValidAPIVersion(v string) bool {
	for _, s := range supportedAPIVersions {
		if v == s {
			return true
		}
	}
	return false
}
