package measurement

import "strings"

// FilterOut returns the fields not matching any of the provided patterns.
// Supports wildcard patterns:
//   - "prefix*" matches fields starting with "prefix"
//   - "*suffix" matches fields ending with "suffix"
//   - "*contains*" matches fields containing "contains"
//   - "exact" matches fields exactly
func FilterOut(fields []Field, patterns []string) []Field {
	result := make([]Field, 0, len(fields))

	for _, f := range fields {
		omit := false
		for _, pattern := range patterns {
			if matchesPattern(string(f), pattern) {
				omit = true
				break
			}
		}
		if !omit {
			result = append(result, f)
		}
	}

	return result
}

// matchesPattern checks if a key matches a wildcard pattern.
func matchesPattern(key, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return key == pattern
	}

	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		return strings.Contains(key, strings.Trim(pattern, "*"))
	}

	if strings.HasPrefix(pattern, "*") {
		return strings.HasSuffix(key, strings.TrimPrefix(pattern, "*"))
	}

	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(key, strings.TrimSuffix(pattern, "*"))
	}

	return false
}
