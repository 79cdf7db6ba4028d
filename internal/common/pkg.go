package common

import "strings"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// PathSeparator joins path segments of fields and view nodes.
const PathSeparator = "/"

// JoinPath joins a parent path and a child segment.
// An empty parent yields the segment alone.
func JoinPath(parent, segment string) string {
	if parent == "" {
		return segment
	}

	return parent + PathSeparator + segment
}

// SplitPath splits a path into its non-empty segments.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}

	parts := strings.Split(path, PathSeparator)
	result := make([]string, 0, len(parts))

	for _, p := range parts {
		if p != "" {
			result = append(result, p)
		}
	}

	return result
}
