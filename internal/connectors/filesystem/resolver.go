package filesystem

import "strings"

// ResolvePath converts a file candidate target to a local path for opening.
// Handles file:// URIs and bare paths.
func ResolvePath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		return strings.TrimPrefix(uri, "file://")
	}
	return uri
}

// TargetFor returns the target stored on a file candidate.
func TargetFor(path string) string {
	return "file://" + path
}
