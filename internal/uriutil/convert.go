// Package uriutil converts between file:// URIs (the identifier every
// LSP request uses) and filesystem paths (what os.ReadFile and the
// host script-facts loader need). Simplified from the teacher's own
// internal/uriutil: this engine only targets POSIX-style workspaces, so
// the teacher's Windows UNC-path and extended-length-prefix handling is
// dropped (see DESIGN.md).
package uriutil

import (
	"net/url"
	"path/filepath"
	"strings"
)

// PathToURI converts a filesystem path to a file:// URI, percent-encoding
// any reserved or non-ASCII characters segment by segment.
func PathToURI(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	absPath = filepath.ToSlash(absPath)
	if !strings.HasPrefix(absPath, "/") {
		absPath = "/" + absPath
	}

	segments := strings.Split(absPath, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		segments[i] = url.PathEscape(seg)
	}
	return "file://" + strings.Join(segments, "/")
}

// URIToPath converts a file:// URI back to a filesystem path,
// percent-decoding each segment. Falls back to lenient string
// manipulation for a URI that doesn't parse cleanly (spec.md §7
// "degrade gracefully rather than fail the whole request").
func URIToPath(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return fallbackPath(uri)
	}

	decoded, err := url.PathUnescape(parsed.Path)
	if err != nil {
		decoded = parsed.Path
	}
	return filepath.FromSlash(decoded)
}

func fallbackPath(uri string) string {
	path := strings.TrimPrefix(uri, "file://")
	return filepath.FromSlash(path)
}
