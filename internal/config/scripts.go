package config

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandScriptGlobs expands cfg.ScriptGlobs against rootPath into an
// absolute file list, the set of host script files whose FileFacts
// feed internal/resources (SPEC_FULL.md §2 configuration). Mirrors the
// teacher's expandGlobPattern (lsp/package_json.go), using doublestar
// for `**` support.
func ExpandScriptGlobs(cfg ServerConfig, rootPath string) ([]string, error) {
	var out []string
	for _, pattern := range cfg.ScriptGlobs {
		absPattern := pattern
		if !filepath.IsAbs(pattern) {
			absPattern = filepath.Join(rootPath, pattern)
		}
		matches, err := doublestar.FilepathGlob(absPattern)
		if err != nil {
			return nil, err
		}
		out = append(out, matches...)
	}
	return out, nil
}
