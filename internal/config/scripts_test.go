package config

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandScriptGlobs(t *testing.T) {
	tmpDir := t.TempDir()
	srcDir := filepath.Join(tmpDir, "src", "components")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "foo.ts"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "bar.ts"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "src", "root.ts"), []byte(""), 0o644))

	cfg := ServerConfig{ScriptGlobs: []string{"src/**/*.ts"}}
	matches, err := ExpandScriptGlobs(cfg, tmpDir)
	require.NoError(t, err)

	var names []string
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	sort.Strings(names)
	assert.Equal(t, []string{"bar.ts", "foo.ts", "root.ts"}, names)
}

func TestExpandScriptGlobsNoMatches(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := ServerConfig{ScriptGlobs: []string{"nonexistent/**/*.ts"}}
	matches, err := ExpandScriptGlobs(cfg, tmpDir)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
