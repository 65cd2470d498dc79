package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWorkspaceConfig(t *testing.T) {
	t.Run("returns not-ok for empty root path", func(t *testing.T) {
		cfg, ok, err := ReadWorkspaceConfig("")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, cfg)
	})

	t.Run("returns not-ok when no config file exists", func(t *testing.T) {
		tmpDir := t.TempDir()
		cfg, ok, err := ReadWorkspaceConfig(tmpDir)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, cfg)
	})

	t.Run("reads JSONC config with comments", func(t *testing.T) {
		tmpDir := t.TempDir()
		configDir := filepath.Join(tmpDir, ".config")
		require.NoError(t, os.MkdirAll(configDir, 0o755))

		content := `{
  // script files feeding the resource index
  "scriptGlobs": ["src/**/*.ts"],
  "globals": ["console"]
}`
		require.NoError(t, os.WriteFile(filepath.Join(configDir, "aurelia-ls.json"), []byte(content), 0o644))

		cfg, ok, err := ReadWorkspaceConfig(tmpDir)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []string{"src/**/*.ts"}, cfg.ScriptGlobs)
		assert.Equal(t, []string{"console"}, cfg.Globals)
	})

	t.Run("reads YAML config when JSON absent", func(t *testing.T) {
		tmpDir := t.TempDir()
		configDir := filepath.Join(tmpDir, ".config")
		require.NoError(t, os.MkdirAll(configDir, 0o755))

		content := "globals:\n  - window\n  - document\n"
		require.NoError(t, os.WriteFile(filepath.Join(configDir, "aurelia-ls.yaml"), []byte(content), 0o644))

		cfg, ok, err := ReadWorkspaceConfig(tmpDir)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []string{"window", "document"}, cfg.Globals)
	})

	t.Run("JSON takes precedence over YAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configDir := filepath.Join(tmpDir, ".config")
		require.NoError(t, os.MkdirAll(configDir, 0o755))

		require.NoError(t, os.WriteFile(filepath.Join(configDir, "aurelia-ls.json"), []byte(`{"globals":["fromJSON"]}`), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(configDir, "aurelia-ls.yaml"), []byte("globals:\n  - fromYAML\n"), 0o644))

		cfg, ok, err := ReadWorkspaceConfig(tmpDir)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []string{"fromJSON"}, cfg.Globals)
	})
}

func TestReadPackageJSONConfig(t *testing.T) {
	t.Run("returns not-ok when package.json absent", func(t *testing.T) {
		tmpDir := t.TempDir()
		cfg, ok, err := ReadPackageJSONConfig(tmpDir)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, cfg)
	})

	t.Run("returns not-ok when field absent", func(t *testing.T) {
		tmpDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "package.json"), []byte(`{"name":"app"}`), 0o644))

		cfg, ok, err := ReadPackageJSONConfig(tmpDir)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, cfg)
	})

	t.Run("reads aureliaLanguageServer field", func(t *testing.T) {
		tmpDir := t.TempDir()
		content := `{
  "name": "app",
  "aureliaLanguageServer": {
    "globals": ["console"],
    "scriptGlobs": ["src/**/*.ts"]
  }
}`
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "package.json"), []byte(content), 0o644))

		cfg, ok, err := ReadPackageJSONConfig(tmpDir)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []string{"console"}, cfg.Globals)
		assert.Equal(t, []string{"src/**/*.ts"}, cfg.ScriptGlobs)
	})
}

func TestLoadPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "package.json"), []byte(`{
		"aureliaLanguageServer": {"globals": ["fromPackageJSON"]}
	}`), 0o644))

	configDir := filepath.Join(tmpDir, ".config")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "aurelia-ls.json"), []byte(`{"globals":["fromConfigFile"]}`), 0o644))

	cfg, err := Load(tmpDir, ServerConfig{})
	require.NoError(t, err)
	assert.Equal(t, []string{"fromConfigFile"}, cfg.Globals, "config file should override package.json")

	cfg, err = Load(tmpDir, ServerConfig{Globals: []string{"fromClient"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"fromClient"}, cfg.Globals, "client settings should override everything")
}

func TestMerge(t *testing.T) {
	base := ServerConfig{Globals: []string{"a"}, ScriptGlobs: []string{"x"}}
	override := ServerConfig{Globals: []string{"b"}}

	merged := Merge(base, override)
	assert.Equal(t, []string{"b"}, merged.Globals)
	assert.Equal(t, []string{"x"}, merged.ScriptGlobs, "untouched field keeps base's value")
}

func TestGlobalSet(t *testing.T) {
	cfg := ServerConfig{Globals: []string{"console", "window"}}
	set := cfg.GlobalSet()
	assert.True(t, set["console"])
	assert.True(t, set["window"])
	assert.False(t, set["document"])

	assert.Nil(t, ServerConfig{}.GlobalSet())
}
