package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// configFileBasenames lists the .config/aurelia-ls file this loader
// looks for, in precedence order (json before yaml, mirroring the
// teacher's design-tokens config search).
var configFileBasenames = []string{"aurelia-ls.json", "aurelia-ls.yaml", "aurelia-ls.yml"}

// ReadWorkspaceConfig reads .config/aurelia-ls.{json,yaml,yml} under
// rootPath. Returns a zero ServerConfig and ok=false if no such file
// exists — that is not an error (spec.md §7 "absence of optional
// configuration is not a failure").
func ReadWorkspaceConfig(rootPath string) (ServerConfig, bool, error) {
	if rootPath == "" {
		return ServerConfig{}, false, nil
	}

	for _, name := range configFileBasenames {
		path := filepath.Join(rootPath, ".config", name)
		data, err := os.ReadFile(path) //nolint:gosec // reading a workspace-local config file
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return ServerConfig{}, false, fmt.Errorf("config: reading %s: %w", path, err)
		}

		var cfg ServerConfig
		if filepath.Ext(name) == ".json" {
			if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
				return ServerConfig{}, false, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		} else {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return ServerConfig{}, false, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		}
		return cfg, true, nil
	}
	return ServerConfig{}, false, nil
}

// packageJSONField is the package.json key this engine reads its
// secondary, lower-precedence configuration from (parallel to the
// teacher's "designTokensLanguageServer" field).
const packageJSONField = "aureliaLanguageServer"

// ReadPackageJSONConfig reads the aureliaLanguageServer field from
// package.json under rootPath. Returns ok=false if package.json or the
// field doesn't exist.
func ReadPackageJSONConfig(rootPath string) (ServerConfig, bool, error) {
	if rootPath == "" {
		return ServerConfig{}, false, nil
	}

	path := filepath.Join(rootPath, "package.json")
	data, err := os.ReadFile(path) //nolint:gosec // reading a workspace-local package.json
	if os.IsNotExist(err) {
		return ServerConfig{}, false, nil
	}
	if err != nil {
		return ServerConfig{}, false, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return ServerConfig{}, false, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	raw, ok := pkg[packageJSONField]
	if !ok {
		return ServerConfig{}, false, nil
	}

	var cfg ServerConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return ServerConfig{}, false, fmt.Errorf("config: parsing package.json field %q: %w", packageJSONField, err)
	}
	return cfg, true, nil
}

// Load resolves a workspace's effective configuration: client-sent
// settings (clientConfig, already parsed by the caller from
// workspace/didChangeConfiguration) take precedence over
// .config/aurelia-ls.{json,yaml}, which takes precedence over
// package.json's aureliaLanguageServer field, exactly as the teacher's
// LoadPackageJsonConfig layers package.json under client settings.
func Load(rootPath string, clientConfig ServerConfig) (ServerConfig, error) {
	cfg := DefaultConfig()

	if pkgCfg, ok, err := ReadPackageJSONConfig(rootPath); err != nil {
		return ServerConfig{}, err
	} else if ok {
		cfg = Merge(cfg, pkgCfg)
	}

	if fileCfg, ok, err := ReadWorkspaceConfig(rootPath); err != nil {
		return ServerConfig{}, err
	} else if ok {
		cfg = Merge(cfg, fileCfg)
	}

	cfg = Merge(cfg, clientConfig)
	return cfg, nil
}
