package workspace

import (
	"encoding/json"
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/config"
	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// settingsKeys are the keys the client may nest our settings under,
// matching the teacher's own dual-key lookup for configuration
// sections in both cases the editor might send them.
var settingsKeys = []string{"aureliaLanguageServer", "aurelia-language-server"}

// DidChangeConfiguration handles workspace/didChangeConfiguration.
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Info("configuration changed")

	cfg, err := parseConfiguration(params.Settings)
	if err != nil {
		log.Warn("failed to parse configuration: %v", err)
		return nil
	}

	req.Server.SetConfig(config.Merge(config.DefaultConfig(), cfg))

	if req.GLSP != nil {
		for _, doc := range req.Server.Documents().GetAll() {
			if err := req.Server.PublishDiagnostics(req.GLSP, doc.URI()); err != nil {
				req.AddWarning(fmt.Errorf("republish diagnostics for %s: %w", doc.URI(), err))
			}
		}
	}

	return nil
}

func parseConfiguration(settings any) (config.ServerConfig, error) {
	cfg := config.DefaultConfig()
	if settings == nil {
		return cfg, nil
	}

	settingsMap, ok := settings.(map[string]any)
	if !ok {
		return cfg, fmt.Errorf("settings is not a map")
	}

	var ours any
	for _, key := range settingsKeys {
		if val, exists := settingsMap[key]; exists {
			ours = val
			break
		}
	}
	if ours == nil {
		return cfg, nil
	}

	raw, err := json.Marshal(ours)
	if err != nil {
		return cfg, fmt.Errorf("marshal settings: %w", err)
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal settings: %w", err)
	}
	return cfg, nil
}
