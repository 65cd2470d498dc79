// Package lifecycle implements the LSP lifecycle methods: initialize,
// initialized, shutdown, and $/setTrace.
package lifecycle

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/internal/semtok"
	"github.com/aurelia/aurelia-ls-sub004/internal/uriutil"
	"github.com/aurelia/aurelia-ls-sub004/internal/version"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// semanticTokensLegend mirrors internal/semtok.Legend so the
// advertised token-type indices can never drift from the collector's.
func semanticTokensLegend() protocol.SemanticTokensLegend {
	tokenTypes := make([]string, len(semtok.Legend))
	for i, t := range semtok.Legend {
		tokenTypes[i] = string(t)
	}
	return protocol.SemanticTokensLegend{TokenTypes: tokenTypes, TokenModifiers: []string{}}
}

// Initialize handles the LSP initialize request.
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	log.Info("initializing for client: %s", clientName)

	if params.RootURI != nil {
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
	} else if params.RootPath != nil {
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
	}

	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &syncKind,
		},
		HoverProvider:      true,
		DefinitionProvider: true,
		ReferencesProvider: true,
		CodeActionProvider: protocol.CodeActionOptions{
			ResolveProvider: boolPtr(false),
		},
		RenameProvider: true,
		SemanticTokensProvider: protocol.SemanticTokensOptions{
			Legend: semanticTokensLegend(),
			Full:   boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    "aurelia-language-server",
			Version: strPtr(version.GetVersion()),
		},
	}, nil
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
