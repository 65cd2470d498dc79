package lsp

import (
	"encoding/json"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// CustomHandler wraps protocol.Handler to add the two
// aurelia/didChangeFacts and aurelia/didChangeTypeCheckerDiagnostics
// notifications spec.md §1/§4.7 need a transport for: the engine never
// parses script source or runs a type checker itself, so a host
// collaborator process reports resource facts and type-checker
// diagnostics over these custom methods. protocol.Handler (LSP 3.16)
// has no field for an arbitrary custom method, so — grounded on the
// teacher's own lsp/custom_handler.go workaround for LSP-3.17-only
// methods under glsp v0.2.2 — this wrapper intercepts them before
// falling through to the standard handler.
type CustomHandler struct {
	*protocol.Handler
	server *Server
}

// Handle implements glsp.Handler.
func (h *CustomHandler) Handle(context *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	switch context.Method {
	case "aurelia/didChangeFacts":
		var params types.DidChangeFactsParams
		if err := json.Unmarshal(context.Params, &params); err != nil {
			return nil, true, false, err
		}
		log.Debug("aurelia/didChangeFacts: %s (%d resources)", params.URI, len(params.Resources))
		h.server.IngestFacts(params.URI, params.ToResourceDefs())
		return nil, true, true, nil

	case "aurelia/didChangeTypeCheckerDiagnostics":
		var params types.DidChangeTypeCheckerDiagnosticsParams
		if err := json.Unmarshal(context.Params, &params); err != nil {
			return nil, true, false, err
		}
		log.Debug("aurelia/didChangeTypeCheckerDiagnostics: %s (%d diagnostics)", params.TemplateURI, len(params.Diagnostics))
		diags, aliases := params.ToWorkspaceDiagnostics()
		h.server.IngestTypeCheckerDiagnostics(params.TemplateURI, diags, aliases)
		return nil, true, true, nil
	}

	return h.Handler.Handle(context)
}
