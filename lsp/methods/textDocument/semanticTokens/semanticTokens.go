// Package semantictokens implements textDocument/semanticTokens/full
// over S12's collector: walk the linked template for Aurelia-specific
// constructs, convert to line/UTF-16-column form, and delta-encode per
// the LSP wire format. No previousResultId/delta request is wired
// (textDocument/semanticTokens/full/delta is not registered in
// initialize.go's capabilities) — this engine always returns a fresh
// full token set, matching the teacher's own choice not to advertise
// delta support (see DESIGN.md).
package semantictokens

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/internal/semtok"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// SemanticTokensFull handles the textDocument/semanticTokens/full
// request.
func SemanticTokensFull(req *types.RequestContext, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	uri := params.TextDocument.URI
	log.Debug("semanticTokens/full requested: %s", uri)

	doc := req.Server.Documents().Get(uri)
	if doc == nil || doc.Parsed() == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}
	sess := req.Server.Workspace().Get(span.FileId(uri))
	if sess == nil {
		return &protocol.SemanticTokens{Data: []uint32{}}, nil
	}

	tokens := semtok.Collect(req.Server.Workspace().Resources, req.Server.Workspace().Registry, doc.Parsed(), sess.Linked)
	intermediates := semtok.ToIntermediates(tokens, doc.Content())
	data, err := semtok.Encode(intermediates)
	if err != nil {
		return nil, err
	}
	return &protocol.SemanticTokens{Data: data}, nil
}
