// Package rename implements textDocument/rename over S13's rename
// engine (internal/workspace.Rename): resolve the cursor entity,
// reject anything cursor.IsRenameable forbids, and translate the
// resulting []workspace.TextEdit into a protocol.WorkspaceEdit. No
// example in the reference corpus wires glsp's rename types (the
// teacher doesn't implement textDocument/rename at all), so the
// protocol.RenameParams/WorkspaceEdit usage here follows the published
// glsp/LSP-3.16 shape rather than an in-pack precedent (see DESIGN.md).
package rename

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/workspace"
	"github.com/aurelia/aurelia-ls-sub004/lsp/helpers"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// Rename handles the textDocument/rename request.
func Rename(req *types.RequestContext, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	uri := params.TextDocument.URI
	log.Debug("rename requested: %s at %d:%d -> %q", uri, params.Position.Line, params.Position.Character, params.NewName)

	doc := req.Server.Documents().Get(uri)
	if doc == nil || doc.Parsed() == nil {
		return nil, fmt.Errorf("rename: no tracked document for %s", uri)
	}
	sess := req.Server.Workspace().Get(span.FileId(uri))
	if sess == nil {
		return nil, fmt.Errorf("rename: no session for %s", uri)
	}

	offset := helpers.OffsetFromPosition(doc.Content(), params.Position)
	edits, err := workspace.Rename(sess.Resolver, offset, params.NewName)
	if err != nil {
		return nil, fmt.Errorf("rename: %w", err)
	}

	out := make([]protocol.TextEdit, 0, len(edits))
	for _, e := range edits {
		out = append(out, protocol.TextEdit{Range: helpers.SpanToRange(doc.Content(), e.Span), NewText: e.NewText})
	}
	return &protocol.WorkspaceEdit{Changes: map[string][]protocol.TextEdit{uri: out}}, nil
}
