// Package textDocument implements the textDocument/didOpen,
// textDocument/didChange, and textDocument/didClose notifications,
// keeping the document manager and the workspace's linked sessions in
// sync with the editor's view of each file.
package textDocument

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// DidOpen handles textDocument/didOpen.
func DidOpen(req *types.RequestContext, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Info("document opened: %s (language: %s, version: %d)", uri, params.TextDocument.LanguageID, int(params.TextDocument.Version))

	if err := req.Server.Documents().DidOpen(uri, params.TextDocument.LanguageID, int(params.TextDocument.Version), params.TextDocument.Text); err != nil {
		return err
	}

	relinkAndPublish(req, uri)
	return nil
}

// DidChange handles textDocument/didChange.
func DidChange(req *types.RequestContext, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)

	changes := make([]protocol.TextDocumentContentChangeEvent, 0, len(params.ContentChanges))
	for _, change := range params.ContentChanges {
		if c, ok := change.(protocol.TextDocumentContentChangeEvent); ok {
			changes = append(changes, c)
		}
	}

	if err := req.Server.Documents().DidChange(uri, version, changes); err != nil {
		return err
	}

	relinkAndPublish(req, uri)
	return nil
}

// DidClose handles textDocument/didClose.
func DidClose(req *types.RequestContext, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Info("document closed: %s", uri)

	req.Server.Workspace().Close(span.FileId(uri))
	return req.Server.Documents().DidClose(uri)
}

// relinkAndPublish relinks uri's current parse against the workspace's
// resource index (when it is a template document) and, for a push
// client, republishes its diagnostics (spec.md §5: "the linked form is
// recomputed whenever the source text changes").
func relinkAndPublish(req *types.RequestContext, uri string) {
	doc := req.Server.Documents().Get(uri)
	if doc == nil || doc.Parsed() == nil {
		return
	}

	req.Server.Workspace().Relink(span.FileId(uri), doc.Parsed())

	if glspCtx := req.Server.GLSPContext(); glspCtx != nil {
		if err := req.Server.PublishDiagnostics(glspCtx, uri); err != nil {
			req.AddWarning(err)
		}
	}
}
