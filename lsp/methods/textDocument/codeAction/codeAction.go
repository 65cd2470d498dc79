// Package codeAction implements textDocument/codeAction: quick fixes
// for this engine's own compiler diagnostics. Presently the only
// diagnostic S14's compiler channel ever reports is "unknown-bindable"
// (internal/workspace.UnknownBindableDiagnostic), so the only action is
// removing the offending attribute — grounded on the teacher's own
// codeAction package shape (intersect the requested range against a
// list of in-range issues, build a WorkspaceEdit per fix) generalized
// from CSS token diagnostics to this engine's binding diagnostics.
package codeAction

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/linker"
	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/template"
	"github.com/aurelia/aurelia-ls-sub004/internal/workspace"
	"github.com/aurelia/aurelia-ls-sub004/lsp/helpers"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

const unknownBindablePrefix = "unknown-bindable:"

// CodeAction handles the textDocument/codeAction request. Returns any,
// not []protocol.CodeAction, matching glsp's TextDocumentCodeAction
// field type (the LSP result is a union of CodeAction and Command,
// grounded on the teacher's own codeAction.go signature).
func CodeAction(req *types.RequestContext, params *protocol.CodeActionParams) (any, error) {
	uri := params.TextDocument.URI
	log.Debug("codeAction requested: %s %v", uri, params.Range)

	doc := req.Server.Documents().Get(uri)
	if doc == nil || doc.Parsed() == nil {
		return nil, nil
	}
	sess := req.Server.Workspace().Get(span.FileId(uri))
	if sess == nil {
		return nil, nil
	}

	diags := workspace.DiagnosticsForDocument(span.FileId(uri), req.Server.Workspace().Resources, sess.Linked)

	var actions []protocol.CodeAction
	for _, d := range diags {
		if !strings.HasPrefix(d.Message, unknownBindablePrefix) {
			continue
		}
		dRange := helpers.SpanToRange(doc.Content(), d.Span)
		if !helpers.RangesIntersect(dRange, params.Range) {
			continue
		}
		if action, ok := removeUnknownBindableAction(sess.Linked.Roots, doc.Content(), uri, d); ok {
			actions = append(actions, action)
		}
	}
	return actions, nil
}

// removeUnknownBindableAction builds a quick fix that deletes the
// attribute d was raised against, name and value alike.
func removeUnknownBindableAction(rows []*linker.ElementRow, content, uri string, d workspace.Diagnostic) (protocol.CodeAction, bool) {
	attr := findAttrByNameSpan(rows, d.Span)
	if attr == nil {
		return protocol.CodeAction{}, false
	}

	removeSpan := attr.NameSpan
	if attr.HasValue {
		removeSpan = span.Span{Start: attr.NameSpan.Start, End: attr.ValueSpan.End, File: attr.NameSpan.File}
	}

	kind := protocol.CodeActionKindQuickFix
	return protocol.CodeAction{
		Title: fmt.Sprintf("Remove unknown binding %q", attr.Name),
		Kind:  &kind,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[string][]protocol.TextEdit{
				uri: {{Range: helpers.SpanToRange(content, removeSpan), NewText: ""}},
			},
		},
	}, true
}

func findAttrByNameSpan(rows []*linker.ElementRow, sp span.Span) *template.Attr {
	for _, row := range rows {
		for i := range row.Node.Attrs {
			if row.Node.Attrs[i].NameSpan == sp {
				return &row.Node.Attrs[i]
			}
		}
		if found := findAttrByNameSpan(row.Children, sp); found != nil {
			return found
		}
	}
	return nil
}
