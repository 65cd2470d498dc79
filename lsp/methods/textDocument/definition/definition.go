// Package definition implements textDocument/definition: given a
// resolved cursor entity (S10), it reports where that entity was
// declared. A repeat/for-of loop variable's declaration lives in the
// same template, so that case reuses S13's declaration-finding logic
// directly; a custom element/attribute/bindable/value-converter/
// binding-behavior's declaration lives in host script source this
// engine never parses (spec.md §1), so those report the resource's
// declaring file when known and nothing more precise.
package definition

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/cursor"
	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/workspace"
	"github.com/aurelia/aurelia-ls-sub004/lsp/helpers"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// Definition handles the textDocument/definition request. Returns
// any, not []protocol.Location, matching glsp's TextDocumentDefinition
// field type (the LSP result is a union of Location, Location[], and
// LocationLink[], grounded on the teacher's own definition.go
// signature).
func Definition(req *types.RequestContext, params *protocol.DefinitionParams) (any, error) {
	uri := params.TextDocument.URI
	log.Debug("definition requested: %s at %d:%d", uri, params.Position.Line, params.Position.Character)

	doc := req.Server.Documents().Get(uri)
	if doc == nil || doc.Parsed() == nil {
		return nil, nil
	}

	sess := req.Server.Workspace().Get(span.FileId(uri))
	if sess == nil {
		return nil, nil
	}

	offset := helpers.OffsetFromPosition(doc.Content(), params.Position)

	if declSpan, ok := workspace.DeclarationSpan(sess.Resolver, offset); ok {
		return []protocol.Location{{URI: uri, Range: helpers.SpanToRange(doc.Content(), declSpan)}}, nil
	}

	entity, _, ok := sess.Resolver.Resolve(offset)
	if !ok {
		return nil, nil
	}
	if loc, ok := resourceLocation(entity); ok {
		return []protocol.Location{loc}, nil
	}
	return nil, nil
}

// resourceLocation reports the location of e's backing resource
// declaration when one is known. Script-sourced resources arrive over
// aurelia/didChangeFacts with no column-level location (spec.md §1),
// so the best this engine can do is point at the top of the declaring
// file; builtins report ok=false since they have no declaring file at
// all (internal/resources.Builtins).
func resourceLocation(e cursor.Entity) (protocol.Location, bool) {
	var def *resources.ResourceDef
	var bindable *resources.BindableDef

	switch e.Kind {
	case cursor.KindTag, cursor.KindAsElement, cursor.KindCustomAttr, cursor.KindTemplateCtrlAttr,
		cursor.KindValueConverter, cursor.KindBindingBehavior:
		def = e.Resource
	case cursor.KindBindable:
		bindable = e.Bindable
	}

	if bindable != nil && bindable.Location != nil {
		return protocol.Location{URI: string(bindable.Location.File)}, true
	}
	if def == nil || def.File == "" {
		return protocol.Location{}, false
	}
	return protocol.Location{URI: string(def.File)}, true
}
