// Package hover implements textDocument/hover: cursor-entity
// resolution (S10) rendered as markdown, following the shape of the
// teacher's own hover package (content templates keyed by what was
// found under the cursor) generalized to this engine's entity kinds.
package hover

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/cursor"
	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/internal/query"
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/lsp/helpers"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// Hover handles the textDocument/hover request.
func Hover(req *types.RequestContext, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := params.TextDocument.URI
	log.Debug("hover requested: %s at %d:%d", uri, params.Position.Line, params.Position.Character)

	doc := req.Server.Documents().Get(uri)
	if doc == nil || doc.Parsed() == nil {
		return nil, nil
	}

	sess := req.Server.Workspace().Get(span.FileId(uri))
	if sess == nil {
		return nil, nil
	}

	offset := helpers.OffsetFromPosition(doc.Content(), params.Position)
	entity, confidence, ok := sess.Resolver.Resolve(offset)
	if !ok {
		return nil, nil
	}

	content := renderEntity(entity, confidence, sess.Facade)
	if content == "" {
		return nil, nil
	}

	rng := helpers.SpanToRange(doc.Content(), entity.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: content},
		Range:    &rng,
	}, nil
}

func renderEntity(e cursor.Entity, confidence cursor.Confidence, facade *query.Facade) string {
	var b strings.Builder

	switch e.Kind {
	case cursor.KindTag:
		if e.Resource != nil {
			fmt.Fprintf(&b, "**`<%s>`** — custom element\n", e.Name)
			renderBindables(&b, query.BindablesFor(e.Resource))
		} else {
			fmt.Fprintf(&b, "`<%s>` — native element\n", e.Name)
		}
	case cursor.KindAsElement:
		fmt.Fprintf(&b, "**`%s`** — as-element override\n", e.Name)
	case cursor.KindTemplateCtrlAttr:
		fmt.Fprintf(&b, "**`%s`** — template controller\n", e.Name)
	case cursor.KindCustomAttr:
		fmt.Fprintf(&b, "**`%s`** — custom attribute\n", e.Name)
		if e.Resource != nil {
			renderBindables(&b, query.BindablesFor(e.Resource))
		}
	case cursor.KindBindable:
		fmt.Fprintf(&b, "**`%s`**", e.Name)
		if e.Bindable != nil {
			fmt.Fprintf(&b, " — bindable property (mode: `%s`)", modeOrDefault(string(e.Bindable.Mode)))
		}
		b.WriteString("\n")
	case cursor.KindCommand:
		fmt.Fprintf(&b, "**`.%s`** — binding command\n", e.Name)
	case cursor.KindPlainAttrBinding:
		fmt.Fprintf(&b, "`%s` — plain attribute binding\n", e.Name)
	case cursor.KindValueConverter:
		fmt.Fprintf(&b, "**`%s`** — value converter\n", e.Name)
	case cursor.KindBindingBehavior:
		fmt.Fprintf(&b, "**`%s`** — binding behavior\n", e.Name)
	case cursor.KindLocalTemplateName:
		fmt.Fprintf(&b, "**`%s`** — local template\n", e.Name)
	case cursor.KindScopeIdentifier:
		fmt.Fprintf(&b, "`%s` — scope identifier (`%s`)\n", e.Name, query.ExpectedTypeOf(e))
	case cursor.KindMemberAccess:
		fmt.Fprintf(&b, "`%s` — member access\n", e.Name)
	default:
		return ""
	}

	if confidence == cursor.ConfidenceHigh {
		b.WriteString("\n*(ambiguous at this position)*")
	}
	return b.String()
}

func renderBindables(b *strings.Builder, bindables []*resources.BindableDef) {
	if len(bindables) == 0 {
		return
	}
	b.WriteString("\nBindables:\n")
	for _, bd := range bindables {
		fmt.Fprintf(b, "- `%s` (`%s`)\n", bd.Property, bd.Attribute)
	}
}

func modeOrDefault(mode string) string {
	if mode == "" {
		return "to-view"
	}
	return mode
}
