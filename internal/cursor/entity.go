// Package cursor implements the cursor-entity resolver (S10): given an
// offset into a linked template, it produces at most one CursorEntity
// from the closed variant set spec.md §4.6 names, plus a confidence and
// the isRenameable predicate rename/code-action tooling (S13) consults.
package cursor

import (
	"github.com/aurelia/aurelia-ls-sub004/internal/expr"
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/template"
)

// Kind is the closed set of cursor-entity variants spec.md §4.6 names.
type Kind string

const (
	KindTag               Kind = "ce-tag"
	KindCustomAttr        Kind = "ca-attr"
	KindTemplateCtrlAttr  Kind = "tc-attr"
	KindBindable          Kind = "bindable"
	KindCommand           Kind = "command"
	KindPlainAttrBinding  Kind = "plain-attr-binding"
	KindValueConverter    Kind = "value-converter"
	KindBindingBehavior   Kind = "binding-behavior"
	KindScopeIdentifier   Kind = "scope-identifier"
	KindMemberAccess      Kind = "member-access"
	KindLocalTemplateName Kind = "local-template-name"
	KindAsElement         Kind = "as-element"
)

// Confidence grades how unambiguous the resolution was.
type Confidence string

const (
	ConfidenceExact Confidence = "exact"
	ConfidenceHigh  Confidence = "high"
)

// priority is the fixed tie-break order spec.md §4.6 names for
// candidates tied on innermost-span-wins: command > bindable >
// attribute-name > tag-name > expression-member > scope-identifier.
var priority = map[Kind]int{
	KindCommand:           6,
	KindBindable:          5,
	KindCustomAttr:        4,
	KindTemplateCtrlAttr:  4,
	KindPlainAttrBinding:  4,
	KindAsElement:         4,
	KindTag:               3,
	KindValueConverter:    2,
	KindBindingBehavior:   2,
	KindMemberAccess:      2,
	KindLocalTemplateName: 2,
	KindScopeIdentifier:   1,
}

// Entity is one resolved CursorEntity. Only the fields relevant to Kind
// are populated; callers switch on Kind before reading the rest.
type Entity struct {
	Kind     Kind
	Span     span.Span
	Name     string
	Node     *template.Node
	Attr     *template.Attr
	Resource *resources.ResourceDef
	Bindable *resources.BindableDef
	ExprNode expr.Node
	FrameId  int
}

// contextualNames are the framework-injected repeat properties; they
// read like identifiers but are never renameable (spec.md §4.6
// "isRenameable").
var contextualNames = map[string]bool{
	"$index": true, "$first": true, "$last": true, "$even": true,
	"$odd": true, "$length": true, "$this": true, "$parent": true,
	"$event": true,
}

// IsRenameable implements spec.md §4.6's isRenameable: a pure function
// of the resolved entity, not of the spelled name alone, since the same
// name can resolve to a renameable or a blocked entity depending on
// Kind (e.g. a custom element named "repeat" is renameable; the
// `repeat` template-controller attribute is not).
func IsRenameable(e Entity) bool {
	if contextualNames[e.Name] {
		return false
	}
	switch e.Kind {
	case KindTemplateCtrlAttr:
		return false
	case KindTag:
		return e.Resource != nil
	case KindAsElement:
		return e.Resource != nil
	case KindCustomAttr:
		return e.Resource != nil
	case KindBindable:
		return e.Bindable != nil
	case KindValueConverter, KindBindingBehavior:
		return e.Resource != nil
	case KindScopeIdentifier, KindMemberAccess:
		return true
	default:
		return false
	}
}
