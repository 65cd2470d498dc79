package template

import "github.com/aurelia/aurelia-ls-sub004/internal/span"

// ImportAlias is one `as="name"` alias attached to an <import> element.
type ImportAlias struct {
	As       string
	AsSpan   span.Span
	NameSpan span.Span
}

// Import is one parsed <import from="…" as="…"> declaration.
type Import struct {
	TagSpan      span.Span
	From         string
	FromSpan     span.Span
	FromNameSpan span.Span
	DefaultAlias string
	AliasSpan    span.Span
	Aliases      []ImportAlias
}

// Bindable is one parsed <bindable name="…" mode="…" attribute="…">.
type Bindable struct {
	TagSpan       span.Span
	Name          string
	NameSpan      span.Span
	Mode          string
	ModeSpan      span.Span
	Attribute     string
	AttributeSpan span.Span
}

// LetElement records a <let> element's position; its child attributes
// are turned into letBinding instructions by the linker (S6), not here.
type LetElement struct {
	TagSpan span.Span
	Node    *Node
}

// LocalTemplate is a local `<template as-custom-element="name">`
// declaration.
type LocalTemplate struct {
	TagSpan         span.Span
	Name            string
	DeclSpan        span.Span // the `as-custom-element` attribute value span
	DeclAttrSpan    span.Span // the attribute name span
	Node            *Node
}

// MetaIR is the S5 meta-element extraction result.
type MetaIR struct {
	Imports        []Import
	Bindables      []Bindable
	Lets           []LetElement
	LocalTemplates []LocalTemplate
}

// extractMeta walks the document and collects the light meta-element
// grammar spec.md §4.4 names: <import>, <bindable>, <let>, and local
// `<template as-custom-element>`.
func extractMeta(doc *Document) MetaIR {
	var meta MetaIR
	for _, root := range doc.Roots {
		Walk(root, func(n *Node) {
			if n.Kind != KindElement {
				return
			}
			switch n.TagName {
			case "import":
				meta.Imports = append(meta.Imports, extractImport(n))
			case "bindable":
				meta.Bindables = append(meta.Bindables, extractBindable(n))
			case "let":
				meta.Lets = append(meta.Lets, LetElement{TagSpan: n.TagSpan, Node: n})
			case "template":
				if a := n.FindAttr("as-custom-element"); a != nil {
					meta.LocalTemplates = append(meta.LocalTemplates, LocalTemplate{
						TagSpan:      n.TagSpan,
						Name:         a.Value,
						DeclSpan:     a.ValueSpan,
						DeclAttrSpan: a.NameSpan,
						Node:         n,
					})
				}
			}
		})
	}
	return meta
}

func extractImport(n *Node) Import {
	imp := Import{TagSpan: n.TagSpan}
	if from := n.FindAttr("from"); from != nil {
		imp.From = from.Value
		imp.FromSpan = from.ValueSpan
		imp.FromNameSpan = from.NameSpan
	}
	if as := n.FindAttr("as"); as != nil {
		imp.DefaultAlias = as.Value
		imp.AliasSpan = as.ValueSpan
		imp.Aliases = append(imp.Aliases, ImportAlias{
			As:       as.Value,
			AsSpan:   as.NameSpan,
			NameSpan: as.ValueSpan,
		})
	}
	return imp
}

func extractBindable(n *Node) Bindable {
	b := Bindable{TagSpan: n.TagSpan}
	if name := n.FindAttr("name"); name != nil {
		b.Name = name.Value
		b.NameSpan = name.ValueSpan
	}
	if mode := n.FindAttr("mode"); mode != nil {
		b.Mode = mode.Value
		b.ModeSpan = mode.ValueSpan
	}
	if attr := n.FindAttr("attribute"); attr != nil {
		b.Attribute = attr.Value
		b.AttributeSpan = attr.ValueSpan
	}
	return b
}
