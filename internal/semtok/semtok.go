// Package semtok implements the semantic-token collector (S12): it
// walks a linked template for every Aurelia-specific construct worth
// highlighting beyond what a plain HTML grammar already colors —
// custom element/attribute names, bindable targets, binding commands,
// value-converter/binding-behavior names, scope identifiers, and
// member accesses — and encodes them in the LSP delta-friendly token
// format (grounded on the teacher's
// lsp/methods/textDocument/semanticTokens package).
package semtok

import (
	"sort"

	"github.com/aurelia/aurelia-ls-sub004/internal/expr"
	"github.com/aurelia/aurelia-ls-sub004/internal/linker"
	"github.com/aurelia/aurelia-ls-sub004/internal/patterns"
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/template"
)

// TokenType is the closed set of semantic token types this collector
// emits, drawn from the standard LSP semantic-token-type legend.
type TokenType string

const (
	TypeClass    TokenType = "class"
	TypeKeyword  TokenType = "keyword"
	TypeProperty TokenType = "property"
	TypeModifier TokenType = "modifier"
	TypeFunction TokenType = "function"
	TypeVariable TokenType = "variable"
	TypeType     TokenType = "type"
)

// Legend is the token-type legend the host registers once at
// initialize time; a TokenType's position here is the integer index
// the encoded token stream refers to it by.
var Legend = []TokenType{TypeClass, TypeKeyword, TypeProperty, TypeModifier, TypeFunction, TypeVariable, TypeType}

var legendIndex = buildLegendIndex()

func buildLegendIndex() map[TokenType]int {
	m := make(map[TokenType]int, len(Legend))
	for i, t := range Legend {
		m[t] = i
	}
	return m
}

// Token is one emitted semantic token: a span and its classification.
type Token struct {
	Span span.Span
	Type TokenType
}

// Collect walks the whole linked template and produces every semantic
// token it contains, sorted by byte offset (LSP requires tokens in
// document order for delta encoding to work).
func Collect(resourcesIdx *resources.Index, registry *patterns.Registry, doc *template.Document, linked *linker.LinkedTemplate) []Token {
	var tokens []Token
	for _, root := range linked.Roots {
		collectRow(root, resourcesIdx, registry, &tokens)
	}
	if doc != nil {
		collectMeta(doc, &tokens)
	}
	for _, entry := range linked.ExprTable {
		if entry.Node == nil {
			continue
		}
		collectExpr(entry.Node, resourcesIdx, &tokens)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Span.Start < tokens[j].Span.Start })
	return tokens
}

func collectRow(row *linker.ElementRow, resourcesIdx *resources.Index, registry *patterns.Registry, out *[]Token) {
	n := row.Node
	if sp, ok := tagNameSpan(n); ok {
		if resourcesIdx.LookupElement(n.TagName) != nil {
			*out = append(*out, Token{Span: sp, Type: TypeClass})
		}
	}
	for i := range n.Attrs {
		collectAttr(row, &n.Attrs[i], resourcesIdx, registry, out)
	}
	for _, c := range row.Children {
		collectRow(c, resourcesIdx, registry, out)
	}
}

func tagNameSpan(n *template.Node) (span.Span, bool) {
	if n == nil || n.Kind != template.KindElement {
		return span.Span{}, false
	}
	start := n.TagSpan.Start + 1
	return span.Span{Start: start, End: start + uint32(len(n.TagName)), File: n.TagSpan.File}, true
}

func collectAttr(row *linker.ElementRow, a *template.Attr, resourcesIdx *resources.Index, registry *patterns.Registry, out *[]Token) {
	if a.Name == "as-element" && a.HasValue {
		if resourcesIdx.LookupElement(a.Value) != nil {
			*out = append(*out, Token{Span: a.ValueSpan, Type: TypeClass})
		}
		return
	}

	result, matched := registry.Analyze(a.Name)
	if !matched {
		return
	}
	instr := findInstrForAttr(row, a)

	if result.CommandSpan != nil {
		*out = append(*out, Token{Span: rebase(a.NameSpan, *result.CommandSpan), Type: TypeModifier})
	}

	targetSpan := a.NameSpan
	if result.TargetSpan != nil {
		targetSpan = rebase(a.NameSpan, *result.TargetSpan)
	}
	switch {
	case instr != nil && instr.Kind == linker.KindHydrateTemplateController:
		*out = append(*out, Token{Span: targetSpan, Type: TypeKeyword})
	case instr != nil && instr.Kind == linker.KindHydrateAttribute:
		*out = append(*out, Token{Span: targetSpan, Type: TypeKeyword})
	case instr != nil && instr.Bindable != nil:
		*out = append(*out, Token{Span: targetSpan, Type: TypeProperty})
	}
}

func rebase(nameSpan span.Span, rel [2]int) span.Span {
	return span.Span{Start: nameSpan.Start + uint32(rel[0]), End: nameSpan.Start + uint32(rel[1]), File: nameSpan.File}
}

func findInstrForAttr(row *linker.ElementRow, a *template.Attr) *linker.Instruction {
	for i := range row.Instructions {
		if row.Instructions[i].Attr == a {
			return &row.Instructions[i]
		}
	}
	return nil
}

func collectMeta(doc *template.Document, out *[]Token) {
	for _, lt := range doc.Meta.LocalTemplates {
		*out = append(*out, Token{Span: lt.DeclSpan, Type: TypeType})
	}
}

func collectExpr(n expr.Node, resourcesIdx *resources.Index, out *[]Token) {
	expr.Walk(n, func(cur expr.Node) {
		switch v := cur.(type) {
		case *expr.ValueConverter:
			if resourcesIdx.LookupValueConverter(v.Name) != nil {
				*out = append(*out, Token{Span: v.NameSpan, Type: TypeFunction})
			}
		case *expr.BindingBehavior:
			if resourcesIdx.LookupBindingBehavior(v.Name) != nil {
				*out = append(*out, Token{Span: v.NameSpan, Type: TypeFunction})
			}
		case *expr.AccessMember:
			*out = append(*out, Token{Span: v.NameSpan, Type: TypeProperty})
		case *expr.CallMember:
			*out = append(*out, Token{Span: v.NameSpan, Type: TypeProperty})
		case *expr.AccessScope:
			*out = append(*out, Token{Span: v.NameSpan, Type: TypeVariable})
		case *expr.CallScope:
			*out = append(*out, Token{Span: v.NameSpan, Type: TypeVariable})
		}
	})
}
