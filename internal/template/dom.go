// Package template implements the template parser (S4) and meta-element
// extractor (S5): an HTML DOM with byte-accurate element/attribute spans,
// built over tree-sitter's HTML grammar, plus the light meta-element
// grammar for `<import>`, `<bindable>`, `<let>`, and local
// `<template as-custom-element>` declarations (spec.md §4.4).
package template

import "github.com/aurelia/aurelia-ls-sub004/internal/span"

// NodeKind is the closed set of DOM node variants S4 produces.
type NodeKind int

const (
	KindElement NodeKind = iota
	KindText
	KindComment
)

// Attr is one attribute of an Element, with separate spans for its name
// and its value (when present — a boolean attribute has no ValueSpan).
type Attr struct {
	Name      string
	NameSpan  span.Span
	Value     string
	HasValue  bool
	ValueSpan span.Span
	Quoted    bool
}

// Node is one DOM node: an Element, a Text run, or a Comment.
type Node struct {
	Kind NodeKind

	// Element fields.
	TagName      string
	TagSpan      span.Span // the whole opening tag, `<name ...>` or `<name .../>`
	CloseTagSpan span.Span // the whole closing tag, `</name>`; zero if self-closing/void
	SelfClosing  bool
	Attrs        []Attr
	Children     []*Node

	// Text/Comment fields.
	Text     string
	TextSpan span.Span

	Span span.Span // the node's full extent, open tag through close tag (or self-contained)
}

// Document is the parsed root: the top-level node list plus the S5 meta
// extraction over it.
type Document struct {
	Roots []*Node
	Meta  MetaIR
}

// FindAttr returns the attribute named name on el, or nil.
func (n *Node) FindAttr(name string) *Attr {
	if n == nil {
		return nil
	}
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			return &n.Attrs[i]
		}
	}
	return nil
}

// Walk calls fn for n and every descendant, depth-first pre-order.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		Walk(c, fn)
	}
}
