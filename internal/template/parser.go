package template

import (
	"strings"
	"sync"

	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// Parser wraps a pooled tree-sitter HTML parser, grounded on the
// teacher's `internal/parser/html.Parser` (same sync.Pool-of-parsers
// shape, reset-on-acquire, closed-on-drain).
type Parser struct {
	ts *sitter.Parser
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

var parserPool = sync.Pool{
	New: func() any {
		p := sitter.NewParser()
		if err := p.SetLanguage(htmlLang); err != nil {
			panic("template: failed to set HTML language: " + err.Error())
		}
		return &Parser{ts: p}
	},
}

// AcquireParser gets a parser from the pool.
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.ts.Reset()
	return p
}

// ReleaseParser returns a parser to the pool.
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close releases the underlying tree-sitter parser's native resources.
func (p *Parser) Close() {
	if p.ts != nil {
		p.ts.Close()
	}
}

// Parse parses source into a Document, running the S5 meta extractor
// over the resulting tree. file is stamped onto every span.
func (p *Parser) Parse(source string, file span.FileId) *Document {
	src := []byte(source)
	tree := p.ts.Parse(src, nil)
	if tree == nil {
		return &Document{}
	}
	defer tree.Close()

	root := tree.RootNode()
	var roots []*Node
	for i := uint(0); i < root.ChildCount(); i++ {
		if n := convertNode(root.Child(i), src, file); n != nil {
			roots = append(roots, n)
		}
	}
	doc := &Document{Roots: roots}
	doc.Meta = extractMeta(doc)
	return doc
}

func sp(n *sitter.Node, file span.FileId) span.Span {
	return span.Span{Start: uint32(n.StartByte()), End: uint32(n.EndByte()), File: file}
}

// convertNode maps one tree-sitter node (as produced by the HTML
// grammar's `element` / `text` / `comment` kinds) into our DOM shape.
// Nodes the grammar emits that we don't model (doctype, erroneous end
// tags) are dropped.
func convertNode(n *sitter.Node, src []byte, file span.FileId) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case "text":
		text := string(src[n.StartByte():n.EndByte()])
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return &Node{Kind: KindText, Text: text, TextSpan: sp(n, file), Span: sp(n, file)}
	case "comment":
		return &Node{Kind: KindComment, Text: string(src[n.StartByte():n.EndByte()]), TextSpan: sp(n, file), Span: sp(n, file)}
	case "element":
		return convertElement(n, src, file)
	default:
		return nil
	}
}

func convertElement(n *sitter.Node, src []byte, file span.FileId) *Node {
	el := &Node{Kind: KindElement, Span: sp(n, file)}

	var startTag, endTag *sitter.Node
	var children []*sitter.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		switch c.Kind() {
		case "start_tag", "self_closing_tag":
			startTag = c
		case "end_tag":
			endTag = c
		default:
			children = append(children, c)
		}
	}

	if startTag != nil {
		el.TagSpan = sp(startTag, file)
		el.SelfClosing = startTag.Kind() == "self_closing_tag"
		for i := uint(0); i < startTag.ChildCount(); i++ {
			c := startTag.Child(i)
			switch c.Kind() {
			case "tag_name":
				el.TagName = string(src[c.StartByte():c.EndByte()])
			case "attribute":
				el.Attrs = append(el.Attrs, convertAttr(c, src, file))
			}
		}
	}
	if endTag != nil {
		el.CloseTagSpan = sp(endTag, file)
		if el.TagName == "" {
			for i := uint(0); i < endTag.ChildCount(); i++ {
				c := endTag.Child(i)
				if c.Kind() == "tag_name" {
					el.TagName = string(src[c.StartByte():c.EndByte()])
				}
			}
		}
	}

	for _, c := range children {
		if child := convertNode(c, src, file); child != nil {
			el.Children = append(el.Children, child)
		}
	}

	return el
}

func convertAttr(n *sitter.Node, src []byte, file span.FileId) Attr {
	a := Attr{}
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		switch c.Kind() {
		case "attribute_name":
			a.Name = string(src[c.StartByte():c.EndByte()])
			a.NameSpan = sp(c, file)
		case "quoted_attribute_value":
			a.Quoted = true
			a.HasValue = true
			inner := unquotedValueNode(c)
			if inner != nil {
				a.Value = string(src[inner.StartByte():inner.EndByte()])
				a.ValueSpan = sp(inner, file)
			} else {
				// empty quoted value, e.g. attr=""
				a.ValueSpan = sp(c, file)
			}
		case "attribute_value":
			a.HasValue = true
			a.Value = string(src[c.StartByte():c.EndByte()])
			a.ValueSpan = sp(c, file)
		}
	}
	return a
}

func unquotedValueNode(quoted *sitter.Node) *sitter.Node {
	for i := uint(0); i < quoted.ChildCount(); i++ {
		c := quoted.Child(i)
		if c.Kind() == "attribute_value" {
			return c
		}
	}
	return nil
}
