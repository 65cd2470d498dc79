package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSimpleElementAndAttrs(t *testing.T) {
	p := AcquireParser()
	defer ReleaseParser(p)

	doc := p.Parse(`<div class="foo" click.trigger="onClick()">Hi</div>`, "t.html")
	assert.Len(t, doc.Roots, 1)

	el := doc.Roots[0]
	assert.Equal(t, KindElement, el.Kind)
	assert.Equal(t, "div", el.TagName)
	assert.False(t, el.SelfClosing)

	class := el.FindAttr("class")
	assert.NotNil(t, class)
	assert.Equal(t, "foo", class.Value)

	click := el.FindAttr("click.trigger")
	assert.NotNil(t, click)
	assert.Equal(t, "onClick()", click.Value)

	assert.Len(t, el.Children, 1)
	assert.Equal(t, KindText, el.Children[0].Kind)
	assert.Equal(t, "Hi", el.Children[0].Text)
}

func TestParseSelfClosingElement(t *testing.T) {
	p := AcquireParser()
	defer ReleaseParser(p)

	doc := p.Parse(`<input value.bind="name"/>`, "t.html")
	assert.Len(t, doc.Roots, 1)
	assert.True(t, doc.Roots[0].SelfClosing)
	assert.Equal(t, "input", doc.Roots[0].TagName)
}

func TestExtractImportMeta(t *testing.T) {
	p := AcquireParser()
	defer ReleaseParser(p)

	doc := p.Parse(`<import from="./my-element" as="mine"></import>`, "t.html")
	assert.Len(t, doc.Meta.Imports, 1)
	imp := doc.Meta.Imports[0]
	assert.Equal(t, "./my-element", imp.From)
	assert.Equal(t, "mine", imp.DefaultAlias)
}

func TestExtractBindableMeta(t *testing.T) {
	p := AcquireParser()
	defer ReleaseParser(p)

	doc := p.Parse(`<bindable name="value" mode="twoWay" attribute="data-value"></bindable>`, "t.html")
	assert.Len(t, doc.Meta.Bindables, 1)
	b := doc.Meta.Bindables[0]
	assert.Equal(t, "value", b.Name)
	assert.Equal(t, "twoWay", b.Mode)
	assert.Equal(t, "data-value", b.Attribute)
}

func TestExtractLocalTemplateAsCustomElement(t *testing.T) {
	p := AcquireParser()
	defer ReleaseParser(p)

	doc := p.Parse(`<template as-custom-element="my-card"><div>hi</div></template>`, "t.html")
	assert.Len(t, doc.Meta.LocalTemplates, 1)
	assert.Equal(t, "my-card", doc.Meta.LocalTemplates[0].Name)
}

func TestSpanRoundTrip(t *testing.T) {
	source := `<div>Hello</div>`
	p := AcquireParser()
	defer ReleaseParser(p)

	doc := p.Parse(source, "t.html")
	el := doc.Roots[0]
	assert.Equal(t, source, el.Span.Text(source))

	var text *Node
	Walk(el, func(n *Node) {
		if n.Kind == KindText {
			text = n
		}
	})
	assert.NotNil(t, text)
	assert.Equal(t, "Hello", text.TextSpan.Text(source))
}
