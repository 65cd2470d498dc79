package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDocumentParsesTemplateLanguage(t *testing.T) {
	doc := NewDocument("file:///a.html", "html", 1, `<div textcontent.bind="name"></div>`)
	assert.Equal(t, "file:///a.html", doc.URI())
	assert.Equal(t, "html", doc.LanguageID())
	assert.Equal(t, 1, doc.Version())
	if assert.NotNil(t, doc.Parsed()) {
		assert.Len(t, doc.Parsed().Roots, 1)
	}
}

func TestNewDocumentSkipsParsingNonTemplateLanguage(t *testing.T) {
	doc := NewDocument("file:///a.ts", "typescript", 1, `export class Foo {}`)
	assert.Nil(t, doc.Parsed())
}

func TestSetContentReparsesTemplate(t *testing.T) {
	doc := NewDocument("file:///a.html", "html", 1, `<div></div>`)
	doc.SetContent(`<my-el></my-el>`, 2)
	assert.Equal(t, 2, doc.Version())
	assert.Equal(t, `<my-el></my-el>`, doc.Content())
	if assert.NotNil(t, doc.Parsed()) {
		assert.Equal(t, "my-el", doc.Parsed().Roots[0].TagName)
	}
}

func TestIsTemplate(t *testing.T) {
	assert.True(t, IsTemplate("html"))
	assert.True(t, IsTemplate("aurelia-html"))
	assert.False(t, IsTemplate("typescript"))
	assert.False(t, IsTemplate(""))
}
