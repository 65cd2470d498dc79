package workspace

import (
	"testing"

	"github.com/aurelia/aurelia-ls-sub004/internal/cursor"
	"github.com/aurelia/aurelia-ls-sub004/internal/linker"
	"github.com/aurelia/aurelia-ls-sub004/internal/patterns"
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/template"
	"github.com/stretchr/testify/assert"
)

func repeatBuiltin() *resources.ResourceDef {
	return &resources.ResourceDef{
		Kind:                 resources.KindTemplateController,
		Name:                 span.NewSourcedNoLocation("repeat", span.OriginBuiltin),
		IsTemplateController: true,
	}
}

func myElBuiltin() *resources.ResourceDef {
	return &resources.ResourceDef{
		Kind: resources.KindCustomElement,
		Name: span.NewSourcedNoLocation("my-el", span.OriginBuiltin),
		Bindables: map[string]*resources.BindableDef{
			"value": {Property: "value", Attribute: "value"},
		},
	}
}

func upperBuiltin() *resources.ResourceDef {
	return &resources.ResourceDef{Kind: resources.KindValueConverter, Name: span.NewSourcedNoLocation("upper", span.OriginBuiltin)}
}

func resolverFor(t *testing.T, html string, extra ...*resources.ResourceDef) (*cursor.Resolver, string) {
	t.Helper()
	p := template.AcquireParser()
	defer template.ReleaseParser(p)
	doc := p.Parse(html, "t.html")

	idx := resources.NewIndex()
	builtins := append([]*resources.ResourceDef{repeatBuiltin()}, extra...)
	idx.Rebuild(nil, builtins)

	registry := patterns.NewRegistry()
	linked := linker.Link(doc, idx, registry, nil, "t.html")

	return cursor.NewResolver(idx, registry, doc, linked), html
}

func textOf(source string, s span.Span) string {
	return source[s.Start:s.End]
}

// findOffset returns the byte offset of needle's nth occurrence (0-indexed).
func findOffset(t *testing.T, html, needle string, occurrence int) uint32 {
	t.Helper()
	start := 0
	for i := 0; i <= occurrence; i++ {
		idx := indexFrom(html, needle, start)
		assert.GreaterOrEqual(t, idx, 0, "occurrence %d of %q not found", i, needle)
		if i == occurrence {
			return uint32(idx)
		}
		start = idx + len(needle)
	}
	return 0
}

func indexFrom(s, substr string, start int) int {
	if start > len(s) {
		return -1
	}
	i := indexOf(s[start:], substr)
	if i < 0 {
		return -1
	}
	return start + i
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func TestRenameScopeIdentifierRenamesDeclarationAndAllUsages(t *testing.T) {
	html := `<div repeat.for="item of items"><span textcontent.bind="item.name"></span><i if.bind="item"></i></div>`
	r, source := resolverFor(t, html)

	offset := findOffset(t, html, "item.name", 0)
	edits, err := Rename(r, offset, "entry")
	assert.NoError(t, err)
	assert.Len(t, edits, 3)
	for _, e := range edits {
		assert.Equal(t, "item", textOf(source, e.Span))
		assert.Equal(t, "entry", e.NewText)
	}
}

func TestRenameMemberAccessRenamesSingleOccurrence(t *testing.T) {
	html := `<div repeat.for="item of items"><span textcontent.bind="item.name"></span></div>`
	r, source := resolverFor(t, html)

	offset := findOffset(t, html, "name", 0)
	edits, err := Rename(r, offset, "label")
	assert.NoError(t, err)
	assert.Len(t, edits, 1)
	assert.Equal(t, "name", textOf(source, edits[0].Span))
}

func TestRenameElementTagRenamesOpenAndCloseTag(t *testing.T) {
	html := `<my-el></my-el>`
	r, source := resolverFor(t, html, myElBuiltin())

	offset := findOffset(t, html, "my-el", 0) + 1
	edits, err := Rename(r, offset, "your-el")
	assert.NoError(t, err)
	assert.Len(t, edits, 2)
	for _, e := range edits {
		assert.Equal(t, "my-el", textOf(source, e.Span))
	}
}

func TestRenameBindableTarget(t *testing.T) {
	html := `<my-el value.bind="x"></my-el>`
	r, source := resolverFor(t, html, myElBuiltin())

	offset := findOffset(t, html, "value", 0) + 1
	edits, err := Rename(r, offset, "val")
	assert.NoError(t, err)
	assert.Len(t, edits, 1)
	assert.Equal(t, "value", textOf(source, edits[0].Span))
}

func TestRenameValueConverterAcrossAllSites(t *testing.T) {
	html := `<div textcontent.bind="a | upper"><span textcontent.bind="b | upper"></span></div>`
	r, source := resolverFor(t, html, upperBuiltin())

	offset := findOffset(t, html, "upper", 0) + 1
	edits, err := Rename(r, offset, "uppercase")
	assert.NoError(t, err)
	assert.Len(t, edits, 2)
	for _, e := range edits {
		assert.Equal(t, "upper", textOf(source, e.Span))
	}
}

func TestRenameRejectsNonRenameableEntity(t *testing.T) {
	html := `<div repeat.for="item of items"></div>`
	r, _ := resolverFor(t, html)

	offset := findOffset(t, html, "repeat", 0) + 1
	_, err := Rename(r, offset, "iterate")
	assert.Error(t, err)
}

func TestRenameMissingOffsetReturnsError(t *testing.T) {
	html := `<div></div>`
	r, _ := resolverFor(t, html)

	_, err := Rename(r, 1000, "whatever")
	assert.Error(t, err)
}
