package cursor

import (
	"strings"
	"testing"

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

// resolverFor parses and links html, seeding the resource index with
// extra (plus the repeat controller every test can assume exists), and
// returns a Resolver plus the raw source so callers can compute offsets
// with strings.Index.
func resolverFor(t *testing.T, html string, extra ...*resources.ResourceDef) (*Resolver, string) {
	t.Helper()
	p := template.AcquireParser()
	defer template.ReleaseParser(p)
	doc := p.Parse(html, "t.html")

	idx := resources.NewIndex()
	builtins := append([]*resources.ResourceDef{repeatBuiltin()}, extra...)
	idx.Rebuild(nil, builtins)

	registry := patterns.NewRegistry()
	linked := linker.Link(doc, idx, registry, nil, "t.html")

	return NewResolver(idx, registry, doc, linked), html
}

func offsetOf(t *testing.T, html, needle string) uint32 {
	t.Helper()
	i := strings.Index(html, needle)
	assert.GreaterOrEqual(t, i, 0, "needle %q not found in %q", needle, html)
	return uint32(i)
}

func TestResolveTagName(t *testing.T) {
	html := `<my-el></my-el>`
	r, _ := resolverFor(t, html, myElBuiltin())

	e, conf, ok := r.Resolve(offsetOf(t, html, "my-el") + 1)
	assert.True(t, ok)
	assert.Equal(t, KindTag, e.Kind)
	assert.Equal(t, "my-el", e.Name)
	assert.NotNil(t, e.Resource)
	assert.Equal(t, ConfidenceExact, conf)
	assert.True(t, IsRenameable(e))
}

func TestResolveNativeTagIsNotRenameable(t *testing.T) {
	html := `<div></div>`
	r, _ := resolverFor(t, html)

	e, _, ok := r.Resolve(offsetOf(t, html, "div") + 1)
	assert.True(t, ok)
	assert.Equal(t, KindTag, e.Kind)
	assert.Nil(t, e.Resource)
	assert.False(t, IsRenameable(e))
}

func TestResolveBindableTarget(t *testing.T) {
	html := `<my-el value.bind="x"></my-el>`
	r, _ := resolverFor(t, html, myElBuiltin())

	e, _, ok := r.Resolve(offsetOf(t, html, "value.bind") + 1)
	assert.True(t, ok)
	assert.Equal(t, KindBindable, e.Kind)
	assert.Equal(t, "value", e.Name)
	assert.NotNil(t, e.Bindable)
	assert.True(t, IsRenameable(e))
}

func TestResolveCommand(t *testing.T) {
	html := `<my-el value.bind="x"></my-el>`
	r, _ := resolverFor(t, html, myElBuiltin())

	e, _, ok := r.Resolve(offsetOf(t, html, ".bind") + 2)
	assert.True(t, ok)
	assert.Equal(t, KindCommand, e.Kind)
	assert.Equal(t, "bind", e.Name)
	assert.False(t, IsRenameable(e))
}

func TestResolvePlainAttrBindingWhenNoOwner(t *testing.T) {
	html := `<div some-prop.bind="x"></div>`
	r, _ := resolverFor(t, html)

	e, _, ok := r.Resolve(offsetOf(t, html, "some-prop") + 1)
	assert.True(t, ok)
	assert.Equal(t, KindPlainAttrBinding, e.Kind)
	assert.Equal(t, "some-prop", e.Name)
}

func TestResolveTemplateControllerAttr(t *testing.T) {
	html := `<div repeat.for="item of items"></div>`
	r, _ := resolverFor(t, html)

	e, _, ok := r.Resolve(offsetOf(t, html, "repeat") + 1)
	assert.True(t, ok)
	assert.Equal(t, KindTemplateCtrlAttr, e.Kind)
	assert.False(t, IsRenameable(e), "template controller names are keywords, never renameable")
}

func TestResolveScopeIdentifierAndContextualBlock(t *testing.T) {
	html := `<div repeat.for="item of items"><span textcontent.bind="item"></span></div>`
	r, _ := resolverFor(t, html)

	itemValueOffset := strings.LastIndex(html, `"item"`) + 1
	e, _, ok := r.Resolve(uint32(itemValueOffset))
	assert.True(t, ok)
	assert.Equal(t, KindScopeIdentifier, e.Kind)
	assert.Equal(t, "item", e.Name)
	assert.True(t, IsRenameable(e))

	blocked := Entity{Kind: KindScopeIdentifier, Name: "$index"}
	assert.False(t, IsRenameable(blocked))
}

func TestResolveMemberAccess(t *testing.T) {
	html := `<div repeat.for="item of items"><span textcontent.bind="item.name"></span></div>`
	r, _ := resolverFor(t, html)

	e, _, ok := r.Resolve(offsetOf(t, html, "name") + 1)
	assert.True(t, ok)
	assert.Equal(t, KindMemberAccess, e.Kind)
	assert.Equal(t, "name", e.Name)
	assert.True(t, IsRenameable(e))
}

func TestResolveAsElement(t *testing.T) {
	html := `<div as-element="my-el"></div>`
	r, _ := resolverFor(t, html, myElBuiltin())

	e, _, ok := r.Resolve(offsetOf(t, html, "my-el") + 1)
	assert.True(t, ok)
	assert.Equal(t, KindAsElement, e.Kind)
	assert.NotNil(t, e.Resource)
	assert.True(t, IsRenameable(e))
}

func TestResolveMissReturnsFalse(t *testing.T) {
	html := `<div>plain text</div>`
	r, _ := resolverFor(t, html)

	_, _, ok := r.Resolve(offsetOf(t, html, "plain text") + 3)
	assert.False(t, ok)
}
