package resources

import (
	"sync"
	"testing"

	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/stretchr/testify/assert"
)

func elementDef(name string, file span.FileId, bindables map[string]*BindableDef) *ResourceDef {
	return &ResourceDef{
		Kind:      KindCustomElement,
		Name:      span.NewSourcedNoLocation(name, span.OriginSource),
		File:      file,
		Bindables: bindables,
	}
}

func TestRebuildReplacesContentsWholesale(t *testing.T) {
	idx := NewIndex()
	idx.Rebuild([]FileFacts{{File: "a.ts", Resources: []*ResourceDef{elementDef("foo-bar", "a.ts", nil)}}}, nil)
	assert.NotNil(t, idx.LookupElement("foo-bar"))

	idx.Rebuild([]FileFacts{{File: "b.ts", Resources: []*ResourceDef{elementDef("baz-qux", "b.ts", nil)}}}, nil)
	assert.Nil(t, idx.LookupElement("foo-bar"), "stale definition from a prior Rebuild must not survive")
	assert.NotNil(t, idx.LookupElement("baz-qux"))
}

// TestRebuildIsAtomicUnderConcurrentReaders exercises the rebuild-then-swap
// policy: a reader running concurrently with Rebuild must see either the
// complete old index or the complete new one, never a map half-populated
// mid-rebuild (spec.md §5 "Shared resource policy").
func TestRebuildIsAtomicUnderConcurrentReaders(t *testing.T) {
	idx := NewIndex()
	idx.Rebuild([]FileFacts{{File: "a.ts", Resources: []*ResourceDef{elementDef("foo-bar", "a.ts", nil)}}}, nil)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	var sawNilAndNonNil int32 // just drives the loop; correctness is "doesn't panic/race"

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				if idx.LookupElement("foo-bar") != nil {
					sawNilAndNonNil++
				}
			}
		}
	}()

	for i := 0; i < 50; i++ {
		idx.Rebuild([]FileFacts{{File: "a.ts", Resources: []*ResourceDef{elementDef("foo-bar", "a.ts", nil)}}}, nil)
	}
	close(stop)
	wg.Wait()
}

func TestRebuildAssignsSymbolIdsWhenMissing(t *testing.T) {
	idx := NewIndex()
	def := elementDef("foo-bar", "a.ts", map[string]*BindableDef{
		"fooValue": {Property: "fooValue", Attribute: "foo-value"},
	})
	idx.Rebuild([]FileFacts{{File: "a.ts", Resources: []*ResourceDef{def}}}, nil)

	assert.NotEmpty(t, def.SymbolId)
	assert.NotEmpty(t, def.Bindables["fooValue"].SymbolId)
	assert.Equal(t, def.SymbolId, idx.ById(def.SymbolId).SymbolId)
}

func TestRebuildPreservesCallerAssignedSymbolId(t *testing.T) {
	idx := NewIndex()
	def := elementDef("foo-bar", "a.ts", nil)
	def.SymbolId = "explicit-id"
	idx.Rebuild([]FileFacts{{File: "a.ts", Resources: []*ResourceDef{def}}}, nil)

	assert.Equal(t, SymbolId("explicit-id"), def.SymbolId)
	assert.Same(t, def, idx.ById("explicit-id"))
}

func TestLookupAttributeLikeChecksControllersBeforeAttributes(t *testing.T) {
	idx := NewIndex()
	controller := &ResourceDef{Kind: KindTemplateController, Name: span.NewSourcedNoLocation("if", span.OriginBuiltin), IsTemplateController: true}
	idx.Rebuild(nil, []*ResourceDef{controller})

	assert.Equal(t, controller, idx.LookupAttributeLike("if"))
	assert.Nil(t, idx.LookupAttributeLike("unknown"))
}

func TestLookupByAlias(t *testing.T) {
	idx := NewIndex()
	aliases := span.NewSourcedNoLocation([]string{"my-foo"}, span.OriginSource)
	def := &ResourceDef{
		Kind:    KindCustomElement,
		Name:    span.NewSourcedNoLocation("foo-bar", span.OriginSource),
		File:    "a.ts",
		Aliases: &aliases,
	}
	idx.Rebuild([]FileFacts{{File: "a.ts", Resources: []*ResourceDef{def}}}, nil)

	assert.Equal(t, def, idx.LookupElement("foo-bar"))
	assert.Equal(t, def, idx.LookupElement("my-foo"))
}

func TestInFileAndAllOfKind(t *testing.T) {
	idx := NewIndex()
	a := elementDef("foo-bar", "a.ts", nil)
	b := elementDef("baz-qux", "a.ts", nil)
	c := elementDef("other", "b.ts", nil)
	idx.Rebuild([]FileFacts{
		{File: "a.ts", Resources: []*ResourceDef{a, b}},
		{File: "b.ts", Resources: []*ResourceDef{c}},
	}, nil)

	assert.ElementsMatch(t, []*ResourceDef{a, b}, idx.InFile("a.ts"))
	assert.Len(t, idx.AllOfKind(KindCustomElement), 3)
}

// TestBindableResolutionOrder covers the order spec.md §4.5 prescribes:
// exact property-name match first, then dash-to-camel normalization, then
// nothing.
func TestBindableResolutionOrder(t *testing.T) {
	def := &ResourceDef{
		Bindables: map[string]*BindableDef{
			"fooValue": {Property: "fooValue", Attribute: "foo-value"},
		},
	}

	assert.NotNil(t, def.Bindable("fooValue"), "exact property-name match")
	assert.Equal(t, "fooValue", def.Bindable("foo-value").Property, "dash-to-camel normalized match")
	assert.Nil(t, def.Bindable("nope"))
}

func TestBindableOnNilResourceDefIsNilSafe(t *testing.T) {
	var def *ResourceDef
	assert.Nil(t, def.Bindable("anything"))
}

func TestCamelToDashRoundTrip(t *testing.T) {
	assert.Equal(t, "foo-bar", CamelToDash("fooBar"))
	assert.Equal(t, "foo-bar-baz", CamelToDash("fooBarBaz"))
	assert.Equal(t, "foo", CamelToDash("foo"))
}
