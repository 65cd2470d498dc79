package resources

import (
	"sync"

	"github.com/aurelia/aurelia-ls-sub004/internal/span"
)

// FileFacts is the script-side input the host type-checker collaborator
// supplies for one analyzed file: every resource it declares. The core
// never parses script source itself (spec.md §1, out of scope); it only
// collates whatever FileFacts the host hands it.
type FileFacts struct {
	File      span.FileId
	Resources []*ResourceDef
}

// Index is the SymbolId-keyed collation of every resource definition
// visible to the workspace, rebuilt whenever any analyzed script or
// meta-declaration file changes (spec.md §3 "Lifecycle").
type Index struct {
	mu sync.RWMutex

	byId       map[SymbolId]*ResourceDef
	byName     map[Kind]map[string]*ResourceDef
	byFile     map[span.FileId][]*ResourceDef
	aliasToDef map[Kind]map[string]*ResourceDef
}

// NewIndex creates an empty resource index.
func NewIndex() *Index {
	return &Index{
		byId:       make(map[SymbolId]*ResourceDef),
		byName:     make(map[Kind]map[string]*ResourceDef),
		byFile:     make(map[span.FileId][]*ResourceDef),
		aliasToDef: make(map[Kind]map[string]*ResourceDef),
	}
}

// Rebuild replaces the entire index contents from a fresh set of
// FileFacts plus any builtin resources. Rebuild owns exclusive write
// access for the duration of the call (spec.md §5 "Shared resource
// policy"); readers observe either the old or the new index state, never
// a partial one.
func (idx *Index) Rebuild(facts []FileFacts, builtins []*ResourceDef) {
	byId := make(map[SymbolId]*ResourceDef)
	byName := make(map[Kind]map[string]*ResourceDef)
	byFile := make(map[span.FileId][]*ResourceDef)
	aliasToDef := make(map[Kind]map[string]*ResourceDef)

	add := func(def *ResourceDef) {
		if def.SymbolId == "" {
			def.SymbolId = NewResourceSymbolId(def.Kind, def.Name.Value, def.File)
		}
		for i, b := range def.Bindables {
			if b.SymbolId == "" {
				b.SymbolId = NewBindableSymbolId(def.SymbolId, i)
			}
		}
		byId[def.SymbolId] = def
		if byName[def.Kind] == nil {
			byName[def.Kind] = make(map[string]*ResourceDef)
		}
		byName[def.Kind][def.Name.Value] = def
		if def.File != "" {
			byFile[def.File] = append(byFile[def.File], def)
		}
		if def.Aliases != nil {
			if aliasToDef[def.Kind] == nil {
				aliasToDef[def.Kind] = make(map[string]*ResourceDef)
			}
			for _, alias := range def.Aliases.Value {
				aliasToDef[def.Kind][alias] = def
			}
		}
	}

	for _, def := range builtins {
		add(def)
	}
	for _, ff := range facts {
		for _, def := range ff.Resources {
			add(def)
		}
	}

	idx.mu.Lock()
	idx.byId = byId
	idx.byName = byName
	idx.byFile = byFile
	idx.aliasToDef = aliasToDef
	idx.mu.Unlock()
}

// Lookup resolves a resource by kind and declared (or aliased) name.
func (idx *Index) Lookup(kind Kind, name string) *ResourceDef {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if byName, ok := idx.byName[kind]; ok {
		if def, ok := byName[name]; ok {
			return def
		}
	}
	if byAlias, ok := idx.aliasToDef[kind]; ok {
		if def, ok := byAlias[name]; ok {
			return def
		}
	}
	return nil
}

// LookupElement resolves a custom-element resource by tag name.
func (idx *Index) LookupElement(name string) *ResourceDef {
	return idx.Lookup(KindCustomElement, name)
}

// LookupAttributeLike resolves either a custom attribute or a template
// controller by attribute name; controllers and attributes share the
// attribute-name namespace in a template, so callers check both.
func (idx *Index) LookupAttributeLike(name string) *ResourceDef {
	if def := idx.Lookup(KindTemplateController, name); def != nil {
		return def
	}
	return idx.Lookup(KindCustomAttribute, name)
}

// LookupValueConverter resolves a value-converter resource by name.
func (idx *Index) LookupValueConverter(name string) *ResourceDef {
	return idx.Lookup(KindValueConverter, name)
}

// LookupBindingBehavior resolves a binding-behavior resource by name.
func (idx *Index) LookupBindingBehavior(name string) *ResourceDef {
	return idx.Lookup(KindBindingBehavior, name)
}

// ById resolves any resource or bindable-owning resource by its SymbolId.
func (idx *Index) ById(id SymbolId) *ResourceDef {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.byId[id]
}

// AllOfKind returns every resource definition of the given kind.
func (idx *Index) AllOfKind(kind Kind) []*ResourceDef {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	byName := idx.byName[kind]
	defs := make([]*ResourceDef, 0, len(byName))
	for _, def := range byName {
		defs = append(defs, def)
	}
	return defs
}

// InFile returns every resource declared in the given file.
func (idx *Index) InFile(file span.FileId) []*ResourceDef {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]*ResourceDef(nil), idx.byFile[file]...)
}
