// Package query implements the query facade (S11): the read-only
// surface host features (hover, definition, completion, semantic
// tokens) consult once a template is linked. It never mutates the
// linked template or the resource index it's handed.
package query

import (
	"sort"

	"github.com/aurelia/aurelia-ls-sub004/internal/cursor"
	"github.com/aurelia/aurelia-ls-sub004/internal/expr"
	"github.com/aurelia/aurelia-ls-sub004/internal/linker"
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/template"
)

// Facade bundles one linked template with the resource index it was
// linked against.
type Facade struct {
	Linked    *linker.LinkedTemplate
	Resources *resources.Index
}

// NewFacade builds a query facade over one link result.
func NewFacade(linked *linker.LinkedTemplate, resourcesIdx *resources.Index) *Facade {
	return &Facade{Linked: linked, Resources: resourcesIdx}
}

// NodeAt returns the innermost DOM element whose extent contains
// offset, or nil if offset falls outside every element.
func (f *Facade) NodeAt(offset uint32) *template.Node {
	path := f.rowPathAt(offset)
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1].Node
}

// ExprAt returns the expression-table entry whose span contains offset
// and the innermost AST node within it, or ok=false when offset isn't
// inside any expression.
func (f *Facade) ExprAt(offset uint32) (entry linker.ExprEntry, node expr.Node, ok bool) {
	for _, e := range f.Linked.ExprTable {
		if e.Node == nil || !e.Span.ContainsOffset(offset) {
			continue
		}
		if n := expr.FindInnermost(e.Node, offset); n != nil {
			return e, n, true
		}
	}
	return linker.ExprEntry{}, nil, false
}

// ControllerAt returns the template-controller resource governing the
// scope at offset: the nearest element at or above offset's position
// that declared a structural controller, or nil if offset isn't
// nested inside one.
func (f *Facade) ControllerAt(offset uint32) *resources.ResourceDef {
	path := f.rowPathAt(offset)
	for i := len(path) - 1; i >= 0; i-- {
		for _, instr := range path[i].Instructions {
			if instr.Kind == linker.KindHydrateTemplateController {
				return instr.Resource
			}
		}
	}
	return nil
}

// BindablesFor returns def's declared bindables sorted by property
// name, for completion/hover listings. Map iteration order is
// otherwise unspecified, and spec.md §8's determinism property applies
// to every query result.
func BindablesFor(def *resources.ResourceDef) []*resources.BindableDef {
	if def == nil {
		return nil
	}
	out := make([]*resources.BindableDef, 0, len(def.Bindables))
	for _, b := range def.Bindables {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Property < out[j].Property })
	return out
}

// ExpectedTypeOf gives a coarse, non-inferring type hint for a
// resolved cursor entity. The engine never performs type inference
// (spec.md §1 "defers type questions to the external type-checker
// through the overlay"); this only reports what's fixed by the
// framework itself, for the handful of contextual properties whose
// type never varies by program.
func ExpectedTypeOf(e cursor.Entity) string {
	if e.Kind == cursor.KindScopeIdentifier {
		switch e.Name {
		case "$index", "$length":
			return "number"
		case "$first", "$last", "$even", "$odd":
			return "boolean"
		case "$event":
			return "Event"
		}
	}
	return "unknown"
}

// rowPathAt returns the chain of ElementRows from a root down to the
// innermost row whose Node.Span contains offset, or nil if none does.
func (f *Facade) rowPathAt(offset uint32) []*linker.ElementRow {
	for _, root := range f.Linked.Roots {
		if path := rowPath(root, offset); path != nil {
			return path
		}
	}
	return nil
}

func rowPath(row *linker.ElementRow, offset uint32) []*linker.ElementRow {
	if row == nil || row.Node == nil || !row.Node.Span.ContainsOffset(offset) {
		return nil
	}
	for _, c := range row.Children {
		if path := rowPath(c, offset); path != nil {
			return append([]*linker.ElementRow{row}, path...)
		}
	}
	return []*linker.ElementRow{row}
}
