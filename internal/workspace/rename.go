// Package workspace implements the rename/code-action engine (S13),
// the diagnostics mapper (S14), and the supplemented workspace-sweep
// operation: the facilities that consume S9's provenance index and
// S10's cursor-entity resolver to drive editor-facing commands across
// a whole linked template (spec.md §4.6, §4.7).
package workspace

import (
	"fmt"

	"github.com/aurelia/aurelia-ls-sub004/internal/cursor"
	"github.com/aurelia/aurelia-ls-sub004/internal/expr"
	"github.com/aurelia/aurelia-ls-sub004/internal/linker"
	"github.com/aurelia/aurelia-ls-sub004/internal/patterns"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/template"
)

// TextEdit is one replacement: the bytes at Span become NewText.
type TextEdit struct {
	Span    span.Span
	NewText string
}

// Rename implements S13's rename contract: resolve the cursor entity
// at offset, reject it if cursor.IsRenameable says no, and produce
// every text edit needed to rename every occurrence within this
// template (spec.md §8 "changing the iterator name to `item` renames
// the occurrence once in the attribute value and once in each
// expression site").
func Rename(resolver *cursor.Resolver, offset uint32, newName string) ([]TextEdit, error) {
	entity, _, ok := resolver.Resolve(offset)
	if !ok {
		return nil, fmt.Errorf("workspace: no renameable entity at offset %d", offset)
	}
	if !cursor.IsRenameable(entity) {
		return nil, fmt.Errorf("workspace: %q is not renameable", entity.Name)
	}
	linked := resolver.Linked

	switch entity.Kind {
	case cursor.KindScopeIdentifier, cursor.KindMemberAccess:
		if edits := renameScopeSymbol(linked, entity, newName); edits != nil {
			return edits, nil
		}
		return renameMemberAccess(linked, entity, newName), nil
	case cursor.KindTag, cursor.KindAsElement:
		return renameElement(linked, entity, newName), nil
	case cursor.KindCustomAttr:
		return renameCustomAttribute(linked, resolver.Registry, entity, newName), nil
	case cursor.KindBindable:
		return renameBindable(linked, resolver.Registry, entity, newName), nil
	case cursor.KindValueConverter:
		return renameExprName(linked, entity.Name, newName, func(n expr.Node) (span.Span, string, bool) {
			if v, ok := n.(*expr.ValueConverter); ok {
				return v.NameSpan, v.Name, true
			}
			return span.Span{}, "", false
		}), nil
	case cursor.KindBindingBehavior:
		return renameExprName(linked, entity.Name, newName, func(n expr.Node) (span.Span, string, bool) {
			if v, ok := n.(*expr.BindingBehavior); ok {
				return v.NameSpan, v.Name, true
			}
			return span.Span{}, "", false
		}), nil
	default:
		return nil, fmt.Errorf("workspace: rename unsupported for entity kind %q", entity.Kind)
	}
}

// DeclarationSpan resolves the cursor entity at offset and, for a
// scope identifier or member access that actually resolves to a scope
// symbol (a repeat/for-of loop variable), returns the span of its
// owning BindingIdentifier declaration — the same site renameScopeSymbol
// edits first. Used by textDocument/definition to jump from a loop
// variable's use site to its declaration; entities with no in-template
// declaration (plain object members, resources declared in host
// script) report ok=false.
func DeclarationSpan(resolver *cursor.Resolver, offset uint32) (span.Span, bool) {
	entity, _, ok := resolver.Resolve(offset)
	if !ok {
		return span.Span{}, false
	}
	if entity.Kind != cursor.KindScopeIdentifier && entity.Kind != cursor.KindMemberAccess {
		return span.Span{}, false
	}
	linked := resolver.Linked
	ownerFrameId, _, ok := linked.Scope.Resolve(entity.FrameId, 0, entity.Name)
	if !ok {
		return span.Span{}, false
	}
	return findDeclarationSpan(linked, ownerFrameId, entity.Name)
}

// renameScopeSymbol handles the repeat-loop-variable case: it renames
// the for-of declaration's BindingIdentifier plus every AccessScope /
// CallScope occurrence whose resolution reaches the same owning frame
// (spec.md §4.5 "Identifier resolution"). Returns nil if entity.Name
// doesn't resolve to a scope symbol at all (distinguishing it from a
// plain object-member name sharing KindMemberAccess).
func renameScopeSymbol(linked *linker.LinkedTemplate, entity cursor.Entity, newName string) []TextEdit {
	ownerFrameId, _, ok := linked.Scope.Resolve(entity.FrameId, 0, entity.Name)
	if !ok {
		return nil
	}

	var edits []TextEdit
	if declSpan, ok := findDeclarationSpan(linked, ownerFrameId, entity.Name); ok {
		edits = append(edits, TextEdit{Span: declSpan, NewText: newName})
	}

	for _, e := range linked.ExprTable {
		if e.Node == nil {
			continue
		}
		expr.Walk(e.Node, func(cur expr.Node) {
			nameSpan, name, ancestor, ok := scopeRefNameSpan(cur)
			if !ok || name != entity.Name {
				return
			}
			resolvedFrame, _, ok := linked.Scope.Resolve(e.FrameId, ancestor, name)
			if ok && resolvedFrame == ownerFrameId {
				edits = append(edits, TextEdit{Span: nameSpan, NewText: newName})
			}
		})
	}
	return edits
}

// renameMemberAccess handles the plain object-member case (`item.name`
// renaming `name`): since these aren't scope symbols, rename is
// confined to the single cursor occurrence — a member name can't have
// a declaration site this engine tracks (the owning type lives in host
// script source, out of scope per spec.md §1).
func renameMemberAccess(linked *linker.LinkedTemplate, entity cursor.Entity, newName string) []TextEdit {
	return []TextEdit{{Span: entity.Span, NewText: newName}}
}

// scopeRefNameSpan extracts the name span, name, and ancestor hop
// count from an AccessScope/CallScope node, the only two node kinds
// that resolve against the scope graph by bare name.
func scopeRefNameSpan(n expr.Node) (span.Span, string, int, bool) {
	switch v := n.(type) {
	case *expr.AccessScope:
		return v.NameSpan, v.Name, v.Ancestor, true
	case *expr.CallScope:
		return v.NameSpan, v.Name, v.Ancestor, true
	default:
		return span.Span{}, "", 0, false
	}
}

// findDeclarationSpan locates the for-of BindingIdentifier whose
// declaration pushed ownerFrameId, by scanning every
// hydrateTemplateController instruction's From.Expr for a
// ForOfStatement and checking whether its declared name matches. Only a
// plain BindingIdentifier declaration is matched; names bound by a
// destructuring pattern are not found.
func findDeclarationSpan(linked *linker.LinkedTemplate, ownerFrameId int, name string) (span.Span, bool) {
	var found span.Span
	var ok bool
	walkRows(linked.Roots, func(row *linker.ElementRow) {
		for _, instr := range row.Instructions {
			if instr.Kind != linker.KindHydrateTemplateController || instr.From.Expr == nil {
				continue
			}
			forOf, isForOf := instr.From.Expr.(*expr.ForOfStatement)
			if !isForOf {
				continue
			}
			if sp, declName, declOK := declarationNameSpan(forOf.Declaration); declOK && declName == name {
				found, ok = sp, true
			}
		}
	})
	return found, ok
}

func declarationNameSpan(n expr.Node) (span.Span, string, bool) {
	switch v := n.(type) {
	case *expr.BindingIdentifier:
		return v.Span(), v.Name, true
	}
	return span.Span{}, "", false
}

func walkRows(rows []*linker.ElementRow, fn func(*linker.ElementRow)) {
	for _, row := range rows {
		fn(row)
		walkRows(row.Children, fn)
	}
}

// renameElement renames every tag-name occurrence, opening and closing
// tag alike, plus every as-element value referencing the same custom
// element resource.
func renameElement(linked *linker.LinkedTemplate, entity cursor.Entity, newName string) []TextEdit {
	if entity.Resource == nil {
		return nil
	}
	var edits []TextEdit
	walkRows(linked.Roots, func(row *linker.ElementRow) {
		n := row.Node
		if n.TagName != entity.Resource.Name.Value {
			for i := range n.Attrs {
				a := &n.Attrs[i]
				if a.Name == "as-element" && a.HasValue && a.Value == entity.Resource.Name.Value {
					edits = append(edits, TextEdit{Span: a.ValueSpan, NewText: newName})
				}
			}
			return
		}
		openStart := n.TagSpan.Start + 1
		edits = append(edits, TextEdit{
			Span:    span.Span{Start: openStart, End: openStart + uint32(len(n.TagName)), File: n.TagSpan.File},
			NewText: newName,
		})
		if !n.SelfClosing && n.CloseTagSpan.Len() > 0 {
			closeStart := n.CloseTagSpan.Start + 2
			edits = append(edits, TextEdit{
				Span:    span.Span{Start: closeStart, End: closeStart + uint32(len(n.TagName)), File: n.CloseTagSpan.File},
				NewText: newName,
			})
		}
	})
	return edits
}

// renameCustomAttribute renames every hydrateTemplateController /
// hydrateAttribute instruction's target span that resolves to the same
// resource (template controllers and custom attributes share the
// attribute-name namespace, spec.md §4.5).
func renameCustomAttribute(linked *linker.LinkedTemplate, registry *patterns.Registry, entity cursor.Entity, newName string) []TextEdit {
	if entity.Resource == nil {
		return nil
	}
	var edits []TextEdit
	walkRows(linked.Roots, func(row *linker.ElementRow) {
		for _, instr := range row.Instructions {
			if instr.Resource != entity.Resource || instr.Attr == nil {
				continue
			}
			if instr.Kind != linker.KindHydrateTemplateController && instr.Kind != linker.KindHydrateAttribute {
				continue
			}
			if sp, ok := targetSpanOf(registry, instr.Attr); ok {
				edits = append(edits, TextEdit{Span: sp, NewText: newName})
			}
		}
	})
	return edits
}

// renameBindable renames every instruction's target span that binds
// the same BindableDef (comparing Bindable pointers, which are stable
// per resources.Index.Rebuild for the life of one index generation).
func renameBindable(linked *linker.LinkedTemplate, registry *patterns.Registry, entity cursor.Entity, newName string) []TextEdit {
	if entity.Bindable == nil {
		return nil
	}
	var edits []TextEdit
	walkRows(linked.Roots, func(row *linker.ElementRow) {
		for _, instr := range row.Instructions {
			if instr.Bindable != entity.Bindable || instr.Attr == nil {
				continue
			}
			if sp, ok := targetSpanOf(registry, instr.Attr); ok {
				edits = append(edits, TextEdit{Span: sp, NewText: newName})
			}
		}
	})
	return edits
}

// targetSpanOf recovers an instruction's target-name sub-span by
// replaying the attribute through the same pattern analysis the linker
// used, the same approach S10/S12 take rather than persisting the span
// on Instruction itself. Falls back to the whole attribute-name span
// when the pattern no longer matches (e.g. a plain `let`-style alias).
func targetSpanOf(registry *patterns.Registry, a *template.Attr) (span.Span, bool) {
	result, matched := registry.Analyze(a.Name)
	if !matched || result.TargetSpan == nil {
		return a.NameSpan, true
	}
	rel := *result.TargetSpan
	return span.Span{
		Start: a.NameSpan.Start + uint32(rel[0]),
		End:   a.NameSpan.Start + uint32(rel[1]),
		File:  a.NameSpan.File,
	}, true
}

// renameExprName renames every occurrence of a value-converter or
// binding-behavior name across the whole expression table, matched by
// name rather than node identity since distinct `| upper` pipe sites
// parse into distinct *ValueConverter nodes even when they share one
// resource definition.
func renameExprName(linked *linker.LinkedTemplate, oldName, newName string, match func(expr.Node) (span.Span, string, bool)) []TextEdit {
	var edits []TextEdit
	for _, e := range linked.ExprTable {
		if e.Node == nil {
			continue
		}
		expr.Walk(e.Node, func(cur expr.Node) {
			nameSpan, name, ok := match(cur)
			if ok && name == oldName {
				edits = append(edits, TextEdit{Span: nameSpan, NewText: newName})
			}
		})
	}
	return edits
}
