package workspace

import (
	"fmt"

	"github.com/aurelia/aurelia-ls-sub004/internal/cursor"
	"github.com/aurelia/aurelia-ls-sub004/internal/expr"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
)

// ReferenceLocation is one reference occurrence: a span within a
// specific file.
type ReferenceLocation struct {
	File span.FileId
	Span span.Span
}

// References resolves the cursor entity at offset within file's
// session and collects every occurrence of that entity across the
// workspace. A repeat/for-of loop variable's references are confined
// to its own template — scope is per-document (spec.md §4.5) — so
// that case searches only file's session. Every other entity kind
// that carries a *resources.ResourceDef or *resources.BindableDef is
// resource-identity-addressed: the pointer is shared by every session
// linked against the same resource-index generation (internal/workspace.
// Manager.Resources), so its references span every open document. This
// reuses Rename's own span-collecting helpers with newName set to the
// entity's current name, since a reference set and a rename's edit set
// are the same spans.
func References(mgr *Manager, file span.FileId, offset uint32) ([]ReferenceLocation, error) {
	sess := mgr.Get(file)
	if sess == nil {
		return nil, fmt.Errorf("workspace: no session for %s", file)
	}
	entity, _, ok := sess.Resolver.Resolve(offset)
	if !ok {
		return nil, fmt.Errorf("workspace: no entity at offset %d", offset)
	}

	switch entity.Kind {
	case cursor.KindScopeIdentifier, cursor.KindMemberAccess:
		edits, err := Rename(sess.Resolver, offset, entity.Name)
		if err != nil {
			return nil, err
		}
		return spansIn(file, edits), nil

	case cursor.KindTag, cursor.KindAsElement:
		if entity.Resource == nil {
			return nil, nil
		}
		return collectAcrossSessions(mgr, func(s *Session) []TextEdit {
			return renameElement(s.Linked, entity, entity.Name)
		}), nil

	case cursor.KindCustomAttr, cursor.KindTemplateCtrlAttr:
		if entity.Resource == nil {
			return nil, nil
		}
		return collectAcrossSessions(mgr, func(s *Session) []TextEdit {
			return renameCustomAttribute(s.Linked, mgr.Registry, entity, entity.Name)
		}), nil

	case cursor.KindBindable:
		if entity.Bindable == nil {
			return nil, nil
		}
		return collectAcrossSessions(mgr, func(s *Session) []TextEdit {
			return renameBindable(s.Linked, mgr.Registry, entity, entity.Name)
		}), nil

	case cursor.KindValueConverter:
		return collectAcrossSessions(mgr, func(s *Session) []TextEdit {
			return renameExprName(s.Linked, entity.Name, entity.Name, matchValueConverter)
		}), nil

	case cursor.KindBindingBehavior:
		return collectAcrossSessions(mgr, func(s *Session) []TextEdit {
			return renameExprName(s.Linked, entity.Name, entity.Name, matchBindingBehavior)
		}), nil

	default:
		// Command, plain-attribute-binding, and local-template-name
		// entities have no cross-site identity this engine tracks;
		// the cursor occurrence is the only reference.
		return []ReferenceLocation{{File: file, Span: entity.Span}}, nil
	}
}

func matchValueConverter(n expr.Node) (span.Span, string, bool) {
	if v, ok := n.(*expr.ValueConverter); ok {
		return v.NameSpan, v.Name, true
	}
	return span.Span{}, "", false
}

func matchBindingBehavior(n expr.Node) (span.Span, string, bool) {
	if v, ok := n.(*expr.BindingBehavior); ok {
		return v.NameSpan, v.Name, true
	}
	return span.Span{}, "", false
}

func collectAcrossSessions(mgr *Manager, fn func(*Session) []TextEdit) []ReferenceLocation {
	var out []ReferenceLocation
	for _, s := range mgr.All() {
		out = append(out, spansIn(s.URI, fn(s))...)
	}
	return out
}

func spansIn(file span.FileId, edits []TextEdit) []ReferenceLocation {
	out := make([]ReferenceLocation, 0, len(edits))
	for _, e := range edits {
		out = append(out, ReferenceLocation{File: file, Span: e.Span})
	}
	return out
}
