package cursor

import (
	"github.com/aurelia/aurelia-ls-sub004/internal/expr"
	"github.com/aurelia/aurelia-ls-sub004/internal/linker"
	"github.com/aurelia/aurelia-ls-sub004/internal/patterns"
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/template"
)

// Resolver resolves offsets within one linked template to cursor
// entities. It needs the resource index and pattern registry (to
// recover an attribute's target/command sub-spans) alongside the
// linked template and the parsed document the meta-element grammar
// (imports, local templates) lives on.
type Resolver struct {
	Resources *resources.Index
	Registry  *patterns.Registry
	Doc       *template.Document
	Linked    *linker.LinkedTemplate
}

// NewResolver builds a Resolver over one document's link result.
func NewResolver(resourcesIdx *resources.Index, registry *patterns.Registry, doc *template.Document, linked *linker.LinkedTemplate) *Resolver {
	return &Resolver{Resources: resourcesIdx, Registry: registry, Doc: doc, Linked: linked}
}

// Resolve implements S10's contract: resolve(offset) -> { entity,
// confidence } | null (spec.md §4.6).
func (r *Resolver) Resolve(offset uint32) (Entity, Confidence, bool) {
	var candidates []Entity

	for _, root := range r.Linked.Roots {
		r.collectRowCandidates(root, offset, &candidates)
	}
	if r.Doc != nil {
		collectMetaCandidates(r.Doc, offset, &candidates)
	}
	for _, entry := range r.Linked.ExprTable {
		if entry.Node == nil || !entry.Span.ContainsOffset(offset) {
			continue
		}
		if e, ok := exprCandidate(entry, offset); ok {
			r.fillExprResource(&e)
			candidates = append(candidates, e)
		}
	}

	best, tie, ok := pickBest(candidates)
	if !ok {
		return Entity{}, "", false
	}
	confidence := ConfidenceExact
	if tie {
		confidence = ConfidenceHigh
	}
	return best, confidence, true
}

// pickBest applies innermost-span-wins then the fixed Kind priority
// order. tie reports whether more than one candidate shared the
// winning (span length, priority) pair, i.e. the result depended on
// encounter order rather than a clean win.
func pickBest(candidates []Entity) (best Entity, tie bool, ok bool) {
	if len(candidates) == 0 {
		return Entity{}, false, false
	}
	minLen := candidates[0].Span.Len()
	for _, c := range candidates[1:] {
		if c.Span.Len() < minLen {
			minLen = c.Span.Len()
		}
	}

	bestPriority := -1
	count := 0
	for _, c := range candidates {
		if c.Span.Len() != minLen {
			continue
		}
		p := priority[c.Kind]
		switch {
		case p > bestPriority:
			best, bestPriority, count = c, p, 1
		case p == bestPriority:
			count++
		}
	}
	return best, count > 1, true
}

func (r *Resolver) collectRowCandidates(row *linker.ElementRow, offset uint32, out *[]Entity) {
	n := row.Node
	if sp, ok := tagNameSpan(n); ok && sp.ContainsOffset(offset) {
		*out = append(*out, Entity{
			Kind:     KindTag,
			Span:     sp,
			Name:     n.TagName,
			Node:     n,
			Resource: r.Resources.LookupElement(n.TagName),
		})
	}
	for i := range n.Attrs {
		r.collectAttrCandidates(row, &n.Attrs[i], offset, out)
	}
	for _, c := range row.Children {
		r.collectRowCandidates(c, offset, out)
	}
}

func tagNameSpan(n *template.Node) (span.Span, bool) {
	if n == nil || n.Kind != template.KindElement {
		return span.Span{}, false
	}
	start := n.TagSpan.Start + 1 // skip the leading "<"
	return span.Span{Start: start, End: start + uint32(len(n.TagName)), File: n.TagSpan.File}, true
}

func (r *Resolver) collectAttrCandidates(row *linker.ElementRow, a *template.Attr, offset uint32, out *[]Entity) {
	if a.Name == "as-element" && a.HasValue && a.ValueSpan.ContainsOffset(offset) {
		*out = append(*out, Entity{
			Kind:     KindAsElement,
			Span:     a.ValueSpan,
			Name:     a.Value,
			Attr:     a,
			Node:     row.Node,
			Resource: r.Resources.LookupElement(a.Value),
		})
		return
	}
	if !a.NameSpan.ContainsOffset(offset) {
		return
	}

	result, matched := r.Registry.Analyze(a.Name)
	instr := findInstrForAttr(row, a)

	if matched && result.CommandSpan != nil {
		cmdSpan := rebase(a.NameSpan, *result.CommandSpan)
		if cmdSpan.ContainsOffset(offset) {
			*out = append(*out, Entity{Kind: KindCommand, Span: cmdSpan, Name: result.Command, Attr: a, Node: row.Node})
			return
		}
	}

	targetSpan := a.NameSpan
	targetName := a.Name
	if matched && result.TargetSpan != nil {
		targetSpan = rebase(a.NameSpan, *result.TargetSpan)
		targetName = result.Target
	}
	if !targetSpan.ContainsOffset(offset) {
		return
	}

	e := Entity{Span: targetSpan, Name: targetName, Attr: a, Node: row.Node}
	switch {
	case instr != nil && instr.Kind == linker.KindHydrateTemplateController:
		e.Kind = KindTemplateCtrlAttr
		e.Resource = instr.Resource
	case instr != nil && instr.Kind == linker.KindHydrateAttribute:
		e.Kind = KindCustomAttr
		e.Resource = instr.Resource
	case instr != nil && instr.Bindable != nil:
		e.Kind = KindBindable
		e.Bindable = instr.Bindable
	default:
		e.Kind = KindPlainAttrBinding
	}
	*out = append(*out, e)
}

func rebase(nameSpan span.Span, rel [2]int) span.Span {
	return span.Span{Start: nameSpan.Start + uint32(rel[0]), End: nameSpan.Start + uint32(rel[1]), File: nameSpan.File}
}

func findInstrForAttr(row *linker.ElementRow, a *template.Attr) *linker.Instruction {
	for i := range row.Instructions {
		if row.Instructions[i].Attr == a {
			return &row.Instructions[i]
		}
	}
	return nil
}

func collectMetaCandidates(doc *template.Document, offset uint32, out *[]Entity) {
	for _, lt := range doc.Meta.LocalTemplates {
		if lt.DeclSpan.ContainsOffset(offset) {
			*out = append(*out, Entity{Kind: KindLocalTemplateName, Span: lt.DeclSpan, Name: lt.Name})
		}
	}
}

// exprCandidate finds the innermost node in entry's expression tree
// containing offset and reports a candidate only when offset lands on
// that node's own name span, not on an operator or its object/callee
// sub-expression (those resolve to their own, smaller-spanned node and
// so would have already won innermost-span-wins).
func exprCandidate(entry linker.ExprEntry, offset uint32) (Entity, bool) {
	innermost := expr.FindInnermost(entry.Node, offset)
	switch v := innermost.(type) {
	case *expr.ValueConverter:
		if v.NameSpan.ContainsOffset(offset) {
			return Entity{Kind: KindValueConverter, Span: v.NameSpan, Name: v.Name, ExprNode: v, FrameId: entry.FrameId}, true
		}
	case *expr.BindingBehavior:
		if v.NameSpan.ContainsOffset(offset) {
			return Entity{Kind: KindBindingBehavior, Span: v.NameSpan, Name: v.Name, ExprNode: v, FrameId: entry.FrameId}, true
		}
	case *expr.AccessMember:
		if v.NameSpan.ContainsOffset(offset) {
			return Entity{Kind: KindMemberAccess, Span: v.NameSpan, Name: v.Name, ExprNode: v, FrameId: entry.FrameId}, true
		}
	case *expr.CallMember:
		if v.NameSpan.ContainsOffset(offset) {
			return Entity{Kind: KindMemberAccess, Span: v.NameSpan, Name: v.Name, ExprNode: v, FrameId: entry.FrameId}, true
		}
	case *expr.AccessScope:
		if v.NameSpan.ContainsOffset(offset) {
			return Entity{Kind: KindScopeIdentifier, Span: v.NameSpan, Name: v.Name, ExprNode: v, FrameId: entry.FrameId}, true
		}
	case *expr.CallScope:
		if v.NameSpan.ContainsOffset(offset) {
			return Entity{Kind: KindScopeIdentifier, Span: v.NameSpan, Name: v.Name, ExprNode: v, FrameId: entry.FrameId}, true
		}
	}
	return Entity{}, false
}

func (r *Resolver) fillExprResource(e *Entity) {
	switch e.Kind {
	case KindValueConverter:
		e.Resource = r.Resources.LookupValueConverter(e.Name)
	case KindBindingBehavior:
		e.Resource = r.Resources.LookupBindingBehavior(e.Name)
	}
}
