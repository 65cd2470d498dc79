// Package provenance implements the provenance index (S9): the
// bidirectional mapping between a template's own spans and the
// generated overlay spans a host type-checker's projection uses, plus
// the per-segment member-access edges that let a type-checker
// diagnostic on the overlay be rewritten back onto the template
// (spec.md §4.7).
package provenance

import (
	"sort"
	"sync"

	"github.com/aurelia/aurelia-ls-sub004/internal/expr"
	"github.com/aurelia/aurelia-ls-sub004/internal/linker"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
)

// EdgeKind is the closed set of provenance edge variants spec.md §3
// names.
type EdgeKind string

const (
	KindOverlayExpr   EdgeKind = "overlayExpr"
	KindOverlayMember EdgeKind = "overlayMember"
)

// Endpoint is one side of an edge: a file, a span within it, and
// whichever of ExprId/MemberPath applies to that side.
type Endpoint struct {
	URI        span.FileId
	Span       span.Span
	ExprId     *int
	MemberPath string // dotted access path this endpoint covers, overlayMember edges only
}

// Edge is one ProvenanceEdge: From is the generated (overlay) side, To
// is the source (template) side.
type Edge struct {
	From Endpoint
	To   Endpoint
	Kind EdgeKind
}

// Index stores edges for fast bidirectional offset lookup, per
// spec.md §4.7 "interval trees keyed by (uri, offset) for both
// directions". Edges are sorted by start offset per file so lookup is
// a binary search rather than a linear scan.
type Index struct {
	mu          sync.RWMutex
	byGenerated map[span.FileId][]*Edge // sorted by From.Span.Start
	bySource    map[span.FileId][]*Edge // sorted by To.Span.Start
}

// NewIndex creates an empty provenance index.
func NewIndex() *Index {
	return &Index{
		byGenerated: make(map[span.FileId][]*Edge),
		bySource:    make(map[span.FileId][]*Edge),
	}
}

// Rebuild replaces the index contents wholesale, the same
// rebuild-then-atomic-swap discipline as resources.Index.Rebuild
// (spec.md §5 "Shared resource policy").
func (idx *Index) Rebuild(edges []*Edge) {
	byGenerated := make(map[span.FileId][]*Edge)
	bySource := make(map[span.FileId][]*Edge)

	for _, e := range edges {
		byGenerated[e.From.URI] = append(byGenerated[e.From.URI], e)
		bySource[e.To.URI] = append(bySource[e.To.URI], e)
	}
	for _, list := range byGenerated {
		sort.Slice(list, func(i, j int) bool { return list[i].From.Span.Start < list[j].From.Span.Start })
	}
	for _, list := range bySource {
		sort.Slice(list, func(i, j int) bool { return list[i].To.Span.Start < list[j].To.Span.Start })
	}

	idx.mu.Lock()
	idx.byGenerated = byGenerated
	idx.bySource = bySource
	idx.mu.Unlock()
}

// LookupGenerated resolves an offset in the generated overlay back to
// the innermost-containing source-side edge (spec.md §4.7
// "lookupGenerated").
func (idx *Index) LookupGenerated(uri span.FileId, offset uint32) *Edge {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return lookup(idx.byGenerated[uri], offset, func(e *Edge) span.Span { return e.From.Span })
}

// LookupSource resolves an offset in the template back to the
// innermost-containing generated-side edge (spec.md §4.7
// "lookupSource").
func (idx *Index) LookupSource(uri span.FileId, offset uint32) *Edge {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return lookup(idx.bySource[uri], offset, func(e *Edge) span.Span { return e.To.Span })
}

// lookup binary-searches the sorted-by-start list for the first
// candidate whose span could contain offset, then scans forward
// (spans don't overlap arbitrarily deeply in this domain — an
// expression's overlayExpr edge and its nested overlayMember edges are
// the only nesting) keeping the smallest containing span.
func lookup(edges []*Edge, offset uint32, side func(*Edge) span.Span) *Edge {
	i := sort.Search(len(edges), func(i int) bool { return side(edges[i]).Start > offset })

	var best *Edge
	for j := i - 1; j >= 0; j-- {
		sp := side(edges[j])
		if !sp.ContainsOffset(offset) {
			// Once a span starting before offset also ends before it,
			// older entries (sorted by Start) only get further away.
			if sp.End <= offset && best != nil {
				break
			}
			continue
		}
		if best == nil || sp.Len() < side(best).Len() {
			best = edges[j]
		}
	}
	return best
}

// Plan builds the provenance edges for one linked template: a
// synthetic overlay buffer laid out sequentially in the order
// expressions were parsed (spec.md §9 "Provenance as a pure map" — the
// mapping is computed from the parsed expression, not emitted as a
// side effect of real overlay text generation, which is the host
// type-checker's concern and out of this engine's scope). Each
// expression gets one overlayExpr edge, plus one overlayMember edge per
// member-access segment found inside it.
func Plan(entries []linker.ExprEntry, sourceFile span.FileId) []*Edge {
	overlayFile := span.FileId(string(sourceFile) + "~overlay")
	var edges []*Edge
	var cursor uint32

	for _, entry := range entries {
		if entry.Node == nil {
			continue
		}
		length := entry.Span.Len()
		generated := span.Span{Start: cursor, End: cursor + length, File: overlayFile}
		cursor += length + 1

		exprId := entry.Id
		edges = append(edges, &Edge{
			Kind: KindOverlayExpr,
			From: Endpoint{URI: overlayFile, Span: generated, ExprId: &exprId},
			To:   Endpoint{URI: sourceFile, Span: entry.Span, ExprId: &exprId},
		})

		edges = append(edges, memberEdges(entry.Node, entry.Span, generated, overlayFile, sourceFile, exprId)...)
	}
	return edges
}

// memberEdges walks n for member-access segments and maps each one's
// source NameSpan onto the proportional sub-range of generated it
// occupies, since the overlay span was laid out at the same relative
// offsets as the source span it mirrors.
func memberEdges(n expr.Node, sourceSpan, generatedSpan span.Span, overlayFile, sourceFile span.FileId, exprId int) []*Edge {
	var edges []*Edge
	expr.Walk(n, func(cur expr.Node) {
		nameSpan, path, ok := memberNameSpan(cur)
		if !ok {
			return
		}
		offsetInExpr := nameSpan.Start - sourceSpan.Start
		length := nameSpan.Len()
		genSpan := span.Span{
			Start: generatedSpan.Start + offsetInExpr,
			End:   generatedSpan.Start + offsetInExpr + length,
			File:  overlayFile,
		}
		id := exprId
		edges = append(edges, &Edge{
			Kind: KindOverlayMember,
			From: Endpoint{URI: overlayFile, Span: genSpan, ExprId: &id, MemberPath: path},
			To:   Endpoint{URI: sourceFile, Span: nameSpan, ExprId: &id, MemberPath: path},
		})
	})
	return edges
}

func memberNameSpan(n expr.Node) (span.Span, string, bool) {
	switch v := n.(type) {
	case *expr.AccessMember:
		return v.NameSpan, v.Name, true
	case *expr.AccessScope:
		return v.NameSpan, v.Name, true
	case *expr.CallMember:
		return v.NameSpan, v.Name, true
	case *expr.CallScope:
		return v.NameSpan, v.Name, true
	default:
		return span.Span{}, "", false
	}
}
