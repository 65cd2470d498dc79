package provenance

import (
	"testing"

	"github.com/aurelia/aurelia-ls-sub004/internal/expr"
	"github.com/aurelia/aurelia-ls-sub004/internal/linker"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/stretchr/testify/assert"
)

func entryFor(t *testing.T, text string, base span.Span) linker.ExprEntry {
	t.Helper()
	node := expr.Parse(text, expr.ModeIsProperty, expr.Options{BaseSpan: &base, File: base.File})
	return linker.ExprEntry{Id: 0, Node: node, Span: node.Span(), FrameId: 0}
}

func TestPlanRoundTripsGeneratedAndSource(t *testing.T) {
	base := span.Span{Start: 100, End: 100, File: "t.html"}
	entry := entryFor(t, "item.name", base)
	entry.Id = 7

	edges := Plan([]linker.ExprEntry{entry}, "t.html")
	idx := NewIndex()
	idx.Rebuild(edges)

	// Offset 4 sits on the "." separator in "item.name", covered only by
	// the whole-expression overlayExpr edge, not by either member edge.
	genEdge := idx.LookupGenerated("t.html~overlay", 4)
	assert.NotNil(t, genEdge)
	assert.Equal(t, KindOverlayExpr, genEdge.Kind)
	assert.Equal(t, entry.Span, genEdge.To.Span)

	srcEdge := idx.LookupSource("t.html", entry.Span.Start)
	assert.NotNil(t, srcEdge)
	assert.Equal(t, span.FileId("t.html~overlay"), srcEdge.From.URI)
}

func TestPlanEmitsMemberEdgeForEachSegment(t *testing.T) {
	base := span.Span{Start: 100, End: 100, File: "t.html"}
	entry := entryFor(t, "item.name", base)

	edges := Plan([]linker.ExprEntry{entry}, "t.html")

	var memberPaths []string
	for _, e := range edges {
		if e.Kind == KindOverlayMember {
			memberPaths = append(memberPaths, e.To.MemberPath)
		}
	}
	assert.Contains(t, memberPaths, "item")
	assert.Contains(t, memberPaths, "name")
}

func TestLookupMissReturnsNil(t *testing.T) {
	idx := NewIndex()
	assert.Nil(t, idx.LookupGenerated("nope", 0))
	assert.Nil(t, idx.LookupSource("nope", 0))
}

func TestLookupPrefersInnermostSpan(t *testing.T) {
	base := span.Span{Start: 100, End: 100, File: "t.html"}
	entry := entryFor(t, "item.name", base)
	entry.Id = 1

	edges := Plan([]linker.ExprEntry{entry}, "t.html")
	idx := NewIndex()
	idx.Rebuild(edges)

	// "name"'s NameSpan sits inside the whole expression's span; looking
	// up at its start offset must prefer the tighter member edge over
	// the whole-expression edge.
	nameOffset := entry.Span.Start + uint32(len("item."))
	hit := idx.LookupSource("t.html", nameOffset)
	assert.NotNil(t, hit)
	assert.Equal(t, KindOverlayMember, hit.Kind)
	assert.Equal(t, "name", hit.To.MemberPath)
}

func TestRebuildReplacesEdgesWholesale(t *testing.T) {
	idx := NewIndex()
	base := span.Span{Start: 0, End: 0, File: "a.html"}
	idx.Rebuild(Plan([]linker.ExprEntry{entryFor(t, "foo", base)}, "a.html"))
	assert.NotNil(t, idx.LookupSource("a.html", 0))

	idx.Rebuild(nil)
	assert.Nil(t, idx.LookupSource("a.html", 0))
}
