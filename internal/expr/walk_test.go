package expr

import (
	"testing"

	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/stretchr/testify/assert"
)

func TestWalkVisitsMemberChain(t *testing.T) {
	node := Parse("foo.bar.baz", ModeIsProperty, Options{BaseSpan: &spanForTest})

	var names []string
	Walk(node, func(n Node) {
		if m, ok := n.(*AccessMember); ok {
			names = append(names, m.Name)
		}
		if s, ok := n.(*AccessScope); ok {
			names = append(names, s.Name)
		}
	})

	assert.Equal(t, []string{"baz", "bar", "foo"}, names)
}

func TestFindInnermostPicksDeepestMember(t *testing.T) {
	node := Parse("foo.bar.baz", ModeIsProperty, Options{BaseSpan: &spanForTest})

	outer, ok := node.(*AccessMember)
	assert.True(t, ok)
	assert.Equal(t, "baz", outer.Name)

	// Offset inside the innermost "foo" AccessScope.
	found := FindInnermost(node, spanForTest.Start)
	scope, ok := found.(*AccessScope)
	assert.True(t, ok)
	assert.Equal(t, "foo", scope.Name)
}

func TestFindInnermostOutsideSpanReturnsNil(t *testing.T) {
	node := Parse("foo", ModeIsProperty, Options{BaseSpan: &spanForTest})
	assert.Nil(t, FindInnermost(node, spanForTest.End+1000))
}

func TestWalkOnLeafVisitsOnlyItself(t *testing.T) {
	lit := NewPrimitiveLiteral(float64(1), span.Span{Start: 0, End: 1, File: "t.html"})
	count := 0
	Walk(lit, func(Node) { count++ })
	assert.Equal(t, 1, count)
}
