package expr

import (
	"testing"

	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/stretchr/testify/assert"
)

var spanForTest = span.Span{Start: 100, End: 100, File: "test.html"}

func TestAccessScopeSimple(t *testing.T) {
	n := Parse("foo", ModeIsProperty, Options{})
	scope, ok := n.(*AccessScope)
	assert.True(t, ok)
	assert.Equal(t, "foo", scope.Name)
	assert.Equal(t, 0, scope.Ancestor)
	assert.Equal(t, uint32(0), scope.Span().Start)
	assert.Equal(t, uint32(3), scope.Span().End)
}

func TestScopeHopContraction(t *testing.T) {
	n := Parse("$parent.$parent.baz", ModeIsProperty, Options{})
	scope, ok := n.(*AccessScope)
	assert.True(t, ok)
	assert.Equal(t, "baz", scope.Name)
	assert.Equal(t, 2, scope.Ancestor)
	assert.Equal(t, uint32(0), scope.Span().Start)
	assert.Equal(t, uint32(19), scope.Span().End)
}

func TestBareScopeHops(t *testing.T) {
	n := Parse("$this", ModeIsProperty, Options{})
	this, ok := n.(*AccessThis)
	assert.True(t, ok)
	assert.Equal(t, 0, this.Ancestor)

	n = Parse("$parent", ModeIsProperty, Options{})
	this, ok = n.(*AccessThis)
	assert.True(t, ok)
	assert.Equal(t, 1, this.Ancestor)
}

func TestBinaryPrecedence(t *testing.T) {
	n := Parse("1 + 2 * 3", ModeIsProperty, Options{})
	bin, ok := n.(*Binary)
	assert.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	left, ok := bin.Left.(*PrimitiveLiteral)
	assert.True(t, ok)
	assert.Equal(t, float64(1), left.Value)
	right, ok := bin.Right.(*Binary)
	assert.True(t, ok)
	assert.Equal(t, "*", right.Op)
}

func TestExponentRightAssociative(t *testing.T) {
	n := Parse("2 ** 3 ** 2", ModeIsProperty, Options{})
	bin, ok := n.(*Binary)
	assert.True(t, ok)
	assert.Equal(t, "**", bin.Op)
	_, leftIsLiteral := bin.Left.(*PrimitiveLiteral)
	assert.True(t, leftIsLiteral)
	_, rightIsBinary := bin.Right.(*Binary)
	assert.True(t, rightIsBinary)
}

func TestValueConverterAndBindingBehaviorChain(t *testing.T) {
	n := Parse("amount | currency:'USD' & throttle:100", ModeIsProperty, Options{})
	behavior, ok := n.(*BindingBehavior)
	assert.True(t, ok)
	assert.Equal(t, "throttle", behavior.Name)
	assert.Len(t, behavior.Args, 1)
	converter, ok := behavior.Expression.(*ValueConverter)
	assert.True(t, ok)
	assert.Equal(t, "currency", converter.Name)
	assert.Len(t, converter.Args, 1)
	_, ok = converter.Expression.(*AccessScope)
	assert.True(t, ok)
}

func TestInterpolationSimple(t *testing.T) {
	n := Parse("Hello ${name}", ModeInterpolation, Options{})
	interp, ok := n.(*Interpolation)
	assert.True(t, ok)
	assert.Equal(t, []string{"Hello ", ""}, interp.Parts)
	assert.Len(t, interp.Expressions, 1)
	scope, ok := interp.Expressions[0].(*AccessScope)
	assert.True(t, ok)
	assert.Equal(t, "name", scope.Name)
	assert.Equal(t, uint32(8), scope.Span().Start)
	assert.Equal(t, uint32(12), scope.Span().End)
}

func TestInterpolationEscapedDollarDegradesToPlainText(t *testing.T) {
	n := Parse(`\${x}`, ModeInterpolation, Options{})
	interp, ok := n.(*Interpolation)
	assert.True(t, ok)
	assert.Equal(t, []string{`\${x}`}, interp.Parts)
	assert.Empty(t, interp.Expressions)
}

func TestAssignmentTargetRestriction(t *testing.T) {
	n := Parse("1 = foo", ModeIsProperty, Options{})
	bad, ok := n.(*BadExpression)
	assert.True(t, ok)
	assert.Equal(t, "Left-hand side is not assignable", bad.Message)
}

func TestOptionalChainPropagation(t *testing.T) {
	n := Parse("foo?.bar()?.baz", ModeIsProperty, Options{})
	outer, ok := n.(*AccessMember)
	assert.True(t, ok)
	assert.True(t, outer.Optional)
	assert.Equal(t, "baz", outer.Name)
	call, ok := outer.Object.(*CallMember)
	assert.True(t, ok)
	assert.True(t, call.Optional)
	assert.Equal(t, "bar", call.Name)
}

func TestOptionalChainRejectsNonIdentifier(t *testing.T) {
	n := Parse("foo?.123", ModeIsProperty, Options{})
	bad, ok := n.(*BadExpression)
	assert.True(t, ok)
	assert.Equal(t, "Expected identifier after '?.'", bad.Message)
}

func TestTrailingTokenAfterExpressionIsRejected(t *testing.T) {
	n := Parse("foo bar", ModeIsProperty, Options{})
	bad, ok := n.(*BadExpression)
	assert.True(t, ok)
	assert.Equal(t, "Unexpected token after end of expression", bad.Message)
}

func TestArrowFunctionSingleIdentifier(t *testing.T) {
	n := Parse("x => x + 1", ModeIsProperty, Options{})
	arrow, ok := n.(*ArrowFunction)
	assert.True(t, ok)
	assert.Len(t, arrow.Params, 1)
	assert.Equal(t, "x", arrow.Params[0].Name)
}

func TestArrowFunctionMultiParamRejected(t *testing.T) {
	n := Parse("(a, b) => a + b", ModeIsProperty, Options{})
	bad, ok := n.(*BadExpression)
	assert.True(t, ok)
	assert.Equal(t, "Arrow functions currently support only a single identifier parameter in the LSP parser", bad.Message)
}

func TestGlobalsResolution(t *testing.T) {
	opts := Options{Globals: map[string]bool{"Math": true}}
	n := Parse("Math.max(1, 2)", ModeIsProperty, opts)
	call, ok := n.(*CallMember)
	assert.True(t, ok)
	assert.Equal(t, "max", call.Name)
	global, ok := call.Object.(*AccessGlobal)
	assert.True(t, ok)
	assert.Equal(t, "Math", global.Name)
}

func TestArrayLiteralHolesAndTrailingComma(t *testing.T) {
	n := Parse("[1, , 3,]", ModeIsProperty, Options{})
	arr, ok := n.(*ArrayLiteral)
	assert.True(t, ok)
	assert.Len(t, arr.Elements, 3)
	hole, ok := arr.Elements[1].(*PrimitiveLiteral)
	assert.True(t, ok)
	assert.IsType(t, Undefined{}, hole.Value)
}

func TestForOfIteratorMode(t *testing.T) {
	n := Parse("x of items", ModeIsIterator, Options{})
	forOf, ok := n.(*ForOfStatement)
	assert.True(t, ok)
	ident, ok := forOf.Declaration.(*BindingIdentifier)
	assert.True(t, ok)
	assert.Equal(t, "x", ident.Name)
	iterable, ok := forOf.Iterable.(*AccessScope)
	assert.True(t, ok)
	assert.Equal(t, "items", iterable.Name)
}

func TestBaseSpanRebasing(t *testing.T) {
	base := Options{BaseSpan: &spanForTest, File: "test.html"}
	n := Parse("foo", ModeIsProperty, base)
	scope, ok := n.(*AccessScope)
	assert.True(t, ok)
	assert.Equal(t, uint32(100), scope.Span().Start)
	assert.Equal(t, uint32(103), scope.Span().End)
}
