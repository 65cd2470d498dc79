package expr

// Walk calls visit for n and every descendant, pre-order. The switch is
// exhaustive over the closed Kind set (spec.md §9 "closed unions over
// virtual dispatch"): leaves (AccessScope, AccessThis, AccessBoundary,
// AccessGlobal, PrimitiveLiteral, BindingIdentifier, Custom,
// BadExpression) fall through with no children to visit.
func Walk(n Node, visit func(Node)) {
	if n == nil {
		return
	}
	visit(n)
	switch v := n.(type) {
	case *AccessMember:
		Walk(v.Object, visit)
	case *AccessKeyed:
		Walk(v.Object, visit)
		Walk(v.Key, visit)
	case *CallScope:
		walkAll(v.Args, visit)
	case *CallMember:
		Walk(v.Object, visit)
		walkAll(v.Args, visit)
	case *CallGlobal:
		walkAll(v.Args, visit)
	case *CallFunction:
		Walk(v.Func, visit)
		walkAll(v.Args, visit)
	case *New:
		Walk(v.Func, visit)
		walkAll(v.Args, visit)
	case *Unary:
		Walk(v.Operand, visit)
	case *Binary:
		Walk(v.Left, visit)
		Walk(v.Right, visit)
	case *Conditional:
		Walk(v.Cond, visit)
		Walk(v.Yes, visit)
		Walk(v.No, visit)
	case *Assign:
		Walk(v.Target, visit)
		Walk(v.Value, visit)
	case *ArrowFunction:
		Walk(v.Body, visit)
	case *ArrayLiteral:
		walkAll(v.Elements, visit)
	case *ObjectLiteral:
		walkAll(v.Values, visit)
	case *Template:
		walkAll(v.Expressions, visit)
	case *TaggedTemplate:
		Walk(v.Tag, visit)
		walkAll(v.Expressions, visit)
	case *Interpolation:
		walkAll(v.Expressions, visit)
	case *ForOfStatement:
		Walk(v.Declaration, visit)
		Walk(v.Iterable, visit)
	case *Paren:
		Walk(v.Expression, visit)
	case *ValueConverter:
		Walk(v.Expression, visit)
		walkAll(v.Args, visit)
	case *BindingBehavior:
		Walk(v.Expression, visit)
		walkAll(v.Args, visit)
	case *ArrayBindingPattern:
		walkAll(v.Elements, visit)
	case *ObjectBindingPattern:
		walkAll(v.Elements, visit)
	case *BindingPatternDefault:
		Walk(v.Target, visit)
		Walk(v.Default, visit)
	}
}

func walkAll(nodes []Node, visit func(Node)) {
	for _, n := range nodes {
		Walk(n, visit)
	}
}

// FindInnermost returns the node in n's tree whose span most tightly
// contains offset (the smallest containing span), or nil if n's own
// span doesn't contain it. Ties are broken by visit order, i.e. the
// first node of the minimal length found during the pre-order walk.
func FindInnermost(n Node, offset uint32) Node {
	var best Node
	Walk(n, func(cur Node) {
		if cur == nil || !cur.Span().ContainsOffset(offset) {
			return
		}
		if best == nil || cur.Span().Len() < best.Span().Len() {
			best = cur
		}
	})
	return best
}
