package expr

import "github.com/aurelia/aurelia-ls-sub004/internal/span"

// rebase shifts every span reachable from n by delta and stamps it with
// file, mutating in place. It is applied exactly once, at the top of
// Parse, to the whole tree (spec.md §3 "Rebasing composes exactly once").
func rebase(n Node, delta uint32, file span.FileId) {
	if n == nil {
		return
	}
	shift := func(s span.Span) span.Span {
		return span.Span{Start: s.Start + delta, End: s.End + delta, File: file}
	}

	switch v := n.(type) {
	case *AccessScope:
		v.Sp = shift(v.Sp)
		v.NameSpan = shift(v.NameSpan)
	case *AccessMember:
		v.Sp = shift(v.Sp)
		v.NameSpan = shift(v.NameSpan)
		rebase(v.Object, delta, file)
	case *AccessKeyed:
		v.Sp = shift(v.Sp)
		rebase(v.Object, delta, file)
		rebase(v.Key, delta, file)
	case *AccessThis:
		v.Sp = shift(v.Sp)
	case *AccessBoundary:
		v.Sp = shift(v.Sp)
	case *AccessGlobal:
		v.Sp = shift(v.Sp)
		v.NameSpan = shift(v.NameSpan)
	case *CallScope:
		v.Sp = shift(v.Sp)
		v.NameSpan = shift(v.NameSpan)
		for _, a := range v.Args {
			rebase(a, delta, file)
		}
	case *CallMember:
		v.Sp = shift(v.Sp)
		v.NameSpan = shift(v.NameSpan)
		rebase(v.Object, delta, file)
		for _, a := range v.Args {
			rebase(a, delta, file)
		}
	case *CallGlobal:
		v.Sp = shift(v.Sp)
		v.NameSpan = shift(v.NameSpan)
		for _, a := range v.Args {
			rebase(a, delta, file)
		}
	case *CallFunction:
		v.Sp = shift(v.Sp)
		rebase(v.Func, delta, file)
		for _, a := range v.Args {
			rebase(a, delta, file)
		}
	case *New:
		v.Sp = shift(v.Sp)
		rebase(v.Func, delta, file)
		for _, a := range v.Args {
			rebase(a, delta, file)
		}
	case *Unary:
		v.Sp = shift(v.Sp)
		rebase(v.Operand, delta, file)
	case *Binary:
		v.Sp = shift(v.Sp)
		rebase(v.Left, delta, file)
		rebase(v.Right, delta, file)
	case *Conditional:
		v.Sp = shift(v.Sp)
		rebase(v.Cond, delta, file)
		rebase(v.Yes, delta, file)
		rebase(v.No, delta, file)
	case *Assign:
		v.Sp = shift(v.Sp)
		rebase(v.Target, delta, file)
		rebase(v.Value, delta, file)
	case *ArrowFunction:
		v.Sp = shift(v.Sp)
		for _, p := range v.Params {
			rebase(p, delta, file)
		}
		if v.RestParam != nil {
			rebase(v.RestParam, delta, file)
		}
		rebase(v.Body, delta, file)
	case *ArrayLiteral:
		v.Sp = shift(v.Sp)
		for _, e := range v.Elements {
			rebase(e, delta, file)
		}
	case *ObjectLiteral:
		v.Sp = shift(v.Sp)
		for i, s := range v.KeySpans {
			v.KeySpans[i] = shift(s)
		}
		for _, val := range v.Values {
			rebase(val, delta, file)
		}
	case *Template:
		v.Sp = shift(v.Sp)
		for _, e := range v.Expressions {
			rebase(e, delta, file)
		}
	case *TaggedTemplate:
		v.Sp = shift(v.Sp)
		rebase(v.Tag, delta, file)
		for _, e := range v.Expressions {
			rebase(e, delta, file)
		}
	case *Interpolation:
		v.Sp = shift(v.Sp)
		for _, e := range v.Expressions {
			rebase(e, delta, file)
		}
	case *PrimitiveLiteral:
		v.Sp = shift(v.Sp)
	case *BindingIdentifier:
		v.Sp = shift(v.Sp)
	case *ArrayBindingPattern:
		v.Sp = shift(v.Sp)
		for _, e := range v.Elements {
			rebase(e, delta, file)
		}
	case *ObjectBindingPattern:
		v.Sp = shift(v.Sp)
		for _, e := range v.Elements {
			rebase(e, delta, file)
		}
	case *BindingPatternDefault:
		v.Sp = shift(v.Sp)
		rebase(v.Target, delta, file)
		rebase(v.Default, delta, file)
	case *ForOfStatement:
		v.Sp = shift(v.Sp)
		rebase(v.Declaration, delta, file)
		rebase(v.Iterable, delta, file)
	case *Paren:
		v.Sp = shift(v.Sp)
		rebase(v.Expression, delta, file)
	case *ValueConverter:
		v.Sp = shift(v.Sp)
		v.NameSpan = shift(v.NameSpan)
		rebase(v.Expression, delta, file)
		for _, a := range v.Args {
			rebase(a, delta, file)
		}
	case *BindingBehavior:
		v.Sp = shift(v.Sp)
		v.NameSpan = shift(v.NameSpan)
		rebase(v.Expression, delta, file)
		for _, a := range v.Args {
			rebase(a, delta, file)
		}
	case *Custom:
		v.Sp = shift(v.Sp)
	case *BadExpression:
		v.Sp = shift(v.Sp)
	}
}
