package expr

import (
	"fmt"

	"github.com/aurelia/aurelia-ls-sub004/internal/lexer"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
)

// Parse parses source under the given Mode and returns the resulting AST
// (spec.md §4.2). It never returns a Go error: malformed input produces a
// BadExpression somewhere in the tree (spec.md §9).
func Parse(source string, mode Mode, opts Options) Node {
	switch mode {
	case ModeNone:
		return &BadExpression{
			base:    base{Sp: span.Span{Start: 0, End: uint32(len(source))}},
			Text:    source,
			Message: "Invalid parse mode",
			Origin:  parseOrigin(),
		}
	case ModeIsCustom:
		n := Node(&Custom{base: base{Sp: span.Span{Start: 0, End: uint32(len(source))}}, Text: source})
		finish(n, opts)
		return n
	case ModeInterpolation:
		n := parseInterpolationSource(source, opts)
		finish(n, opts)
		return n
	}

	p := newParser(source, opts)
	var result Node
	if mode == ModeIsIterator {
		result = p.parseForOf()
	} else {
		expr := p.parseAssignment()
		expr = p.parseVCBehaviorTails(expr)
		if _, isBad := expr.(*BadExpression); !isBad && p.cur.Type != lexer.EOF {
			result = p.badAt(span.Span{Start: p.cur.Start, End: uint32(len(source))}, source[p.cur.Start:], "Unexpected token after end of expression")
		} else {
			result = expr
		}
	}
	finish(result, opts)
	return result
}

func finish(n Node, opts Options) {
	if opts.BaseSpan != nil {
		rebase(n, opts.BaseSpan.Start, opts.File)
	} else if opts.File != "" {
		rebase(n, 0, opts.File)
	}
}

func parseInterpolationSource(source string, opts Options) Node {
	parts, exprStarts, exprEnds, ok := splitInterpolation(source)
	if !ok {
		return &Interpolation{
			base:  base{Sp: span.Span{Start: 0, End: uint32(len(source))}},
			Parts: []string{source},
		}
	}
	exprs := make([]Node, 0, len(exprStarts))
	for i := range exprStarts {
		sub := source[exprStarts[i]:exprEnds[i]]
		subOpts := Options{Globals: opts.Globals, File: opts.File}
		p := newParser(sub, subOpts)
		e := p.parseAssignment()
		e = p.parseVCBehaviorTails(e)
		if p.cur.Type != lexer.EOF {
			e = p.badAt(span.Span{Start: p.cur.Start, End: uint32(len(sub))}, sub[p.cur.Start:], "Unexpected token after end of expression")
		}
		rebase(e, uint32(exprStarts[i]), opts.File)
		exprs = append(exprs, e)
	}
	return &Interpolation{
		base:        base{Sp: span.Span{Start: 0, End: uint32(len(source))}},
		Parts:       parts,
		Expressions: exprs,
	}
}

// parser holds the mutable state of one Parse call over the core grammar.
type parser struct {
	sc      *lexer.Scanner
	cur     lexer.Token
	source  string
	globals map[string]bool
}

func newParser(source string, opts Options) *parser {
	p := &parser{sc: lexer.New(source), source: source, globals: opts.Globals}
	p.advance()
	return p
}

func (p *parser) advance() { p.cur = p.sc.Next() }

func sp(start, end uint32) span.Span { return span.Span{Start: start, End: end} }

func (p *parser) badAt(at span.Span, text, message string) *BadExpression {
	return &BadExpression{base: base{Sp: at}, Text: text, Message: message, Origin: parseOrigin()}
}

// ---- Top-level forms -------------------------------------------------

func (p *parser) parseForOf() Node {
	decl := p.parseForOfDeclaration()
	if p.cur.Type != lexer.Ident || p.cur.Value.(string) != "of" {
		return p.badAt(sp(p.cur.Start, p.cur.End), p.tokenText(p.cur), "Expected 'of' in iterator declaration")
	}
	p.advance() // consume 'of'
	iterable := p.parseAssignment()
	iterable = p.parseVCBehaviorTails(iterable)
	start := decl.Span().Start
	return &ForOfStatement{base: base{Sp: sp(start, iterable.Span().End)}, Declaration: decl, Iterable: iterable}
}

func (p *parser) parseForOfDeclaration() Node {
	switch p.cur.Type {
	case lexer.LBracket:
		return p.parseArrayBindingPattern()
	case lexer.LBrace:
		return p.parseObjectBindingPattern()
	case lexer.Ident:
		name := p.cur.Value.(string)
		if lexer.IsKeyword(name) {
			return p.badAt(sp(p.cur.Start, p.cur.End), name, "Expected identifier in iterator declaration")
		}
		start, end := p.cur.Start, p.cur.End
		p.advance()
		return &BindingIdentifier{base: base{Sp: sp(start, end)}, Name: name}
	default:
		return p.badAt(sp(p.cur.Start, p.cur.End), p.tokenText(p.cur), "Expected identifier in iterator declaration")
	}
}

func (p *parser) parseBindingTarget() Node {
	switch p.cur.Type {
	case lexer.LBracket:
		return p.parseArrayBindingPattern()
	case lexer.LBrace:
		return p.parseObjectBindingPattern()
	case lexer.Ident:
		name := p.cur.Value.(string)
		start, end := p.cur.Start, p.cur.End
		p.advance()
		return &BindingIdentifier{base: base{Sp: sp(start, end)}, Name: name}
	default:
		return p.badAt(sp(p.cur.Start, p.cur.End), p.tokenText(p.cur), "Expected binding target")
	}
}

func (p *parser) maybeDefault(target Node) Node {
	if p.cur.Type != lexer.Eq {
		return target
	}
	p.advance()
	def := p.parseAssignment()
	return &BindingPatternDefault{base: base{Sp: sp(target.Span().Start, def.Span().End)}, Target: target, Default: def}
}

func (p *parser) parseArrayBindingPattern() Node {
	start := p.cur.Start
	p.advance() // [
	var elements []Node
	for p.cur.Type != lexer.RBracket {
		if p.cur.Type == lexer.Ellipsis {
			p.advance()
			rest := p.parseBindingTarget()
			elements = append(elements, rest)
			break
		}
		el := p.parseBindingTarget()
		el = p.maybeDefault(el)
		elements = append(elements, el)
		if p.cur.Type == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if p.cur.Type != lexer.RBracket {
		return p.badAt(sp(start, p.cur.End), "", "Expected ']' to close binding pattern")
	}
	end := p.cur.End
	p.advance()
	return &ArrayBindingPattern{base: base{Sp: sp(start, end)}, Elements: elements}
}

func (p *parser) parseObjectBindingPattern() Node {
	start := p.cur.Start
	p.advance() // {
	var keys []string
	var elements []Node
	for p.cur.Type != lexer.RBrace {
		if p.cur.Type != lexer.Ident {
			return p.badAt(sp(p.cur.Start, p.cur.End), p.tokenText(p.cur), "Expected identifier in binding pattern")
		}
		key := p.cur.Value.(string)
		keyStart, keyEnd := p.cur.Start, p.cur.End
		p.advance()
		var target Node = &BindingIdentifier{base: base{Sp: sp(keyStart, keyEnd)}, Name: key}
		if p.cur.Type == lexer.Colon {
			p.advance()
			target = p.parseBindingTarget()
		}
		target = p.maybeDefault(target)
		keys = append(keys, key)
		elements = append(elements, target)
		if p.cur.Type == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if p.cur.Type != lexer.RBrace {
		return p.badAt(sp(start, p.cur.End), "", "Expected '}' to close binding pattern")
	}
	end := p.cur.End
	p.advance()
	return &ObjectBindingPattern{base: base{Sp: sp(start, end)}, Keys: keys, Elements: elements}
}

// ---- Value-converter / binding-behavior tails -------------------------

func (p *parser) parseVCBehaviorTails(expr Node) Node {
	for p.cur.Type == lexer.Pipe {
		p.advance()
		if p.cur.Type != lexer.Ident {
			return p.badAt(sp(expr.Span().Start, p.cur.End), p.tokenText(p.cur), "Expected identifier after '|'")
		}
		name := p.cur.Value.(string)
		nameSpan := sp(p.cur.Start, p.cur.End)
		p.advance()
		args := p.parseConverterArgs()
		expr = &ValueConverter{
			base:       base{Sp: sp(expr.Span().Start, p.prevEnd())},
			Name:       name,
			NameSpan:   nameSpan,
			Args:       args,
			Expression: expr,
		}
	}
	for p.cur.Type == lexer.Amp {
		p.advance()
		if p.cur.Type != lexer.Ident {
			return p.badAt(sp(expr.Span().Start, p.cur.End), p.tokenText(p.cur), "Expected identifier after '&'")
		}
		name := p.cur.Value.(string)
		nameSpan := sp(p.cur.Start, p.cur.End)
		p.advance()
		args := p.parseConverterArgs()
		expr = &BindingBehavior{
			base:       base{Sp: sp(expr.Span().Start, p.prevEnd())},
			Name:       name,
			NameSpan:   nameSpan,
			Args:       args,
			Expression: expr,
		}
	}
	return expr
}

func (p *parser) parseConverterArgs() []Node {
	var args []Node
	for p.cur.Type == lexer.Colon {
		p.advance()
		arg := p.parseAssignment()
		args = append(args, arg)
	}
	return args
}

// prevEnd approximates the end of the just-parsed construct as the start
// of the current lookahead token, which is always adjacent to it modulo
// skipped whitespace — acceptable since spans only need to contain their
// semantic text, not trailing whitespace.
func (p *parser) prevEnd() uint32 { return p.cur.Start }

// ---- Assignment / conditional / binary / unary ------------------------

func (p *parser) parseAssignment() Node {
	left := p.parseConditional()
	op := ""
	switch p.cur.Type {
	case lexer.Eq:
		op = "="
	case lexer.PlusEq:
		op = "+="
	case lexer.MinusEq:
		op = "-="
	case lexer.StarEq:
		op = "*="
	case lexer.SlashEq:
		op = "/="
	default:
		return left
	}
	if !isAssignable(left) {
		return p.badAt(left.Span(), "", "Left-hand side is not assignable")
	}
	p.advance()
	value := p.parseAssignment()
	return &Assign{base: base{Sp: sp(left.Span().Start, value.Span().End)}, Op: op, Target: left, Value: value}
}

func isAssignable(n Node) bool {
	switch n.(type) {
	case *AccessScope, *AccessMember, *AccessKeyed, *AccessThis, *AccessBoundary, *AccessGlobal:
		return true
	default:
		return false
	}
}

func (p *parser) parseConditional() Node {
	cond := p.parseBinary(1)
	if p.cur.Type != lexer.Question {
		return cond
	}
	p.advance()
	yes := p.parseAssignment()
	if p.cur.Type != lexer.Colon {
		return p.badAt(sp(cond.Span().Start, p.cur.End), "", "Expected ':' in conditional expression")
	}
	p.advance()
	no := p.parseAssignment()
	return &Conditional{base: base{Sp: sp(cond.Span().Start, no.Span().End)}, Cond: cond, Yes: yes, No: no}
}

type opInfo struct {
	op         string
	prec       int
	rightAssoc bool
}

func binaryOpInfo(tok lexer.Token) (opInfo, bool) {
	switch tok.Type {
	case lexer.QQ:
		return opInfo{"??", 1, false}, true
	case lexer.PipePipe:
		return opInfo{"||", 2, false}, true
	case lexer.AmpAmp:
		return opInfo{"&&", 3, false}, true
	case lexer.EqEq:
		return opInfo{"==", 4, false}, true
	case lexer.EqEqEq:
		return opInfo{"===", 4, false}, true
	case lexer.NotEq:
		return opInfo{"!=", 4, false}, true
	case lexer.NotEqEq:
		return opInfo{"!==", 4, false}, true
	case lexer.Lt:
		return opInfo{"<", 5, false}, true
	case lexer.Lte:
		return opInfo{"<=", 5, false}, true
	case lexer.Gt:
		return opInfo{">", 5, false}, true
	case lexer.Gte:
		return opInfo{">=", 5, false}, true
	case lexer.Plus:
		return opInfo{"+", 6, false}, true
	case lexer.Minus:
		return opInfo{"-", 6, false}, true
	case lexer.Star:
		return opInfo{"*", 7, false}, true
	case lexer.Slash:
		return opInfo{"/", 7, false}, true
	case lexer.Percent:
		return opInfo{"%", 7, false}, true
	case lexer.StarStar:
		return opInfo{"**", 8, true}, true
	case lexer.Ident:
		if name, ok := tok.Value.(string); ok {
			if name == "instanceof" || name == "in" {
				return opInfo{name, 5, false}, true
			}
		}
	}
	return opInfo{}, false
}

func (p *parser) parseBinary(minPrec int) Node {
	left := p.parseUnary()
	for {
		info, ok := binaryOpInfo(p.cur)
		if !ok || info.prec < minPrec {
			break
		}
		p.advance()
		nextMin := info.prec + 1
		if info.rightAssoc {
			nextMin = info.prec
		}
		right := p.parseBinary(nextMin)
		left = &Binary{base: base{Sp: sp(left.Span().Start, right.Span().End)}, Op: info.op, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseUnary() Node {
	start := p.cur.Start
	switch p.cur.Type {
	case lexer.Plus:
		p.advance()
		operand := p.parseUnary()
		return &Unary{base: base{Sp: sp(start, operand.Span().End)}, Op: "+", Operand: operand, Prefix: true}
	case lexer.Minus:
		p.advance()
		operand := p.parseUnary()
		return &Unary{base: base{Sp: sp(start, operand.Span().End)}, Op: "-", Operand: operand, Prefix: true}
	case lexer.Bang:
		p.advance()
		operand := p.parseUnary()
		return &Unary{base: base{Sp: sp(start, operand.Span().End)}, Op: "!", Operand: operand, Prefix: true}
	case lexer.PlusPlus:
		p.advance()
		operand := p.parseUnary()
		return &Unary{base: base{Sp: sp(start, operand.Span().End)}, Op: "++", Operand: operand, Prefix: true}
	case lexer.MinusMinus:
		p.advance()
		operand := p.parseUnary()
		return &Unary{base: base{Sp: sp(start, operand.Span().End)}, Op: "--", Operand: operand, Prefix: true}
	case lexer.Ident:
		if name, ok := p.cur.Value.(string); ok && (name == "typeof" || name == "void") {
			p.advance()
			operand := p.parseUnary()
			return &Unary{base: base{Sp: sp(start, operand.Span().End)}, Op: name, Operand: operand, Prefix: true}
		}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() Node {
	expr := p.parseLeftHandSide()
	for p.cur.Type == lexer.PlusPlus || p.cur.Type == lexer.MinusMinus {
		op := "++"
		if p.cur.Type == lexer.MinusMinus {
			op = "--"
		}
		end := p.cur.End
		p.advance()
		expr = &Unary{base: base{Sp: sp(expr.Span().Start, end)}, Op: op, Operand: expr, Prefix: false}
	}
	return expr
}

// ---- Left-hand side: primary + tail ------------------------------------

func (p *parser) parseLeftHandSide() Node {
	expr := p.parsePrimary()
	return p.parseTail(expr)
}

func (p *parser) parseTail(obj Node) Node {
	for {
		switch p.cur.Type {
		case lexer.Dot:
			p.advance()
			if p.cur.Type != lexer.Ident {
				return p.badAt(sp(obj.Span().Start, p.cur.End), p.tokenText(p.cur), "Expected identifier after '.'")
			}
			name := p.cur.Value.(string)
			nameSpan := sp(p.cur.Start, p.cur.End)
			p.advance()
			if p.cur.Type == lexer.LParen {
				args, errNode := p.parseArgs()
				if errNode != nil {
					return errNode
				}
				obj = &CallMember{base: base{Sp: sp(obj.Span().Start, p.prevEnd())}, Object: obj, Name: name, NameSpan: nameSpan, Args: args}
			} else {
				obj = &AccessMember{base: base{Sp: sp(obj.Span().Start, nameSpan.End)}, Object: obj, Name: name, NameSpan: nameSpan}
			}
		case lexer.QDot:
			p.advance()
			switch p.cur.Type {
			case lexer.LBracket:
				p.advance()
				key := p.parseAssignment()
				if p.cur.Type != lexer.RBracket {
					return p.badAt(sp(obj.Span().Start, p.cur.End), "", "Expected ']' in indexed access")
				}
				end := p.cur.End
				p.advance()
				obj = &AccessKeyed{base: base{Sp: sp(obj.Span().Start, end)}, Object: obj, Key: key, Optional: true}
			case lexer.LParen:
				args, errNode := p.parseArgs()
				if errNode != nil {
					return errNode
				}
				obj = &CallFunction{base: base{Sp: sp(obj.Span().Start, p.prevEnd())}, Func: obj, Args: args, Optional: true}
			default:
				if p.cur.Type != lexer.Ident {
					return p.badAt(sp(obj.Span().Start, p.cur.End), p.tokenText(p.cur), "Expected identifier after '?.'")
				}
				name := p.cur.Value.(string)
				nameSpan := sp(p.cur.Start, p.cur.End)
				p.advance()
				if p.cur.Type == lexer.LParen {
					args, errNode := p.parseArgs()
					if errNode != nil {
						return errNode
					}
					obj = &CallMember{base: base{Sp: sp(obj.Span().Start, p.prevEnd())}, Object: obj, Name: name, NameSpan: nameSpan, Args: args, Optional: true}
				} else {
					obj = &AccessMember{base: base{Sp: sp(obj.Span().Start, nameSpan.End)}, Object: obj, Name: name, NameSpan: nameSpan, Optional: true}
				}
			}
		case lexer.LBracket:
			p.advance()
			key := p.parseAssignment()
			if p.cur.Type != lexer.RBracket {
				return p.badAt(sp(obj.Span().Start, p.cur.End), "", "Expected ']' in indexed access")
			}
			end := p.cur.End
			p.advance()
			obj = &AccessKeyed{base: base{Sp: sp(obj.Span().Start, end)}, Object: obj, Key: key}
		case lexer.LParen:
			args, errNode := p.parseArgs()
			if errNode != nil {
				return errNode
			}
			obj = &CallFunction{base: base{Sp: sp(obj.Span().Start, p.prevEnd())}, Func: obj, Args: args}
		case lexer.Backtick:
			obj = p.parseTemplateLiteral(obj)
		default:
			return obj
		}
		if _, isBad := obj.(*BadExpression); isBad {
			return obj
		}
	}
}

// parseArgs parses a parenthesized argument list starting at the current
// '(' token. On malformed input it returns a non-nil *BadExpression the
// caller must surface in place of the call it was building (spec.md §8
// "Expected ',' or ')' in argument list").
func (p *parser) parseArgs() ([]Node, *BadExpression) {
	start := p.cur.Start
	p.advance() // consume '('
	var args []Node
	for p.cur.Type != lexer.RParen {
		if p.cur.Type == lexer.EOF {
			return args, p.badAt(sp(start, p.cur.End), "", "Expected ',' or ')' in argument list")
		}
		arg := p.parseAssignment()
		args = append(args, arg)
		if p.cur.Type == lexer.Comma {
			p.advance()
			continue
		}
		if p.cur.Type != lexer.RParen {
			return args, p.badAt(sp(start, p.cur.End), "", "Expected ',' or ')' in argument list")
		}
		break
	}
	p.advance() // consume ')'
	return args, nil
}

// ---- new --------------------------------------------------------------

func (p *parser) parseNewExpression() Node {
	start := p.cur.Start
	p.advance() // consume 'new'
	callee := p.parseMemberNoCall()
	var args []Node
	if p.cur.Type == lexer.LParen {
		var errNode *BadExpression
		args, errNode = p.parseArgs()
		if errNode != nil {
			return errNode
		}
	}
	return &New{base: base{Sp: sp(start, p.prevEnd())}, Func: callee, Args: args}
}

// parseMemberNoCall parses an identifier/member/keyed-access chain without
// consuming any call parentheses, used for `new`'s callee.
func (p *parser) parseMemberNoCall() Node {
	obj := p.parsePrimaryIdentLike()
	for {
		switch p.cur.Type {
		case lexer.Dot:
			p.advance()
			if p.cur.Type != lexer.Ident {
				return p.badAt(sp(obj.Span().Start, p.cur.End), p.tokenText(p.cur), "Expected identifier after '.'")
			}
			name := p.cur.Value.(string)
			nameSpan := sp(p.cur.Start, p.cur.End)
			p.advance()
			obj = &AccessMember{base: base{Sp: sp(obj.Span().Start, nameSpan.End)}, Object: obj, Name: name, NameSpan: nameSpan}
		case lexer.LBracket:
			p.advance()
			key := p.parseAssignment()
			if p.cur.Type != lexer.RBracket {
				return p.badAt(sp(obj.Span().Start, p.cur.End), "", "Expected ']' in indexed access")
			}
			end := p.cur.End
			p.advance()
			obj = &AccessKeyed{base: base{Sp: sp(obj.Span().Start, end)}, Object: obj, Key: key}
		default:
			return obj
		}
	}
}

// parsePrimaryIdentLike parses a bare identifier (as AccessScope/Global)
// for use as a `new` callee root, without any of the call/arrow/keyword
// handling of the full parsePrimary.
func (p *parser) parsePrimaryIdentLike() Node {
	if p.cur.Type != lexer.Ident {
		return p.badAt(sp(p.cur.Start, p.cur.End), p.tokenText(p.cur), "Expected identifier after 'new'")
	}
	name := p.cur.Value.(string)
	nameSpan := sp(p.cur.Start, p.cur.End)
	p.advance()
	if p.globals[name] {
		return &AccessGlobal{base: base{Sp: nameSpan}, Name: name, NameSpan: nameSpan}
	}
	return &AccessScope{base: base{Sp: nameSpan}, Name: name, NameSpan: nameSpan}
}

// ---- $this / $parent scope hops ---------------------------------------

func (p *parser) parseScopeHop() Node {
	start := p.cur.Start
	first := p.cur.Value.(string)
	ancestor := 0
	if first == "$parent" {
		ancestor = 1
	}
	lastDelim := first
	lastEnd := p.cur.End
	p.advance()

	// Consume further ".$parent" hops. Each iteration consumes exactly one
	// '.' together with whatever follows it, so there is nothing to
	// backtrack: if the token after '.' isn't "$parent", that dot is the
	// trailing-name dot and is handled inline below rather than re-read.
	for p.cur.Type == lexer.Dot {
		p.advance() // consume '.'
		if p.cur.Type == lexer.Ident && p.cur.Value.(string) == "$parent" {
			ancestor++
			lastDelim = "$parent"
			lastEnd = p.cur.End
			p.advance()
			continue
		}
		if p.cur.Type != lexer.Ident {
			return p.badAt(sp(start, p.cur.End), p.tokenText(p.cur), fmt.Sprintf("Expected identifier after '%s.'", lastDelim))
		}
		name := p.cur.Value.(string)
		nameSpan := sp(p.cur.Start, p.cur.End)
		p.advance()
		if p.cur.Type == lexer.LParen {
			args, errNode := p.parseArgs()
			if errNode != nil {
				return errNode
			}
			return &CallScope{base: base{Sp: sp(start, p.prevEnd())}, Name: name, NameSpan: nameSpan, Ancestor: ancestor, Args: args}
		}
		return &AccessScope{base: base{Sp: sp(start, nameSpan.End)}, Name: name, NameSpan: nameSpan, Ancestor: ancestor}
	}

	return &AccessThis{base: base{Sp: sp(start, lastEnd)}, Ancestor: ancestor}
}

// ---- Primary ------------------------------------------------------------

func (p *parser) parsePrimary() Node {
	tok := p.cur
	switch tok.Type {
	case lexer.Ident:
		name := tok.Value.(string)
		switch name {
		case "true":
			p.advance()
			return &PrimitiveLiteral{base: base{Sp: sp(tok.Start, tok.End)}, Value: true}
		case "false":
			p.advance()
			return &PrimitiveLiteral{base: base{Sp: sp(tok.Start, tok.End)}, Value: false}
		case "null":
			p.advance()
			return &PrimitiveLiteral{base: base{Sp: sp(tok.Start, tok.End)}, Value: nil}
		case "undefined":
			p.advance()
			return &PrimitiveLiteral{base: base{Sp: sp(tok.Start, tok.End)}, Value: Undefined{}}
		case "this":
			p.advance()
			return &AccessBoundary{base: base{Sp: sp(tok.Start, tok.End)}}
		case "new":
			return p.parseNewExpression()
		case "$this", "$parent":
			return p.parseScopeHop()
		default:
			identStart, identEnd := tok.Start, tok.End
			p.advance()
			if p.cur.Type == lexer.FatArrow {
				p.advance()
				body := p.parseAssignment()
				param := &BindingIdentifier{base: base{Sp: sp(identStart, identEnd)}, Name: name}
				return &ArrowFunction{base: base{Sp: sp(identStart, body.Span().End)}, Params: []*BindingIdentifier{param}, Body: body}
			}
			isGlobal := p.globals[name]
			nameSpan := sp(identStart, identEnd)
			if p.cur.Type == lexer.LParen {
				args, errNode := p.parseArgs()
				if errNode != nil {
					return errNode
				}
				end := p.prevEnd()
				if isGlobal {
					return &CallGlobal{base: base{Sp: sp(identStart, end)}, Name: name, NameSpan: nameSpan, Args: args}
				}
				return &CallScope{base: base{Sp: sp(identStart, end)}, Name: name, NameSpan: nameSpan, Args: args}
			}
			if isGlobal {
				return &AccessGlobal{base: base{Sp: nameSpan}, Name: name, NameSpan: nameSpan}
			}
			return &AccessScope{base: base{Sp: nameSpan}, Name: name, NameSpan: nameSpan}
		}
	case lexer.Number:
		p.advance()
		return &PrimitiveLiteral{base: base{Sp: sp(tok.Start, tok.End)}, Value: tok.Value.(float64)}
	case lexer.String:
		p.advance()
		return &PrimitiveLiteral{base: base{Sp: sp(tok.Start, tok.End)}, Value: tok.Value.(string)}
	case lexer.Backtick:
		return p.parseTemplateLiteral(nil)
	case lexer.LBracket:
		return p.parseArrayLiteral()
	case lexer.LBrace:
		return p.parseObjectLiteral()
	case lexer.LParen:
		if params, rest, ok := p.tryParseArrowParams(); ok {
			if len(params) != 1 || rest != nil {
				return p.badAt(sp(tok.Start, p.cur.End), "", "Arrow functions currently support only a single identifier parameter in the LSP parser")
			}
			body := p.parseAssignment()
			return &ArrowFunction{base: base{Sp: sp(tok.Start, body.Span().End)}, Params: params, Body: body}
		}
		openStart := tok.Start
		p.advance() // consume '('
		inner := p.parseAssignment()
		if p.cur.Type != lexer.RParen {
			return p.badAt(sp(openStart, p.cur.End), "", "Expected ')' to close parenthesized expression")
		}
		closeEnd := p.cur.End
		p.advance()
		return &Paren{base: base{Sp: sp(openStart, closeEnd)}, Expression: inner}
	case lexer.EOF:
		return p.badAt(sp(tok.Start, tok.End), "", "Unexpected token EOF in primary expression")
	case lexer.Ellipsis:
		p.advance()
		return p.badAt(sp(tok.Start, tok.End), "...", "Unexpected token Ellipsis in primary expression")
	default:
		return p.badAt(sp(tok.Start, tok.End), p.tokenText(tok), "Unexpected token in primary expression")
	}
}

func (p *parser) tokenText(tok lexer.Token) string {
	if int(tok.End) <= len(p.source) && tok.Start <= tok.End {
		return p.source[tok.Start:tok.End]
	}
	return ""
}

// ---- Array / object literals -------------------------------------------

func (p *parser) parseArrayLiteral() Node {
	start := p.cur.Start
	p.advance() // '['
	var elements []Node
	for p.cur.Type != lexer.RBracket {
		if p.cur.Type == lexer.Comma {
			elements = append(elements, &PrimitiveLiteral{base: base{Sp: sp(p.cur.Start, p.cur.Start)}, Value: Undefined{}})
			p.advance()
			continue
		}
		if p.cur.Type == lexer.EOF {
			break
		}
		el := p.parseAssignment()
		elements = append(elements, el)
		if p.cur.Type == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if p.cur.Type != lexer.RBracket {
		return p.badAt(sp(start, p.cur.End), "", "Expected ']' to close array literal")
	}
	end := p.cur.End
	p.advance()
	return &ArrayLiteral{base: base{Sp: sp(start, end)}, Elements: elements}
}

func (p *parser) parseObjectLiteral() Node {
	start := p.cur.Start
	p.advance() // '{'
	var keys []string
	var keySpans []span.Span
	var values []Node
	for p.cur.Type != lexer.RBrace {
		var key string
		var keySpan span.Span
		switch p.cur.Type {
		case lexer.Ident:
			key = p.cur.Value.(string)
			keySpan = sp(p.cur.Start, p.cur.End)
			p.advance()
		case lexer.String:
			key = p.cur.Value.(string)
			keySpan = sp(p.cur.Start, p.cur.End)
			p.advance()
		case lexer.Number:
			key = formatNumberKey(p.cur.Value.(float64))
			keySpan = sp(p.cur.Start, p.cur.End)
			p.advance()
		default:
			return p.badAt(sp(start, p.cur.End), p.tokenText(p.cur), "Invalid object literal key; expected identifier, string, or number")
		}
		if p.cur.Type != lexer.Colon {
			return p.badAt(sp(start, p.cur.End), "", "Expected ':' after object literal key")
		}
		p.advance()
		val := p.parseAssignment()
		keys = append(keys, key)
		keySpans = append(keySpans, keySpan)
		values = append(values, val)
		if p.cur.Type == lexer.Comma {
			p.advance()
			continue
		}
		break
	}
	if p.cur.Type != lexer.RBrace {
		return p.badAt(sp(start, p.cur.End), "", "Expected ',' or '}' in object literal")
	}
	end := p.cur.End
	p.advance()
	return &ObjectLiteral{base: base{Sp: sp(start, end)}, Keys: keys, KeySpans: keySpans, Values: values}
}

func formatNumberKey(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// ---- Template literals --------------------------------------------------

func (p *parser) parseTemplateLiteral(tag Node) Node {
	startTok := p.cur
	startPos := startTok.Start

	var cooked, raw []string
	var exprs []Node

	for {
		chunkCooked, rs, re, stoppedAtHole, terminated := p.sc.ScanTemplateChunk()
		cooked = append(cooked, chunkCooked)
		raw = append(raw, p.source[rs:re])

		if !terminated {
			return p.badAt(sp(startPos, uint32(len(p.source))), "", "Unterminated template literal")
		}

		if !stoppedAtHole {
			p.sc.SetPos(re + 1) // consume closing backtick
			break
		}

		p.sc.SetPos(re + 2) // consume '${'
		p.advance()
		innerExpr := p.parseAssignment()
		exprs = append(exprs, innerExpr)
		if p.cur.Type != lexer.RBrace {
			return p.badAt(sp(startPos, p.cur.End), "", "Expected '}' to close template expression")
		}
		p.sc.SetPos(int(p.cur.End))
	}

	end := uint32(p.sc.Pos())
	p.advance()

	if tag != nil {
		return &TaggedTemplate{base: base{Sp: sp(tag.Span().Start, end)}, Cooked: cooked, Raw: raw, Expressions: exprs, Tag: tag}
	}
	return &Template{base: base{Sp: sp(startPos, end)}, Cooked: cooked, Raw: raw, Expressions: exprs}
}

// ---- Arrow-function parameter lookahead --------------------------------

// tryParseArrowParams speculatively parses a parenthesized arrow-function
// parameter list starting at the current '(' token. On failure it leaves
// the parser state exactly as it found it.
func (p *parser) tryParseArrowParams() ([]*BindingIdentifier, *BindingIdentifier, bool) {
	saved := *p
	savedScannerPos := p.sc.Pos()

	restore := func() {
		*p = saved
		p.sc.SetPos(savedScannerPos)
	}

	p.advance() // consume '('
	var params []*BindingIdentifier
	var rest *BindingIdentifier

	for p.cur.Type != lexer.RParen {
		if p.cur.Type == lexer.Ellipsis {
			p.advance()
			if p.cur.Type != lexer.Ident || lexer.IsKeyword(p.cur.Value.(string)) {
				restore()
				return nil, nil, false
			}
			rest = &BindingIdentifier{base: base{Sp: sp(p.cur.Start, p.cur.End)}, Name: p.cur.Value.(string)}
			p.advance()
			break
		}
		if p.cur.Type != lexer.Ident || lexer.IsKeyword(p.cur.Value.(string)) {
			restore()
			return nil, nil, false
		}
		params = append(params, &BindingIdentifier{base: base{Sp: sp(p.cur.Start, p.cur.End)}, Name: p.cur.Value.(string)})
		p.advance()
		if p.cur.Type == lexer.Comma {
			p.advance()
			continue
		}
		break
	}

	if p.cur.Type != lexer.RParen {
		restore()
		return nil, nil, false
	}
	p.advance() // consume ')'

	if p.cur.Type != lexer.FatArrow {
		restore()
		return nil, nil, false
	}
	p.advance() // consume '=>'

	return params, rest, true
}
