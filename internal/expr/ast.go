// Package expr implements the Pratt-style expression parser (S2) and its
// AST over the small binding-expression language: identifiers, scope
// hops, member/keyed access, optional chains, call forms, literals,
// unary/binary/conditional/assignment, arrow functions, tagged
// templates, value-converter and binding-behavior tails, and
// interpolation (spec.md §4.2).
package expr

import "github.com/aurelia/aurelia-ls-sub004/internal/span"

// Kind is the closed set of AST node variants.
type Kind string

const (
	KindAccessScope          Kind = "AccessScope"
	KindAccessMember         Kind = "AccessMember"
	KindAccessKeyed          Kind = "AccessKeyed"
	KindAccessThis           Kind = "AccessThis"
	KindAccessBoundary       Kind = "AccessBoundary"
	KindAccessGlobal         Kind = "AccessGlobal"
	KindCallScope            Kind = "CallScope"
	KindCallMember           Kind = "CallMember"
	KindCallGlobal           Kind = "CallGlobal"
	KindCallFunction         Kind = "CallFunction"
	KindNew                  Kind = "New"
	KindUnary                Kind = "Unary"
	KindBinary               Kind = "Binary"
	KindConditional          Kind = "Conditional"
	KindAssign               Kind = "Assign"
	KindArrowFunction        Kind = "ArrowFunction"
	KindArrayLiteral         Kind = "ArrayLiteral"
	KindObjectLiteral        Kind = "ObjectLiteral"
	KindTemplate             Kind = "Template"
	KindTaggedTemplate       Kind = "TaggedTemplate"
	KindInterpolation        Kind = "Interpolation"
	KindPrimitiveLiteral     Kind = "PrimitiveLiteral"
	KindBindingIdentifier    Kind = "BindingIdentifier"
	KindArrayBindingPattern  Kind = "ArrayBindingPattern"
	KindObjectBindingPattern Kind = "ObjectBindingPattern"
	KindBindingPatternDefault Kind = "BindingPatternDefault"
	KindForOfStatement       Kind = "ForOfStatement"
	KindParen                Kind = "Paren"
	KindValueConverter       Kind = "ValueConverter"
	KindBindingBehavior      Kind = "BindingBehavior"
	KindCustom               Kind = "Custom"
	KindBadExpression        Kind = "BadExpression"
)

// Node is implemented by every AST variant. The set of implementers is
// closed (spec.md §9 "Closed unions over virtual dispatch") — callers
// switch exhaustively on NodeKind().
type Node interface {
	Span() span.Span
	NodeKind() Kind
}

type base struct{ Sp span.Span }

func (b base) Span() span.Span { return b.Sp }

// Undefined is the sentinel PrimitiveLiteral value for `undefined` and
// for array-literal holes (spec.md §4.2).
type Undefined struct{}

// AccessScope is `name`, or `$this.name`, or N copies of `$parent.`
// followed by `name`. Ancestor counts the `$parent` hops.
type AccessScope struct {
	base
	Name     string
	NameSpan span.Span
	Ancestor int
}

func (*AccessScope) NodeKind() Kind { return KindAccessScope }

// AccessMember is `object.name` or `object?.name`.
type AccessMember struct {
	base
	Object   Node
	Name     string
	NameSpan span.Span
	Optional bool
}

func (*AccessMember) NodeKind() Kind { return KindAccessMember }

// AccessKeyed is `object[key]` or `object?.[key]`.
type AccessKeyed struct {
	base
	Object   Node
	Key      Node
	Optional bool
}

func (*AccessKeyed) NodeKind() Kind { return KindAccessKeyed }

// AccessThis is `$this` (Ancestor==0) or one-or-more `$parent`s with no
// trailing member (Ancestor==N).
type AccessThis struct {
	base
	Ancestor int
}

func (*AccessThis) NodeKind() Kind { return KindAccessThis }

// AccessBoundary is bare `this`: the boundary between the expression
// scope and the enclosing lexical JS scope. It never participates in
// scope-hop resolution.
type AccessBoundary struct{ base }

func (*AccessBoundary) NodeKind() Kind { return KindAccessBoundary }

// AccessGlobal is member access rooted at a known global identifier
// (`Math`, `JSON`, ...).
type AccessGlobal struct {
	base
	Name     string
	NameSpan span.Span
}

func (*AccessGlobal) NodeKind() Kind { return KindAccessGlobal }

// CallScope is `name(args)` with Ancestor `$parent` hops, resolved
// against scope (not a known global).
type CallScope struct {
	base
	Name     string
	NameSpan span.Span
	Ancestor int
	Args     []Node
	Optional bool
}

func (*CallScope) NodeKind() Kind { return KindCallScope }

// CallMember is `object.name(args)` or with an optional chain segment.
type CallMember struct {
	base
	Object       Node
	Name         string
	NameSpan     span.Span
	Args         []Node
	Optional     bool // the `.name` segment was reached via `?.`
	OptionalCall bool // the call itself is `?.(`
}

func (*CallMember) NodeKind() Kind { return KindCallMember }

// CallGlobal is a call of a known global identifier, e.g. `parseInt(x)`.
type CallGlobal struct {
	base
	Name     string
	NameSpan span.Span
	Args     []Node
}

func (*CallGlobal) NodeKind() Kind { return KindCallGlobal }

// CallFunction is calling the result of an arbitrary expression, e.g.
// `(fn())()`.
type CallFunction struct {
	base
	Func     Node
	Args     []Node
	Optional bool
}

func (*CallFunction) NodeKind() Kind { return KindCallFunction }

// New is `new Foo(args)`; bare `new Foo` has Args == nil/empty.
type New struct {
	base
	Func Node
	Args []Node
}

func (*New) NodeKind() Kind { return KindNew }

// Unary is a prefix (or, for ++/--, potentially postfix) unary
// operation.
type Unary struct {
	base
	Op      string
	Operand Node
	Prefix  bool
}

func (*Unary) NodeKind() Kind { return KindUnary }

// Binary is a left-associative (except `**`) binary operation.
type Binary struct {
	base
	Op    string
	Left  Node
	Right Node
}

func (*Binary) NodeKind() Kind { return KindBinary }

// Conditional is the `cond ? yes : no` ternary.
type Conditional struct {
	base
	Cond Node
	Yes  Node
	No   Node
}

func (*Conditional) NodeKind() Kind { return KindConditional }

// Assign is a (possibly compound) assignment; Target is restricted to
// assignable node kinds (spec.md §4.2 "Assignment targets").
type Assign struct {
	base
	Op     string // "=", "+=", "-=", "*=", "/="
	Target Node
	Value  Node
}

func (*Assign) NodeKind() Kind { return KindAssign }

// ArrowFunction is a single-identifier, parenthesized-list, or
// rest-parameter arrow function.
type ArrowFunction struct {
	base
	Params    []*BindingIdentifier
	RestParam *BindingIdentifier // nil if no rest parameter
	Body      Node
}

func (*ArrowFunction) NodeKind() Kind { return KindArrowFunction }

// ArrayLiteral is `[a, b, c]`; holes are modeled as elements of kind
// PrimitiveLiteral{Value: Undefined{}}.
type ArrayLiteral struct {
	base
	Elements []Node
}

func (*ArrayLiteral) NodeKind() Kind { return KindArrayLiteral }

// ObjectLiteral is `{ key: value, ... }`.
type ObjectLiteral struct {
	base
	Keys     []string
	KeySpans []span.Span
	Values   []Node
}

func (*ObjectLiteral) NodeKind() Kind { return KindObjectLiteral }

// Template is an untagged template literal. Cooked has
// len(Expressions)+1 entries (spec.md §3 invariant (d)).
type Template struct {
	base
	Cooked      []string
	Raw         []string
	Expressions []Node
}

func (*Template) NodeKind() Kind { return KindTemplate }

// TaggedTemplate is a tagged template literal, e.g. `tag\`...${x}...\``.
type TaggedTemplate struct {
	base
	Cooked      []string
	Raw         []string
	Expressions []Node
	Tag         Node
}

func (*TaggedTemplate) NodeKind() Kind { return KindTaggedTemplate }

// Interpolation is HTML text with `${...}` holes. len(Parts) ==
// len(Expressions)+1 (spec.md §3 invariant (c)).
type Interpolation struct {
	base
	Parts       []string
	Expressions []Node
}

func (*Interpolation) NodeKind() Kind { return KindInterpolation }

// PrimitiveLiteral covers number, string, boolean, null, and undefined
// literals (and array-literal holes).
type PrimitiveLiteral struct {
	base
	Value any // float64 | string | bool | nil | Undefined{}
}

func (*PrimitiveLiteral) NodeKind() Kind { return KindPrimitiveLiteral }

// NewPrimitiveLiteral builds a PrimitiveLiteral node directly, for
// callers outside the parser that need to synthesize a literal node
// with a known span — e.g. the linker's static set-property
// instructions, whose "value" is the attribute's literal text rather
// than something the S2 parser ever sees.
func NewPrimitiveLiteral(value any, sp span.Span) *PrimitiveLiteral {
	return &PrimitiveLiteral{base: base{Sp: sp}, Value: value}
}

// BindingIdentifier is a plain identifier appearing in a binding
// position (arrow-function parameter, for-of declaration, destructuring
// leaf).
type BindingIdentifier struct {
	base
	Name string
}

func (*BindingIdentifier) NodeKind() Kind { return KindBindingIdentifier }

// ArrayBindingPattern is `[a, b, ...rest]` in a destructuring position.
type ArrayBindingPattern struct {
	base
	Elements []Node
}

func (*ArrayBindingPattern) NodeKind() Kind { return KindArrayBindingPattern }

// ObjectBindingPattern is `{a, b: c}` in a destructuring position.
type ObjectBindingPattern struct {
	base
	Keys     []string
	Elements []Node
}

func (*ObjectBindingPattern) NodeKind() Kind { return KindObjectBindingPattern }

// BindingPatternDefault is `target = default` inside a destructuring
// pattern.
type BindingPatternDefault struct {
	base
	Target  Node
	Default Node
}

func (*BindingPatternDefault) NodeKind() Kind { return KindBindingPatternDefault }

// ForOfStatement is `declaration of iterable`, the iterator form parsed
// in mode IsIterator (`repeat.for`).
type ForOfStatement struct {
	base
	Declaration Node
	Iterable    Node
}

func (*ForOfStatement) NodeKind() Kind { return KindForOfStatement }

// Paren is an explicit parenthesized expression; never collapsed into
// its inner expression (spec.md §4.2 "Primary forms").
type Paren struct {
	base
	Expression Node
}

func (*Paren) NodeKind() Kind { return KindParen }

// ValueConverter is `expression | name[:arg[:arg...]]`.
type ValueConverter struct {
	base
	Name       string
	NameSpan   span.Span
	Args       []Node
	Expression Node
}

func (*ValueConverter) NodeKind() Kind { return KindValueConverter }

// BindingBehavior is `expression & name[:arg[:arg...]]`.
type BindingBehavior struct {
	base
	Name       string
	NameSpan   span.Span
	Args       []Node
	Expression Node
}

func (*BindingBehavior) NodeKind() Kind { return KindBindingBehavior }

// Custom is returned verbatim by mode IsCustom; the core never
// interprets its contents.
type Custom struct {
	base
	Text string
}

func (*Custom) NodeKind() Kind { return KindCustom }

// TraceEntry records one step of how a BadExpression's provenance was
// produced. The schema beyond `By` is intentionally loose (spec.md §9
// Open Question (b)).
type TraceEntry struct {
	By string
}

// Origin carries diagnostic provenance for a BadExpression.
type Origin struct {
	Trace []TraceEntry
}

// BadExpression is an in-tree, first-class parse failure: it never
// propagates as a Go error, so that malformed input still yields a
// structurally valid AST for completion/hover to operate on (spec.md §9
// "BadExpression in tree").
type BadExpression struct {
	base
	Text    string
	Message string
	Origin  *Origin
}

func (*BadExpression) NodeKind() Kind { return KindBadExpression }

// parseOrigin builds the standard Origin for a parser-raised
// BadExpression.
func parseOrigin() *Origin {
	return &Origin{Trace: []TraceEntry{{By: "parse"}}}
}
