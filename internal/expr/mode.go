package expr

import "github.com/aurelia/aurelia-ls-sub004/internal/span"

// Mode selects the grammar entry point Parse uses (spec.md §4.2).
type Mode int

const (
	// ModeNone always yields a BadExpression explaining the invalid mode.
	ModeNone Mode = iota
	// ModeIsProperty parses a full assignment-level expression with
	// value-converter/binding-behavior tails.
	ModeIsProperty
	// ModeIsFunction behaves identically to ModeIsProperty over the core
	// grammar (spec.md §4.2: "any divergence is explicit").
	ModeIsFunction
	// ModeIsIterator additionally accepts a ForOfStatement
	// (`declaration of iterable`), used for `repeat.for`.
	ModeIsIterator
	// ModeInterpolation splits HTML text on `${...}` holes and parses
	// each hole as ModeIsProperty.
	ModeInterpolation
	// ModeIsCustom returns the source verbatim as an opaque Custom node.
	ModeIsCustom
)

// Options configures one Parse call.
type Options struct {
	// BaseSpan rebases every produced span by BaseSpan.Start, applied
	// exactly once at the top (spec.md §3 "Rebasing composes once").
	BaseSpan *span.Span
	// File identifies the span.FileId every produced span belongs to.
	File span.FileId
	// Globals is the set of identifier names the parser treats as known
	// globals: member access on one becomes AccessGlobal, a call becomes
	// CallGlobal (spec.md §4.2 "Globals vs scope").
	Globals map[string]bool
}
