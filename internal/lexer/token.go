// Package lexer implements the scanner (S1): a token stream over
// expression text that preserves byte-accurate spans and never throws —
// malformed input produces tokens flagged `Unterminated` instead (spec.md
// §4.1).
package lexer

// Type is the closed set of token kinds the scanner produces.
type Type int

const (
	EOF Type = iota
	Ident
	Number
	String
	Backtick // opens/continues a template literal; parser reads raw chunks

	// Punctuation / operators (spec.md §6).
	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	Percent  // %
	StarStar // **

	EqEq   // ==
	EqEqEq // ===
	NotEq  // !=
	NotEqEq // !==
	Lt     // <
	Lte    // <=
	Gt     // >
	Gte    // >=

	AmpAmp   // &&
	PipePipe // ||
	QQ       // ??

	Eq      // =
	PlusEq  // +=
	MinusEq // -=
	StarEq  // *=
	SlashEq // /=

	FatArrow   // =>
	PlusPlus   // ++
	MinusMinus // --

	Amp  // &
	Pipe // |
	Bang // !

	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }

	Comma     // ,
	Colon     // :
	Semicolon // ;
	Dot       // .
	Question  // ?
	QDot      // ?.
	Ellipsis  // ...
)

// Token is one lexeme: its type, its byte span, and (for literals) its
// decoded value.
type Token struct {
	Type          Type
	Start, End    uint32
	Value         any // float64 for Number, string for String (decoded)
	Unterminated  bool
}

// keywords is the reserved-word set recognized over Ident tokens
// (spec.md §4.1 "Recognized tokens").
var keywords = map[string]bool{
	"new": true, "typeof": true, "void": true, "instanceof": true,
	"in": true, "of": true, "this": true, "$this": true, "$parent": true,
	"true": true, "false": true, "null": true, "undefined": true,
}

// IsKeyword reports whether an identifier's text is one of the reserved
// words the parser treats specially.
func IsKeyword(name string) bool { return keywords[name] }
