// Package helpers holds small conversions the LSP method packages
// share: LSP line/UTF-16-column positions and ranges against this
// engine's byte-offset spans, and the range-intersection test code
// actions use to decide which diagnostics/entities fall in a
// requested range (grounded on the teacher's own lsp/helpers
// package).
package helpers

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/position"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
)

// OffsetFromPosition converts an LSP line/UTF-16-column position into
// a byte offset against content, the inverse of SpanToRange.
func OffsetFromPosition(content string, pos protocol.Position) uint32 {
	lineStart := 0
	line := 0
	for i := 0; i < len(content) && line < int(pos.Line); i++ {
		if content[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	rest := content[lineStart:]
	return uint32(lineStart + position.UTF16ToByteOffset(rest, int(pos.Character)))
}

// SpanToRange converts a byte-offset span into an LSP line/UTF-16
// column range against content.
func SpanToRange(content string, sp span.Span) protocol.Range {
	startLine, startCol := position.LineCol(content, int(sp.Start))
	endLine, endCol := position.LineCol(content, int(sp.End))
	return protocol.Range{
		Start: protocol.Position{Line: uint32(startLine), Character: uint32(startCol)},
		End:   protocol.Position{Line: uint32(endLine), Character: uint32(endCol)},
	}
}

// RangesIntersect reports whether a and b share at least one position.
func RangesIntersect(a, b protocol.Range) bool {
	if comparePosition(a.End, b.Start) < 0 || comparePosition(b.End, a.Start) < 0 {
		return false
	}
	return true
}

func comparePosition(a, b protocol.Position) int {
	if a.Line != b.Line {
		if a.Line < b.Line {
			return -1
		}
		return 1
	}
	switch {
	case a.Character < b.Character:
		return -1
	case a.Character > b.Character:
		return 1
	default:
		return 0
	}
}

func BoolPtr(b bool) *bool    { return &b }
func StrPtr(s string) *string { return &s }
