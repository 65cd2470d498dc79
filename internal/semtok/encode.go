package semtok

import (
	"fmt"
	"math"

	"github.com/aurelia/aurelia-ls-sub004/internal/position"
)

// Intermediate is one token in line/UTF-16-column form, the shape the
// LSP delta-encoding algorithm consumes (grounded on the teacher's
// SemanticTokenIntermediate).
type Intermediate struct {
	Line           int
	StartChar      int
	Length         int
	TokenType      int
	TokenModifiers int
}

// ToIntermediates converts byte-offset Tokens into line/UTF-16-column
// Intermediates against source, the document text the spans were cut
// from. Tokens must already be sorted by byte offset (Collect's
// contract).
func ToIntermediates(tokens []Token, source string) []Intermediate {
	out := make([]Intermediate, 0, len(tokens))
	for _, t := range tokens {
		line, col := position.LineCol(source, int(t.Span.Start))
		length := position.StringLengthUTF16(source[t.Span.Start:t.Span.End])
		out = append(out, Intermediate{
			Line:      line,
			StartChar: col,
			Length:    length,
			TokenType: legendIndex[t.Type],
		})
	}
	return out
}

// appendValidatedInt guards against the data LSP's uint32 wire format
// can't represent; a negative or over-range value here is an internal
// invariant failure (spec.md §7), not a recoverable condition.
func appendValidatedInt(data []uint32, value int, fieldName string, tokenIndex int) ([]uint32, error) {
	if value < 0 {
		return nil, fmt.Errorf("semtok: token %d: %s %d is negative", tokenIndex, fieldName, value)
	}
	if value > math.MaxUint32 {
		return nil, fmt.Errorf("semtok: token %d: %s %d exceeds uint32 limit", tokenIndex, fieldName, value)
	}
	return append(data, uint32(value)), nil
}

// Encode delta-encodes intermediates per the LSP semanticTokens wire
// format: each token is 5 uint32s (deltaLine, deltaStartChar, length,
// tokenType, tokenModifiers) relative to the previous token.
func Encode(intermediates []Intermediate) ([]uint32, error) {
	data := make([]uint32, 0, len(intermediates)*5)
	prevLine, prevStartChar := 0, 0

	for i, tok := range intermediates {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStartChar
		}

		var err error
		for _, field := range []struct {
			name  string
			value int
		}{
			{"deltaLine", deltaLine},
			{"deltaStart", deltaStart},
			{"length", tok.Length},
			{"tokenType", tok.TokenType},
			{"tokenModifiers", tok.TokenModifiers},
		} {
			data, err = appendValidatedInt(data, field.value, field.name, i)
			if err != nil {
				return nil, err
			}
		}

		prevLine, prevStartChar = tok.Line, tok.StartChar
	}
	return data, nil
}

// Edit is one minimal delta edit: replace DeleteCount uint32s starting
// at Start with Data.
type Edit struct {
	Start       uint32
	DeleteCount uint32
	Data        []uint32
}

// ComputeDelta finds the minimal single edit transforming oldData into
// newData by common-prefix/common-suffix trimming (grounded on the
// teacher's ComputeDelta). Returns nil when the two are identical.
func ComputeDelta(oldData, newData []uint32) []Edit {
	oldLen, newLen := len(oldData), len(newData)
	minLen := oldLen
	if newLen < minLen {
		minLen = newLen
	}

	prefixLen := 0
	for prefixLen < minLen && oldData[prefixLen] == newData[prefixLen] {
		prefixLen++
	}
	if prefixLen == oldLen && oldLen == newLen {
		return nil
	}

	suffixLen := 0
	for suffixLen < minLen-prefixLen && oldData[oldLen-1-suffixLen] == newData[newLen-1-suffixLen] {
		suffixLen++
	}

	start := prefixLen
	deleteCount := oldLen - prefixLen - suffixLen
	insert := newData[prefixLen : newLen-suffixLen]
	if deleteCount == 0 && len(insert) == 0 {
		return nil
	}

	dataCopy := make([]uint32, len(insert))
	copy(dataCopy, insert)
	return []Edit{{Start: uint32(start), DeleteCount: uint32(deleteCount), Data: dataCopy}}
}

// ApplyEdits applies edits to oldData, returning the result. Used to
// verify the round-trip applyEdits(old, computeDelta(old, new)) == new.
func ApplyEdits(oldData []uint32, edits []Edit) []uint32 {
	if len(edits) == 0 {
		result := make([]uint32, len(oldData))
		copy(result, oldData)
		return result
	}

	edit := edits[0]
	start, deleteCount := int(edit.Start), int(edit.DeleteCount)
	newLen := len(oldData) - deleteCount + len(edit.Data)
	result := make([]uint32, newLen)
	copy(result[:start], oldData[:start])
	copy(result[start:start+len(edit.Data)], edit.Data)
	copy(result[start+len(edit.Data):], oldData[start+deleteCount:])
	return result
}
