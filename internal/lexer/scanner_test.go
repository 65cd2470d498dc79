package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scanAll(src string) []Token {
	s := New(src)
	var toks []Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	return toks
}

func TestScanIdentifierAndKeyword(t *testing.T) {
	toks := scanAll("foo $this bar")
	assert.Equal(t, Ident, toks[0].Type)
	assert.Equal(t, "foo", toks[0].Value)
	assert.Equal(t, Ident, toks[1].Type)
	assert.Equal(t, "$this", toks[1].Value)
	assert.True(t, IsKeyword("$this"))
	assert.False(t, IsKeyword("bar"))
}

func TestScanNumberForms(t *testing.T) {
	toks := scanAll("1 3.14 .5 1e10 1e+5 2e")
	assert.Equal(t, float64(1), toks[0].Value)
	assert.Equal(t, float64(3.14), toks[1].Value)
	assert.Equal(t, float64(.5), toks[2].Value)
	assert.Equal(t, float64(1e10), toks[3].Value)
	assert.Equal(t, float64(1e5), toks[4].Value)
	// "2e" backtracks: the trailing 'e' is not consumed as an exponent.
	assert.Equal(t, float64(2), toks[5].Value)
	assert.Equal(t, uint32(1), toks[5].End-toks[5].Start)
}

func TestScanStringEscapesAndUnterminated(t *testing.T) {
	toks := scanAll(`'a\nb' "c\"d" 'no close`)
	assert.Equal(t, "a\nb", toks[0].Value)
	assert.False(t, toks[0].Unterminated)
	assert.Equal(t, `c"d`, toks[1].Value)
	assert.True(t, toks[2].Unterminated)
}

func TestScanMultiCharPunctuation(t *testing.T) {
	toks := scanAll("=> ?. ?? === !== <= >= ... && ||")
	types := []Type{FatArrow, QDot, QQ, EqEqEq, NotEqEq, Lte, Gte, Ellipsis, AmpAmp, PipePipe}
	for i, want := range types {
		assert.Equal(t, want, toks[i].Type, "token %d", i)
	}
}

func TestScanDotVsNumberVsEllipsis(t *testing.T) {
	toks := scanAll(". .5 ...")
	assert.Equal(t, Dot, toks[0].Type)
	assert.Equal(t, Number, toks[1].Type)
	assert.Equal(t, Ellipsis, toks[2].Type)
}

func TestScanUnrecognizedByteRecovers(t *testing.T) {
	toks := scanAll("foo @ bar")
	assert.Equal(t, Ident, toks[0].Type)
	assert.Equal(t, EOF, toks[1].Type)
	assert.True(t, toks[1].Unterminated)
	assert.Equal(t, Ident, toks[2].Type)
	assert.Equal(t, "bar", toks[2].Value)
}

func TestScanTemplateChunkStopsAtHoleAndBacktick(t *testing.T) {
	s := New("abc${x}def`")
	cooked, start, end, stoppedAtHole, terminated := s.ScanTemplateChunk()
	assert.Equal(t, "abc", cooked)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
	assert.True(t, stoppedAtHole)
	assert.True(t, terminated)

	s2 := New("def`")
	cooked2, _, _, stoppedAtHole2, terminated2 := s2.ScanTemplateChunk()
	assert.Equal(t, "def", cooked2)
	assert.False(t, stoppedAtHole2)
	assert.True(t, terminated2)
}

func TestScanTemplateChunkUnterminated(t *testing.T) {
	s := New("abc")
	cooked, _, _, stoppedAtHole, terminated := s.ScanTemplateChunk()
	assert.Equal(t, "abc", cooked)
	assert.False(t, stoppedAtHole)
	assert.False(t, terminated)
}

func TestScanTemplateChunkEscapedDollarIsLiteral(t *testing.T) {
	s := New(`a\${b}` + "`")
	cooked, _, _, stoppedAtHole, terminated := s.ScanTemplateChunk()
	assert.Equal(t, "a${b}", cooked)
	assert.False(t, stoppedAtHole)
	assert.True(t, terminated)
}
