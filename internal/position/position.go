// Package position converts between LSP's UTF-16 code unit positions and
// Go's UTF-8 byte offsets.
package position

import "unicode/utf8"

// UTF16ToByteOffset converts a UTF-16 code unit offset to a byte offset in a
// string. LSP positions use UTF-16 code units, but Go strings are UTF-8
// byte sequences. Handles surrogate pairs (characters above U+FFFF count as
// 2 UTF-16 units).
func UTF16ToByteOffset(s string, utf16Col int) int {
	if utf16Col <= 0 {
		return 0
	}

	units := 0
	byteOffset := 0

	for byteOffset < len(s) && units < utf16Col {
		r, size := utf8.DecodeRuneInString(s[byteOffset:])
		if r == utf8.RuneError && size == 1 {
			byteOffset++
			units++
			continue
		}

		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}

		byteOffset += size
	}

	return byteOffset
}

// ByteOffsetToUTF16 converts a byte offset to a UTF-16 code unit offset in a
// string. Inverse of UTF16ToByteOffset.
func ByteOffsetToUTF16(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(s) {
		byteOffset = len(s)
	}

	utf16Count := 0
	for _, r := range s[:byteOffset] {
		if r > 0xFFFF {
			utf16Count += 2
		} else {
			utf16Count++
		}
	}
	return utf16Count
}

// StringLengthUTF16 returns the length of a string in UTF-16 code units.
func StringLengthUTF16(s string) int {
	utf16Count := 0
	for _, r := range s {
		if r > 0xFFFF {
			utf16Count += 2
		} else {
			utf16Count++
		}
	}
	return utf16Count
}

// LineCol converts a byte offset into a 0-based (line, UTF-16 column) pair
// against the given source text.
func LineCol(s string, byteOffset int) (line, col int) {
	if byteOffset > len(s) {
		byteOffset = len(s)
	}
	lineStart := 0
	for i := 0; i < byteOffset; i++ {
		if s[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = ByteOffsetToUTF16(s[lineStart:byteOffset], byteOffset-lineStart)
	return line, col
}
