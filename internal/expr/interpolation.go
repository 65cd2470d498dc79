package expr

// splitInterpolationHole finds the next unescaped `${` in text at or after
// from and scans forward to its matching `}`, tracking brace depth and
// honoring single/double/backtick string literals only inside the hole
// (spec.md §4.2 "Interpolation parse"). ok is false both when there is no
// more `${` and when a `${` found has no matching `}` — an unterminated
// hole degrades the whole text to plain, non-interpolated text.
func splitInterpolationHole(text string, from int) (holeStart, exprStart, exprEnd int, ok bool, unterminated bool) {
	for i := from; i < len(text)-1; i++ {
		if text[i] != '$' || text[i+1] != '{' {
			continue
		}
		if i > 0 && text[i-1] == '\\' {
			continue // \${ is literal
		}
		depth := 1
		j := i + 2
		var quote byte
		for j < len(text) && depth > 0 {
			c := text[j]
			switch {
			case quote != 0:
				if c == '\\' && j+1 < len(text) {
					j++
				} else if c == quote {
					quote = 0
				}
			case c == '\'' || c == '"' || c == '`':
				quote = c
			case c == '{':
				depth++
			case c == '}':
				depth--
				if depth == 0 {
					return i, i + 2, j, true, false
				}
			}
			j++
		}
		return i, i + 2, len(text), false, true
	}
	return 0, 0, 0, false, false
}

// splitInterpolation implements splitInterpolationText: it returns the
// literal parts and inner-expression byte ranges of every `${...}` hole in
// text, or ok=false if text contains no holes or an unterminated one (in
// which case the caller treats the whole text as plain, per spec.md §4.2).
func splitInterpolation(text string) (parts []string, holeExprStarts, holeExprEnds []int, ok bool) {
	pos := 0
	found := false
	for {
		holeStart, exprStart, exprEnd, holeOK, unterminated := splitInterpolationHole(text, pos)
		if unterminated {
			return nil, nil, nil, false
		}
		if !holeOK {
			parts = append(parts, text[pos:])
			break
		}
		found = true
		parts = append(parts, text[pos:holeStart])
		holeExprStarts = append(holeExprStarts, exprStart)
		holeExprEnds = append(holeExprEnds, exprEnd)
		pos = exprEnd + 1 // past the hole's closing brace
	}
	if !found {
		return parts, holeExprStarts, holeExprEnds, false
	}
	return parts, holeExprStarts, holeExprEnds, true
}
