package patterns

import (
	"fmt"
	"sync"
)

// Registry holds ordered pattern definitions and memoizes analysis
// results by raw attribute name. Registration is only legal before the
// first call to Analyze; after that the registry is frozen (spec.md
// §4.3 "the registry is frozen and further registerPattern calls
// fail").
type Registry struct {
	mu       sync.RWMutex
	patterns []Pattern
	frozen   bool
	cache    map[string]Result
}

// NewRegistry creates an empty registry seeded with the common patterns
// (spec.md §4.3 "Common patterns"): `PART.PART`, `:PART`, `@PART`, and
// the `@PART:PART` modifier variant.
func NewRegistry() *Registry {
	r := &Registry{cache: make(map[string]Result)}
	r.RegisterPattern("PART.PART", targetCommandHandler)
	r.RegisterPattern(":PART", bindImplicitHandler)
	r.RegisterPattern("@PART", triggerImplicitHandler)
	r.RegisterPattern("@PART:PART", triggerModifierHandler)
	return r
}

// RegisterPattern adds a pattern template and its handler to the
// registry, in registration order (earliest registration wins ties).
// It panics if the registry is already frozen, mirroring the teacher's
// the-caller-made-a-programming-error-not-a-runtime-error convention
// for registry misuse.
func (r *Registry) RegisterPattern(template string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		panic(fmt.Sprintf("patterns: RegisterPattern(%q) called after the registry was frozen by first use", template))
	}
	r.patterns = append(r.patterns, Pattern{
		Template: template,
		Segments: ParseTemplate(template),
		Handler:  handler,
	})
}

// Analyze matches name against the registered patterns in precedence
// order and invokes the winning pattern's handler. Results are
// memoized by raw name, but the handler still runs on every call, even
// a cache hit, since handler output can depend on values beyond the
// match shape (spec.md §4.3 "Handlers are invoked even on cache hits").
// The registry freezes on first call regardless of whether a pattern
// actually matched.
func (r *Registry) Analyze(name string) (Result, bool) {
	r.mu.Lock()
	r.frozen = true
	pat, parts, ok := r.bestMatch(name)
	r.mu.Unlock()
	if !ok {
		return Result{}, false
	}

	result := pat.Handler(name, parts)
	result.Syntax = pat.Template
	result.Parts = parts

	r.mu.Lock()
	r.cache[name] = result
	r.mu.Unlock()
	return result, true
}

// bestMatch finds the highest-precedence pattern matching name. Caller
// must hold r.mu.
func (r *Registry) bestMatch(name string) (Pattern, []string, bool) {
	var best Pattern
	var bestParts []string
	found := false
	for _, p := range r.patterns {
		parts, ok := match(p, name)
		if !ok {
			continue
		}
		if !found || better(p, best) {
			best, bestParts, found = p, parts, true
		}
	}
	return best, bestParts, found
}

// better reports whether candidate outranks incumbent under spec.md
// §4.3's precedence rule: (a) more static characters wins; (b) more
// symbol runs wins; (c) earlier registration wins ties — callers only
// ever call better with incumbent set from an earlier registration, so
// a false return preserves it.
func better(candidate, incumbent Pattern) bool {
	if candidate.staticChars() != incumbent.staticChars() {
		return candidate.staticChars() > incumbent.staticChars()
	}
	if candidate.symbolRuns() != incumbent.symbolRuns() {
		return candidate.symbolRuns() > incumbent.symbolRuns()
	}
	return false
}

// match attempts to align name against p's segments, requiring PART
// placeholders to consume at least one character. Returns the matched
// PART texts in order.
func match(p Pattern, name string) ([]string, bool) {
	var parts []string
	pos := 0
	for i, seg := range p.Segments {
		if seg.IsPart {
			end := pos
			// A PART runs until the next literal/symbol segment's text
			// is found, or to the end of name if this is the last
			// segment.
			if i == len(p.Segments)-1 {
				end = len(name)
			} else {
				next := p.Segments[i+1].Text
				idx := indexFrom(name, next, pos)
				if idx < 0 {
					return nil, false
				}
				end = idx
			}
			if end <= pos {
				return nil, false // PART must be non-empty
			}
			parts = append(parts, name[pos:end])
			pos = end
			continue
		}
		if pos+len(seg.Text) > len(name) || name[pos:pos+len(seg.Text)] != seg.Text {
			return nil, false
		}
		pos += len(seg.Text)
	}
	if pos != len(name) {
		return nil, false
	}
	return parts, true
}

func indexFrom(s, sub string, from int) int {
	if from > len(s) {
		return -1
	}
	idx := indexOf(s[from:], sub)
	if idx < 0 {
		return -1
	}
	return from + idx
}

func indexOf(s, sub string) int {
	if len(sub) == 0 {
		return 0
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
