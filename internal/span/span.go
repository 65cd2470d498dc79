// Package span defines the core position primitives shared by every stage
// of the pipeline: byte-accurate spans, file identity, and the provenance
// wrapper used for resource definitions (spec.md §3 Data Model).
package span

import "strings"

// FileId is a canonical identifier for a source file. Two syntactic forms
// of the same filesystem path (different case, backslashes) collapse to
// the same FileId via NewFileId.
type FileId string

// NewFileId normalizes a raw path or URI into a canonical FileId:
// lowercased, slash-normalized. Two spellings of the same file produce
// equal FileIds.
func NewFileId(raw string) FileId {
	normalized := strings.ReplaceAll(raw, "\\", "/")
	normalized = strings.ToLower(normalized)
	return FileId(normalized)
}

// Span is a half-open byte range `[Start, End)` into an immutable text
// buffer identified by File. Start <= End always holds.
type Span struct {
	Start uint32
	End   uint32
	File  FileId
}

// Len returns the number of bytes the span covers.
func (s Span) Len() uint32 { return s.End - s.Start }

// Contains reports whether s fully contains other (same file, half-open
// containment): s.Start <= other.Start && other.End <= s.End.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// ContainsOffset reports whether the half-open span contains offset.
func (s Span) ContainsOffset(offset uint32) bool {
	return offset >= s.Start && offset < s.End
}

// Text returns the substring of source covered by the span. The caller
// must pass the correct source buffer for s.File; span itself carries no
// buffer reference (spec.md §9 "Spans instead of node pointers").
func (s Span) Text(source string) string {
	if int(s.End) > len(source) || s.Start > s.End {
		return ""
	}
	return source[s.Start:s.End]
}

// Rebase shifts a span produced by parsing at offset 0 so it is expressed
// in the coordinate space of a larger enclosing document. Rebasing
// composes once: applying Rebase to an already-rebased span double-counts
// the offset, so callers must rebase only the top-level parse result's
// spans (spec.md §3, Testable Property 3).
func (s Span) Rebase(base uint32) Span {
	return Span{Start: s.Start + base, End: s.End + base, File: s.File}
}

// Origin names where a Sourced value came from.
type Origin string

const (
	OriginSource  Origin = "source"
	OriginConfig  Origin = "config"
	OriginBuiltin Origin = "builtin"
)

// Sourced wraps a value with provenance: where it was declared and,
// optionally, the span of the declaration.
type Sourced[T any] struct {
	Value    T
	Origin   Origin
	Location *Span
}

// NewSourced builds a Sourced value with an explicit location.
func NewSourced[T any](value T, origin Origin, loc Span) Sourced[T] {
	return Sourced[T]{Value: value, Origin: origin, Location: &loc}
}

// NewSourcedNoLocation builds a Sourced value with no declaration span
// (e.g. builtin resources that aren't backed by source text).
func NewSourcedNoLocation[T any](value T, origin Origin) Sourced[T] {
	return Sourced[T]{Value: value, Origin: origin}
}
