package workspace

import (
	"github.com/aurelia/aurelia-ls-sub004/internal/provenance"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
)

// DiagnosticSource is the closed set of diagnostic channels spec.md
// §6 names.
type DiagnosticSource string

const (
	SourceCompiler   DiagnosticSource = "compiler"
	SourceTypecheck  DiagnosticSource = "typecheck"
	SourceTypeScript DiagnosticSource = "typescript"
)

// Severity is the closed severity set spec.md §6 names.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// RelatedInfo is a secondary location attached to a Diagnostic, used
// when the overlay location disagrees with the rewritten template
// location (spec.md §4.7 rule (b)).
type RelatedInfo struct {
	URI     span.FileId
	Span    span.Span
	Message string
}

// Diagnostic is one mapped diagnostic, always anchored at a template
// span regardless of which channel produced it.
type Diagnostic struct {
	Source   DiagnosticSource
	Severity Severity
	URI      span.FileId
	Span     span.Span
	Message  string
	Related  []RelatedInfo
}

// MapCompilerDiagnostic wraps a compiler diagnostic, which already
// carries a template span (spec.md §4.7 "Compiler diagnostics carry
// template spans already") — no provenance rewrite needed.
func MapCompilerDiagnostic(uri span.FileId, sp span.Span, severity Severity, message string) Diagnostic {
	return Diagnostic{Source: SourceCompiler, Severity: severity, URI: uri, Span: sp, Message: message}
}

// TypeAliasMap rewrites type names the overlay planner's synthesized
// declarations use (e.g. a generated alias for an imported type) back
// to the name the host script actually uses (spec.md §4.7 rule (c)).
type TypeAliasMap map[string]string

func (m TypeAliasMap) rewrite(typeName string) string {
	if m == nil {
		return typeName
	}
	if rewritten, ok := m[typeName]; ok {
		return rewritten
	}
	return typeName
}

// TypeCheckerDiagnostic is one diagnostic as the type-checker
// collaborator reports it, addressed against the overlay buffer
// rather than the template.
type TypeCheckerDiagnostic struct {
	OverlayURI   span.FileId
	OverlaySpan  span.Span
	Severity     Severity
	Message      string
	IsMismatch   bool   // true for a type-mismatch diagnostic (rule (d) applies)
	ActualType   string // only meaningful when IsMismatch
	ExpectedType string // only meaningful when IsMismatch
}

// MapTypeCheckerDiagnostic implements spec.md §4.7's four rewrite
// rules for a type-checker-sourced diagnostic: (a) resolve the overlay
// span via the provenance index; (b) prefer the template location,
// attaching the overlay location as related info only when the two
// spans disagree in extent; (c) rewrite type names through aliases;
// (d) suppress a type-mismatch diagnostic once the normalized actual
// and expected types agree. Returns ok=false when the diagnostic
// should be suppressed or no provenance edge covers the overlay span
// (the latter is a degraded-mode condition the caller should record as
// a gap, spec.md §7).
func MapTypeCheckerDiagnostic(prov *provenance.Index, d TypeCheckerDiagnostic, aliases TypeAliasMap) (Diagnostic, bool) {
	if d.IsMismatch {
		actual := aliases.rewrite(d.ActualType)
		expected := aliases.rewrite(d.ExpectedType)
		if normalizeType(actual) == normalizeType(expected) {
			return Diagnostic{}, false
		}
		d.ActualType, d.ExpectedType = actual, expected
	}

	edge := prov.LookupGenerated(d.OverlayURI, d.OverlaySpan.Start)
	if edge == nil {
		return Diagnostic{}, false
	}

	out := Diagnostic{
		Source:   SourceTypecheck,
		Severity: d.Severity,
		URI:      edge.To.Span.File,
		Span:     edge.To.Span,
		Message:  d.Message,
	}
	if edge.To.Span.Len() != d.OverlaySpan.Len() {
		out.Related = append(out.Related, RelatedInfo{
			URI:     d.OverlayURI,
			Span:    d.OverlaySpan,
			Message: "generated type-checker location",
		})
	}
	return out, true
}

// normalizeType collapses whitespace-insensitive spelling differences
// so e.g. "string" and " string " compare equal (rule (d)); the type-
// checker's exact normalization algorithm is out of scope (spec.md
// §1), so this only handles the one normalization this engine itself
// can perform without a real type system.
func normalizeType(t string) string {
	var b []byte
	for i := 0; i < len(t); i++ {
		if t[i] == ' ' || t[i] == '\t' || t[i] == '\n' {
			continue
		}
		b = append(b, t[i])
	}
	return string(b)
}
