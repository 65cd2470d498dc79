package types

import (
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/workspace"
)

// TypeCheckerDiagnosticFact mirrors workspace.TypeCheckerDiagnostic
// over the wire: a diagnostic addressed against the overlay buffer
// rather than the template, as the host type-checker collaborator
// reports it.
type TypeCheckerDiagnosticFact struct {
	OverlayURI   string `json:"overlayUri"`
	OverlayStart uint32 `json:"overlayStart"`
	OverlayEnd   uint32 `json:"overlayEnd"`
	Severity     string `json:"severity"`
	Message      string `json:"message"`
	IsMismatch   bool   `json:"isMismatch,omitempty"`
	ActualType   string `json:"actualType,omitempty"`
	ExpectedType string `json:"expectedType,omitempty"`
}

// DidChangeTypeCheckerDiagnosticsParams is the custom notification's
// params: one overlay file's current diagnostics batch plus the
// type-alias rewrite map spec.md §4.7 rule (c) names.
type DidChangeTypeCheckerDiagnosticsParams struct {
	TemplateURI string                      `json:"templateUri"`
	Diagnostics []TypeCheckerDiagnosticFact `json:"diagnostics"`
	TypeAliases map[string]string           `json:"typeAliases,omitempty"`
}

// ToWorkspaceDiagnostics converts the wire DTOs into
// workspace.TypeCheckerDiagnostic plus the alias map
// MapTypeCheckerDiagnostic consumes.
func (p DidChangeTypeCheckerDiagnosticsParams) ToWorkspaceDiagnostics() ([]workspace.TypeCheckerDiagnostic, workspace.TypeAliasMap) {
	out := make([]workspace.TypeCheckerDiagnostic, 0, len(p.Diagnostics))
	for _, d := range p.Diagnostics {
		overlayFile := span.NewFileId(d.OverlayURI)
		out = append(out, workspace.TypeCheckerDiagnostic{
			OverlayURI:   overlayFile,
			OverlaySpan:  span.Span{Start: d.OverlayStart, End: d.OverlayEnd, File: overlayFile},
			Severity:     workspace.Severity(d.Severity),
			Message:      d.Message,
			IsMismatch:   d.IsMismatch,
			ActualType:   d.ActualType,
			ExpectedType: d.ExpectedType,
		})
	}
	return out, workspace.TypeAliasMap(p.TypeAliases)
}
