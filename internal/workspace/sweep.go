package workspace

import (
	"github.com/aurelia/aurelia-ls-sub004/internal/linker"
	"github.com/aurelia/aurelia-ls-sub004/internal/patterns"
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/template"
)

// SweepDocument is one tracked document's linkable state, the minimal
// shape Sweep needs without depending on internal/documents.Manager's
// full lifecycle (decoupling the pure linking/diagnostics work from
// session/document bookkeeping, spec.md §5 "Shared resource policy").
type SweepDocument struct {
	URI   span.FileId
	Doc   *template.Document
	Facts resources.FileFacts
}

// DocumentDiagnostics is one document's diagnostics batch.
type DocumentDiagnostics struct {
	URI         span.FileId
	Diagnostics []Diagnostic
}

// UnknownBindableDiagnostic builds the diagnostic spec.md §4.5 names
// for an instruction whose target didn't resolve against any declared
// bindable (target kind "unknown").
func UnknownBindableDiagnostic(uri span.FileId, targetSpan span.Span, target string) Diagnostic {
	return MapCompilerDiagnostic(uri, targetSpan, SeverityWarning, "unknown-bindable: \""+target+"\" is not a declared bindable")
}

// Sweep implements the supplemented workspace-sweep operation (spec.md
// §5 mentions "workspace sweeps" as a long-running operation without
// defining it; SPEC_FULL.md §4 names it): rebuild the resource index
// from every tracked document's facts, re-link each document against
// the rebuilt index, and collect per-document compiler diagnostics for
// unresolved bindables. checkpoint is called after every document and
// is the cooperative cancellation point (spec.md §5 "Suspension
// points... per-document in workspace sweeps"); Sweep stops early and
// returns the results gathered so far when checkpoint returns false.
func Sweep(docs []SweepDocument, builtins []*resources.ResourceDef, registry *patterns.Registry, globals map[string]bool, checkpoint func(uri span.FileId) bool) []DocumentDiagnostics {
	idx := resources.NewIndex()

	facts := make([]resources.FileFacts, 0, len(docs))
	for _, d := range docs {
		facts = append(facts, d.Facts)
	}
	idx.Rebuild(facts, builtins)

	var out []DocumentDiagnostics
	for _, d := range docs {
		linked := linker.Link(d.Doc, idx, registry, globals, d.URI)
		out = append(out, DocumentDiagnostics{URI: d.URI, Diagnostics: unresolvedBindableDiagnostics(d.URI, idx, linked)})
		if checkpoint != nil && !checkpoint(d.URI) {
			break
		}
	}
	return out
}

// bindableTargetKinds is the set of instruction kinds that bind
// against an owner's declared bindable surface; every other kind
// (listener, ref, let, hydration) has no "unknown-bindable" concept.
var bindableTargetKinds = map[linker.InstructionKind]bool{
	linker.KindPropertyBinding:      true,
	linker.KindAttributeBinding:     true,
	linker.KindStylePropertyBinding: true,
}

// DiagnosticsForDocument computes one document's compiler diagnostics
// against idx: the same check Sweep performs per document, exposed
// directly for a caller (the LSP layer's incremental per-document
// diagnostics path) that already holds a fresh linked template and
// doesn't need Sweep's index-rebuild-plus-checkpoint machinery.
func DiagnosticsForDocument(uri span.FileId, idx *resources.Index, linked *linker.LinkedTemplate) []Diagnostic {
	return unresolvedBindableDiagnostics(uri, idx, linked)
}

// unresolvedBindableDiagnostics reports the "unknown-bindable" case
// (spec.md §4.5): a binding instruction whose owner is a registered
// custom element but whose target name isn't among its declared
// bindables. Native elements have no bindable surface at all, so a
// TargetUnknown instruction on a plain tag is not a diagnostic.
func unresolvedBindableDiagnostics(uri span.FileId, idx *resources.Index, linked *linker.LinkedTemplate) []Diagnostic {
	var diags []Diagnostic
	var walk func(rows []*linker.ElementRow)
	walk = func(rows []*linker.ElementRow) {
		for _, row := range rows {
			owner := idx.LookupElement(row.Node.TagName)
			if owner != nil {
				for _, instr := range row.Instructions {
					if bindableTargetKinds[instr.Kind] && instr.TargetOf == linker.TargetUnknown && instr.Attr != nil {
						diags = append(diags, UnknownBindableDiagnostic(uri, instr.Attr.NameSpan, instr.Target))
					}
				}
			}
			walk(row.Children)
		}
	}
	walk(linked.Roots)
	return diags
}
