// Package documents tracks the text of every file the editor has open,
// applies incremental didChange edits using UTF-16-aware byte offsets,
// and keeps each tracked template's parsed snapshot current. Adapted
// from the teacher's own internal/documents package, generalized from
// holding raw token-file text to holding a parsed *template.Document
// (spec.md §5's "the linked form is recomputed whenever the source
// text changes").
package documents

import (
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/template"
)

// Document is one open file: its URI, LSP language id, version, raw
// text, and — when the language id marks it as a template — the
// current parse of that text.
type Document struct {
	uri        string
	languageID string
	version    int
	content    string

	parsed *template.Document
}

// NewDocument parses content (when languageID is a template language)
// and returns the resulting Document.
func NewDocument(uri, languageID string, version int, content string) *Document {
	d := &Document{uri: uri, languageID: languageID, version: version, content: content}
	d.reparse()
	return d
}

// URI returns the document's URI.
func (d *Document) URI() string { return d.uri }

// LanguageID returns the document's language identifier.
func (d *Document) LanguageID() string { return d.languageID }

// Version returns the document's version.
func (d *Document) Version() int { return d.version }

// Content returns the document's current text.
func (d *Document) Content() string { return d.content }

// Parsed returns the current template parse, or nil for a document
// whose language id isn't a template language (e.g. a host script
// file, whose resource facts arrive separately — spec.md §1, this
// engine never parses script source itself).
func (d *Document) Parsed() *template.Document { return d.parsed }

// SetContent replaces the document's text and version, and reparses
// it if it is a template document.
func (d *Document) SetContent(content string, version int) {
	d.content = content
	d.version = version
	d.reparse()
}

// IsTemplate reports whether this document's language id is one this
// engine parses as a template (spec.md §4.1's host grammar).
func IsTemplate(languageID string) bool {
	switch languageID {
	case "html", "aurelia-html":
		return true
	default:
		return false
	}
}

func (d *Document) reparse() {
	if !IsTemplate(d.languageID) {
		d.parsed = nil
		return
	}
	p := template.AcquireParser()
	defer template.ReleaseParser(p)
	d.parsed = p.Parse(d.content, span.FileId(d.uri))
}
