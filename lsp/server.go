// Package lsp wires the engine's internal packages into a running
// Language Server Protocol server: document tracking, workspace
// sessions, and the textDocument/workspace method handlers, following
// the teacher's own lsp package shape (Server + middleware + per-method
// packages under lsp/methods).
package lsp

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/aurelia/aurelia-ls-sub004/internal/config"
	"github.com/aurelia/aurelia-ls-sub004/internal/documents"
	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/internal/patterns"
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/workspace"

	"github.com/aurelia/aurelia-ls-sub004/lsp/helpers"
	"github.com/aurelia/aurelia-ls-sub004/lsp/methods/lifecycle"
	textDocument "github.com/aurelia/aurelia-ls-sub004/lsp/methods/textDocument"
	"github.com/aurelia/aurelia-ls-sub004/lsp/methods/textDocument/codeAction"
	"github.com/aurelia/aurelia-ls-sub004/lsp/methods/textDocument/definition"
	"github.com/aurelia/aurelia-ls-sub004/lsp/methods/textDocument/hover"
	"github.com/aurelia/aurelia-ls-sub004/lsp/methods/textDocument/references"
	"github.com/aurelia/aurelia-ls-sub004/lsp/methods/textDocument/rename"
	semantictokens "github.com/aurelia/aurelia-ls-sub004/lsp/methods/textDocument/semanticTokens"
	lspworkspace "github.com/aurelia/aurelia-ls-sub004/lsp/methods/workspace"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// Verify Server implements ServerContext.
var _ types.ServerContext = (*Server)(nil)

// Server is the Aurelia template language server.
type Server struct {
	documents  *documents.Manager
	workspace  *workspace.Manager
	glspServer *server.Server
	context    *glsp.Context
	rootURI    string
	rootPath   string

	mu     sync.RWMutex
	config config.ServerConfig

	// scriptFacts holds the most recently ingested FileFacts per host
	// script file URI (spec.md §1: the engine never parses script
	// source itself, so these only ever arrive over
	// aurelia/didChangeFacts).
	scriptFacts map[string][]*resources.ResourceDef

	// pendingTypeDiags holds the last mapped batch of type-checker
	// diagnostics per template URI, merged into the next
	// PublishDiagnostics call for that URI (S14's typecheck channel).
	pendingTypeDiags map[string][]workspace.Diagnostic
}

// NewServer creates a new Aurelia LSP server.
func NewServer() (*Server, error) {
	s := &Server{
		documents:        documents.NewManager(),
		workspace:        workspace.NewManager(patterns.NewRegistry()),
		config:           config.DefaultConfig(),
		scriptFacts:      make(map[string][]*resources.ResourceDef),
		pendingTypeDiags: make(map[string][]workspace.Diagnostic),
	}
	s.rebuildResourceIndex()

	protocolHandler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", lspworkspace.DidChangeConfiguration),
		WorkspaceDidChangeWatchedFiles:  notify(s, "workspace/didChangeWatchedFiles", lspworkspace.DidChangeWatchedFiles),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentHover:               method(s, "textDocument/hover", hover.Hover),
		TextDocumentDefinition:          method(s, "textDocument/definition", definition.Definition),
		TextDocumentReferences:          method(s, "textDocument/references", references.References),
		TextDocumentCodeAction:          method(s, "textDocument/codeAction", codeAction.CodeAction),
		TextDocumentRename:              method(s, "textDocument/rename", rename.Rename),
		TextDocumentSemanticTokensFull:  method(s, "textDocument/semanticTokens/full", semantictokens.SemanticTokensFull),
	}

	customHandler := &CustomHandler{Handler: protocolHandler, server: s}
	s.glspServer = server.NewServer(customHandler, "aurelia-language-server", false)

	return s, nil
}

// RunStdio runs the server over stdio.
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases server resources. Safe to call more than once.
func (s *Server) Close() error {
	return nil
}

// Documents returns the document manager.
func (s *Server) Documents() *documents.Manager { return s.documents }

// Workspace returns the workspace manager.
func (s *Server) Workspace() *workspace.Manager { return s.workspace }

// Config returns the current server configuration.
func (s *Server) Config() config.ServerConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig replaces the server configuration.
func (s *Server) SetConfig(cfg config.ServerConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
	s.rebuildResourceIndex()
	s.relinkAll()
}

// RootURI returns the workspace root URI.
func (s *Server) RootURI() string { return s.rootURI }

// RootPath returns the workspace root path.
func (s *Server) RootPath() string { return s.rootPath }

// SetRootURI sets the workspace root URI.
func (s *Server) SetRootURI(uri string) { s.rootURI = uri }

// SetRootPath sets the workspace root path.
func (s *Server) SetRootPath(path string) { s.rootPath = path }

// GLSPContext returns the stashed GLSP context, or nil before
// `initialized` has fired.
func (s *Server) GLSPContext() *glsp.Context { return s.context }

// SetGLSPContext stashes the GLSP context for background notifications.
func (s *Server) SetGLSPContext(ctx *glsp.Context) { s.context = ctx }

// PublishDiagnostics recomputes uri's compiler diagnostics, merges in
// any pending type-checker diagnostics (S14), and pushes the result to
// the client.
func (s *Server) PublishDiagnostics(ctx *glsp.Context, uri string) error {
	doc := s.documents.Get(uri)
	if doc == nil {
		return fmt.Errorf("lsp: no tracked document for %s", uri)
	}

	file := span.FileId(uri)
	sess := s.workspace.Get(file)

	var diags []workspace.Diagnostic
	if sess != nil {
		diags = workspace.DiagnosticsForDocument(file, s.workspace.Resources, sess.Linked)
	}

	s.mu.RLock()
	diags = append(diags, s.pendingTypeDiags[uri]...)
	s.mu.RUnlock()

	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, toProtocolDiagnostic(doc.Content(), d))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Range.Start.Line != out[j].Range.Start.Line {
			return out[i].Range.Start.Line < out[j].Range.Start.Line
		}
		return out[i].Range.Start.Character < out[j].Range.Start.Character
	})

	if ctx == nil {
		return nil
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: out,
	})
	return nil
}

// IngestFacts records file's declared resources, rebuilds the resource
// index over every known file's facts plus the framework builtins, and
// relinks every open document against the rebuilt index.
func (s *Server) IngestFacts(file string, defs []*resources.ResourceDef) {
	s.mu.Lock()
	s.scriptFacts[file] = defs
	s.mu.Unlock()
	s.rebuildResourceIndex()
	s.relinkAll()
}

// IngestTypeCheckerDiagnostics maps a batch of overlay-addressed
// type-checker diagnostics against uri's current provenance index and
// stashes the mapped result for the next PublishDiagnostics call.
func (s *Server) IngestTypeCheckerDiagnostics(uri string, diags []workspace.TypeCheckerDiagnostic, aliases workspace.TypeAliasMap) {
	sess := s.workspace.Get(span.FileId(uri))
	var mapped []workspace.Diagnostic
	if sess != nil {
		for _, d := range diags {
			if out, ok := workspace.MapTypeCheckerDiagnostic(sess.Provenance, d, aliases); ok {
				mapped = append(mapped, out)
			}
		}
	}

	s.mu.Lock()
	s.pendingTypeDiags[uri] = mapped
	s.mu.Unlock()

	if s.context != nil {
		if err := s.PublishDiagnostics(s.context, uri); err != nil {
			log.Warn("failed to republish diagnostics for %s: %v", uri, err)
		}
	}
}

// rebuildResourceIndex recomputes the workspace resource index from
// every file's last-ingested facts plus the configured globals
// (spec.md §5 "Shared resource policy").
func (s *Server) rebuildResourceIndex() {
	s.mu.RLock()
	facts := make([]resources.FileFacts, 0, len(s.scriptFacts))
	for file, defs := range s.scriptFacts {
		facts = append(facts, resources.FileFacts{File: span.FileId(file), Resources: defs})
	}
	s.workspace.Globals = s.config.GlobalSet()
	s.mu.RUnlock()

	s.workspace.Resources.Rebuild(facts, resources.Builtins())
}

// relinkAll re-links every currently open template document against
// the workspace's current resource index.
func (s *Server) relinkAll() {
	for _, doc := range s.documents.GetAll() {
		if doc.Parsed() == nil {
			continue
		}
		s.workspace.Relink(span.FileId(doc.URI()), doc.Parsed())
	}
}

// toProtocolDiagnostic converts one byte-offset workspace.Diagnostic
// into an LSP protocol.Diagnostic against content.
func toProtocolDiagnostic(content string, d workspace.Diagnostic) protocol.Diagnostic {
	sev := protocol.DiagnosticSeverityWarning
	switch d.Severity {
	case workspace.SeverityError:
		sev = protocol.DiagnosticSeverityError
	case workspace.SeverityInfo:
		sev = protocol.DiagnosticSeverityInformation
	}
	source := string(d.Source)

	diag := protocol.Diagnostic{
		Range:    helpers.SpanToRange(content, d.Span),
		Severity: &sev,
		Source:   &source,
		Message:  d.Message,
	}
	for _, rel := range d.Related {
		diag.RelatedInformation = append(diag.RelatedInformation, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{URI: string(rel.URI), Range: helpers.SpanToRange(content, rel.Span)},
			Message:  rel.Message,
		})
	}
	return diag
}
