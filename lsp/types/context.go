// Package types holds the dependency-injection surface every LSP
// method handler is written against: ServerContext (everything the
// server owns) and RequestContext (one request's scoped view of it).
// Grounded on the teacher's own lsp/types package, generalized from
// its documents/tokens shape to this engine's documents/workspace
// shape.
package types

import (
	"github.com/tliron/glsp"

	"github.com/aurelia/aurelia-ls-sub004/internal/config"
	"github.com/aurelia/aurelia-ls-sub004/internal/documents"
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/workspace"
)

// ServerContext provides all dependencies needed for LSP handlers.
// Handlers depend on this interface rather than the concrete *lsp.Server
// so middleware and handler logic can be exercised against a fake.
type ServerContext interface {
	// Document tracking.
	Documents() *documents.Manager

	// Linked-session tracking: the resource index, pattern registry,
	// and per-document Session (linked template, cursor resolver,
	// query facade, provenance index).
	Workspace() *workspace.Manager

	// Configuration.
	Config() config.ServerConfig
	SetConfig(cfg config.ServerConfig)

	// Workspace root, set from the initialize request.
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// GLSP context, stashed at `initialized` time so background work
	// (diagnostics publication) can reach the client outside a request.
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)

	// PublishDiagnostics recomputes and pushes one document's
	// diagnostics to the client (spec.md §4.7 / S14).
	PublishDiagnostics(ctx *glsp.Context, uri string) error

	// IngestFacts records file's declared resources (spec.md §1: the
	// engine never parses script source itself, so a host type-checker
	// collaborator supplies these), rebuilds the resource index, and
	// relinks every open document against it.
	IngestFacts(file string, defs []*resources.ResourceDef)

	// IngestTypeCheckerDiagnostics merges a batch of overlay-addressed
	// type-checker diagnostics into uri's next diagnostics publication
	// (S14's typecheck channel).
	IngestTypeCheckerDiagnostics(uri string, diags []workspace.TypeCheckerDiagnostic, aliases workspace.TypeAliasMap)
}
