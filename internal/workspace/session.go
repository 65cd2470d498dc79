package workspace

import (
	"sync"

	"github.com/google/uuid"

	"github.com/aurelia/aurelia-ls-sub004/internal/cursor"
	"github.com/aurelia/aurelia-ls-sub004/internal/linker"
	"github.com/aurelia/aurelia-ls-sub004/internal/patterns"
	"github.com/aurelia/aurelia-ls-sub004/internal/provenance"
	"github.com/aurelia/aurelia-ls-sub004/internal/query"
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/template"
)

// SessionId identifies one workspace query session across its
// lifetime. A document's URI alone isn't a stable handle: closing and
// reopening a document is logically a new session even though the URI
// is reused, and spec.md §7's "host-contract violation (e.g. query on
// an unknown session)" needs something to have gone stale against.
type SessionId string

// NewSessionId mints a fresh, globally unique session id.
func NewSessionId() SessionId {
	return SessionId(uuid.NewString())
}

// Session is one open document's derived, query-ready state: the
// linked template plus the cursor resolver, query facade, and
// provenance index built from it. spec.md §5 "derived artifacts for a
// snapshot tuple are memoized" — a Session is replaced wholesale by
// Relink rather than mutated in place, so a caller holding a *Session
// reference always sees one consistent snapshot.
type Session struct {
	ID         SessionId
	URI        span.FileId
	Doc        *template.Document
	Linked     *linker.LinkedTemplate
	Resolver   *cursor.Resolver
	Facade     *query.Facade
	Provenance *provenance.Index
}

// Manager owns every open document's Session plus the workspace-wide
// resource index, pattern registry, and global-identifier set they're
// linked against (spec.md §5 "Shared resource policy": the index is
// read-mostly and mutated only by the index builder with exclusive
// write access during rebuild).
type Manager struct {
	mu       sync.RWMutex
	sessions map[span.FileId]*Session

	Resources *resources.Index
	Registry  *patterns.Registry
	Globals   map[string]bool
}

// NewManager builds an empty workspace manager over registry. The
// resource index starts empty; callers populate it via
// Resources.Rebuild before the first Relink.
func NewManager(registry *patterns.Registry) *Manager {
	return &Manager{
		sessions:  make(map[span.FileId]*Session),
		Resources: resources.NewIndex(),
		Registry:  registry,
	}
}

// Relink rebuilds uri's Session from doc against the Manager's current
// resource index. A prior Session for the same URI keeps its
// SessionId (the editor is still talking about the "same" open
// document); a URI seen for the first time mints a new one.
func (m *Manager) Relink(uri span.FileId, doc *template.Document) *Session {
	linked := linker.Link(doc, m.Resources, m.Registry, m.Globals, uri)
	resolver := cursor.NewResolver(m.Resources, m.Registry, doc, linked)
	facade := query.NewFacade(linked, m.Resources)

	prov := provenance.NewIndex()
	prov.Rebuild(provenance.Plan(linked.ExprTable, uri))

	m.mu.Lock()
	defer m.mu.Unlock()

	id := NewSessionId()
	if existing, ok := m.sessions[uri]; ok {
		id = existing.ID
	}
	sess := &Session{
		ID:         id,
		URI:        uri,
		Doc:        doc,
		Linked:     linked,
		Resolver:   resolver,
		Facade:     facade,
		Provenance: prov,
	}
	m.sessions[uri] = sess
	return sess
}

// Get returns uri's current session, or nil if it isn't tracked.
func (m *Manager) Get(uri span.FileId) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[uri]
}

// Close drops uri's session, e.g. on textDocument/didClose.
func (m *Manager) Close(uri span.FileId) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, uri)
}

// All returns every tracked session, for workspace-wide operations
// (sweeps, republishing diagnostics after a configuration change).
func (m *Manager) All() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}
