package types

import (
	"github.com/tliron/glsp"
)

// RequestContext wraps one LSP method call's server-wide and
// protocol-level context, plus a place to collect non-fatal warnings
// the middleware logs after the handler returns (grounded on the
// teacher's own lsp/types.RequestContext, unchanged).
type RequestContext struct {
	Server   ServerContext
	GLSP     *glsp.Context
	warnings []error
}

// NewRequestContext creates a new request context.
func NewRequestContext(server ServerContext, glspCtx *glsp.Context) *RequestContext {
	return &RequestContext{Server: server, GLSP: glspCtx}
}

// AddWarning adds a non-fatal warning to this request.
func (r *RequestContext) AddWarning(err error) {
	if err != nil {
		r.warnings = append(r.warnings, err)
	}
}

// Warnings returns all warnings collected during this request.
func (r *RequestContext) Warnings() []error {
	return r.warnings
}

// HasWarnings returns true if any warnings were collected.
func (r *RequestContext) HasWarnings() bool {
	return len(r.warnings) > 0
}
