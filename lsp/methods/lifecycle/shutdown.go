package lifecycle

import (
	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// Shutdown handles the LSP shutdown request.
func Shutdown(req *types.RequestContext) error {
	log.Info("server shutting down")
	return nil
}
