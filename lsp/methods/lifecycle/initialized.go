package lifecycle

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// Initialized handles the LSP initialized notification.
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("server initialized")
	req.Server.SetGLSPContext(req.GLSP)
	return nil
}
