package lifecycle

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// SetTrace handles the $/setTrace notification.
func SetTrace(req *types.RequestContext, params *protocol.SetTraceParams) error {
	log.Info("trace level set to: %s", params.Value)
	return nil
}
