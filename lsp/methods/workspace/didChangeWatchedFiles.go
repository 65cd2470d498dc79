package workspace

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/internal/uriutil"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// DidChangeWatchedFiles handles workspace/didChangeWatchedFiles. This
// engine's script-side resource facts arrive over the custom
// aurelia/didChangeFacts notification, not file watching, so this
// handler only logs — the host collaborator watching script files is
// the one expected to re-push facts on change.
func DidChangeWatchedFiles(req *types.RequestContext, params *protocol.DidChangeWatchedFilesParams) error {
	for _, change := range params.Changes {
		log.Info("watched file changed: %s (type: %d)", uriutil.URIToPath(change.URI), change.Type)
	}
	return nil
}
