// Package references implements textDocument/references over S10's
// cursor-entity resolver and S13's span-collecting machinery: a
// reference set is exactly the same occurrences a rename would edit,
// with the replacement text left as the entity's current name
// (internal/workspace.References).
package references

import (
	"sort"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/aurelia/aurelia-ls-sub004/internal/log"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/workspace"
	"github.com/aurelia/aurelia-ls-sub004/lsp/helpers"
	"github.com/aurelia/aurelia-ls-sub004/lsp/types"
)

// References handles the textDocument/references request.
func References(req *types.RequestContext, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	uri := params.TextDocument.URI
	log.Debug("references requested: %s at %d:%d", uri, params.Position.Line, params.Position.Character)

	doc := req.Server.Documents().Get(uri)
	if doc == nil || doc.Parsed() == nil {
		return nil, nil
	}

	offset := helpers.OffsetFromPosition(doc.Content(), params.Position)
	refs, err := workspace.References(req.Server.Workspace(), span.FileId(uri), offset)
	if err != nil {
		log.Debug("references: %v", err)
		return nil, nil
	}

	uriByFile := make(map[span.FileId]string)
	contentByFile := make(map[span.FileId]string)
	for _, d := range req.Server.Documents().GetAll() {
		uriByFile[span.FileId(d.URI())] = d.URI()
		contentByFile[span.FileId(d.URI())] = d.Content()
	}

	out := make([]protocol.Location, 0, len(refs))
	for _, r := range refs {
		refURI, ok := uriByFile[r.File]
		if !ok {
			continue
		}
		out = append(out, protocol.Location{
			URI:   refURI,
			Range: helpers.SpanToRange(contentByFile[r.File], r.Span),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].URI != out[j].URI {
			return out[i].URI < out[j].URI
		}
		if out[i].Range.Start.Line != out[j].Range.Start.Line {
			return out[i].Range.Start.Line < out[j].Range.Start.Line
		}
		return out[i].Range.Start.Character < out[j].Range.Start.Character
	})
	return out, nil
}
