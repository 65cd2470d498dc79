package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestManagerOpenClose(t *testing.T) {
	manager := NewManager()
	uri := "file:///test.html"

	assert.Nil(t, manager.Get(uri))

	err := manager.DidOpen(uri, "html", 1, `<div></div>`)
	require.NoError(t, err)

	doc := manager.Get(uri)
	require.NotNil(t, doc)
	assert.Equal(t, uri, doc.URI())
	assert.Equal(t, "html", doc.LanguageID())
	assert.Equal(t, 1, doc.Version())

	err = manager.DidClose(uri)
	require.NoError(t, err)
	assert.Nil(t, manager.Get(uri))
}

func TestManagerDidCloseUnknownURI(t *testing.T) {
	manager := NewManager()
	err := manager.DidClose("file:///missing.html")
	assert.Error(t, err)
}

func TestManagerDidChangeUnknownURI(t *testing.T) {
	manager := NewManager()
	err := manager.DidChange("file:///missing.html", 2, nil)
	assert.Error(t, err)
}

func TestManagerFullUpdateReparses(t *testing.T) {
	manager := NewManager()
	uri := "file:///test.html"
	require.NoError(t, manager.DidOpen(uri, "html", 1, `<div></div>`))

	changes := []protocol.TextDocumentContentChangeEvent{{Text: `<my-el></my-el>`}}
	require.NoError(t, manager.DidChange(uri, 2, changes))

	doc := manager.Get(uri)
	assert.Equal(t, `<my-el></my-el>`, doc.Content())
	assert.Equal(t, 2, doc.Version())
	assert.Equal(t, "my-el", doc.Parsed().Roots[0].TagName)
}

func TestManagerIncrementalUpdate(t *testing.T) {
	manager := NewManager()
	uri := "file:///test.html"
	initialContent := "<div\n  textcontent.bind=\"red\"></div>"
	require.NoError(t, manager.DidOpen(uri, "html", 1, initialContent))

	// Line 1, characters 20-23 is "red".
	changes := []protocol.TextDocumentContentChangeEvent{
		{
			Range: &protocol.Range{
				Start: protocol.Position{Line: 1, Character: 20},
				End:   protocol.Position{Line: 1, Character: 23},
			},
			Text: "blue",
		},
	}
	require.NoError(t, manager.DidChange(uri, 2, changes))

	expected := "<div\n  textcontent.bind=\"blue\"></div>"
	doc := manager.Get(uri)
	assert.Equal(t, expected, doc.Content())
	assert.Equal(t, 2, doc.Version())
}

func TestManagerMultipleIncrementalUpdates(t *testing.T) {
	manager := NewManager()
	uri := "file:///test.html"
	require.NoError(t, manager.DidOpen(uri, "html", 1, "hello world"))

	changes1 := []protocol.TextDocumentContentChangeEvent{
		{
			Range: &protocol.Range{Start: protocol.Position{Line: 0, Character: 0}, End: protocol.Position{Line: 0, Character: 5}},
			Text:  "goodbye",
		},
	}
	require.NoError(t, manager.DidChange(uri, 2, changes1))
	assert.Equal(t, "goodbye world", manager.Get(uri).Content())

	changes2 := []protocol.TextDocumentContentChangeEvent{
		{
			Range: &protocol.Range{Start: protocol.Position{Line: 0, Character: 8}, End: protocol.Position{Line: 0, Character: 13}},
			Text:  "universe",
		},
	}
	require.NoError(t, manager.DidChange(uri, 3, changes2))
	assert.Equal(t, "goodbye universe", manager.Get(uri).Content())
}

func TestManagerBatchChangesAppliedSequentially(t *testing.T) {
	manager := NewManager()
	uri := "file:///test.html"
	require.NoError(t, manager.DidOpen(uri, "html", 1, "line 1\nline 2\nline 3"))

	changes := []protocol.TextDocumentContentChangeEvent{
		{
			Range: &protocol.Range{Start: protocol.Position{Line: 0, Character: 5}, End: protocol.Position{Line: 0, Character: 6}},
			Text:  " ONE",
		},
		{
			Range: &protocol.Range{Start: protocol.Position{Line: 1, Character: 5}, End: protocol.Position{Line: 1, Character: 6}},
			Text:  " TWO",
		},
	}
	require.NoError(t, manager.DidChange(uri, 2, changes))
	assert.Equal(t, "line  ONE\nline  TWO\nline 3", manager.Get(uri).Content())
}

func TestManagerGetAll(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.DidOpen("file:///a.html", "html", 1, "<div></div>"))
	require.NoError(t, manager.DidOpen("file:///b.html", "html", 1, "<div></div>"))

	docs := manager.GetAll()
	assert.Len(t, docs, 2)
}

func TestManagerNonTemplateDocumentHasNoParse(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.DidOpen("file:///a.ts", "typescript", 1, "export const x = 1;"))
	doc := manager.Get("file:///a.ts")
	assert.Nil(t, doc.Parsed())
}
