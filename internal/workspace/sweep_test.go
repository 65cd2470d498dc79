package workspace

import (
	"testing"

	"github.com/aurelia/aurelia-ls-sub004/internal/patterns"
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/template"
	"github.com/stretchr/testify/assert"
)

func parseDoc(t *testing.T, html, file string) *template.Document {
	t.Helper()
	p := template.AcquireParser()
	defer template.ReleaseParser(p)
	return p.Parse(html, file)
}

func TestSweepReportsUnknownBindableOnCustomElement(t *testing.T) {
	doc := parseDoc(t, `<my-el bogus.bind="x"></my-el>`, "a.html")
	docs := []SweepDocument{{URI: "a.html", Doc: doc}}

	results := Sweep(docs, []*resources.ResourceDef{myElBuiltin()}, patterns.NewRegistry(), nil, nil)
	assert.Len(t, results, 1)
	assert.Len(t, results[0].Diagnostics, 1)
	assert.Equal(t, SeverityWarning, results[0].Diagnostics[0].Severity)
}

func TestSweepSkipsNativeElementsEntirely(t *testing.T) {
	doc := parseDoc(t, `<div bogus.bind="x"></div>`, "a.html")
	docs := []SweepDocument{{URI: "a.html", Doc: doc}}

	results := Sweep(docs, nil, patterns.NewRegistry(), nil, nil)
	assert.Len(t, results, 1)
	assert.Empty(t, results[0].Diagnostics)
}

func TestSweepAcceptsDeclaredBindableWithoutDiagnostic(t *testing.T) {
	doc := parseDoc(t, `<my-el value.bind="x"></my-el>`, "a.html")
	docs := []SweepDocument{{URI: "a.html", Doc: doc}}

	results := Sweep(docs, []*resources.ResourceDef{myElBuiltin()}, patterns.NewRegistry(), nil, nil)
	assert.Empty(t, results[0].Diagnostics)
}

func TestSweepStopsEarlyWhenCheckpointReturnsFalse(t *testing.T) {
	docA := parseDoc(t, `<div></div>`, "a.html")
	docB := parseDoc(t, `<div></div>`, "b.html")
	docs := []SweepDocument{{URI: "a.html", Doc: docA}, {URI: "b.html", Doc: docB}}

	var visited []span.FileId
	results := Sweep(docs, nil, patterns.NewRegistry(), nil, func(uri span.FileId) bool {
		visited = append(visited, uri)
		return false
	})
	assert.Len(t, results, 1)
	assert.Equal(t, []span.FileId{"a.html"}, visited)
}
