package types

import (
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
)

// BindableFact is one bindable property as the host type-checker
// collaborator reports it over the custom aurelia/didChangeFacts
// notification.
type BindableFact struct {
	Property  string `json:"property"`
	Attribute string `json:"attribute,omitempty"`
	Mode      string `json:"mode,omitempty"`
}

// ResourceFact is one resource declaration as the host reports it.
// kind is one of "custom-element", "custom-attribute",
// "template-controller", "value-converter", "binding-behavior" (the
// wire spelling of resources.Kind).
type ResourceFact struct {
	Kind                 string         `json:"kind"`
	Name                 string         `json:"name"`
	Aliases              []string       `json:"aliases,omitempty"`
	IsTemplateController bool           `json:"isTemplateController,omitempty"`
	Bindables            []BindableFact `json:"bindables,omitempty"`
}

// DidChangeFactsParams is the custom notification's params: every
// resource file declares, as of its latest script-side analysis (spec.md
// §1 "the core never parses script source itself" — this is how those
// facts arrive).
type DidChangeFactsParams struct {
	URI       string         `json:"uri"`
	Resources []ResourceFact `json:"resources"`
}

// ToResourceDefs converts the wire DTOs into resources.ResourceDef,
// the shape internal/resources.Index.Rebuild consumes.
func (p DidChangeFactsParams) ToResourceDefs() []*resources.ResourceDef {
	file := span.NewFileId(p.URI)
	out := make([]*resources.ResourceDef, 0, len(p.Resources))
	for _, rf := range p.Resources {
		def := &resources.ResourceDef{
			Kind:                 resources.Kind(rf.Kind),
			Name:                 span.NewSourcedNoLocation(rf.Name, span.OriginSource),
			File:                 file,
			IsTemplateController: rf.IsTemplateController,
		}
		if len(rf.Aliases) > 0 {
			aliases := span.NewSourcedNoLocation(rf.Aliases, span.OriginSource)
			def.Aliases = &aliases
		}
		if len(rf.Bindables) > 0 {
			def.Bindables = make(map[string]*resources.BindableDef, len(rf.Bindables))
			for _, bf := range rf.Bindables {
				attr := bf.Attribute
				if attr == "" {
					attr = resources.CamelToDash(bf.Property)
				}
				def.Bindables[bf.Property] = &resources.BindableDef{
					Property:  bf.Property,
					Attribute: attr,
					Mode:      resources.BindingMode(bf.Mode),
				}
			}
		}
		out = append(out, def)
	}
	return out
}
