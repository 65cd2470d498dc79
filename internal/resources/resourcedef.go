package resources

import "github.com/aurelia/aurelia-ls-sub004/internal/span"

// BindingMode is the closed set of binding modes a bindable property may
// declare (§4.4 <bindable mode="...">).
type BindingMode string

const (
	ModeDefault  BindingMode = ""
	ModeOneTime  BindingMode = "one-time"
	ModeToView   BindingMode = "to-view"
	ModeFromView BindingMode = "from-view"
	ModeTwoWay   BindingMode = "two-way"
)

// BindableDef describes one declared bindable property of a custom
// element or custom attribute.
type BindableDef struct {
	Property  string
	Attribute string // attribute-name form; dash-cased unless overridden
	Mode      BindingMode
	SymbolId  SymbolId
	Location  *span.Span
}

// ResourceDef is the closed-variant record for a single resource
// definition, collated by the resource index from script FileFacts or
// builtin registrations.
type ResourceDef struct {
	Kind                 Kind
	Name                 span.Sourced[string]
	ClassName            *span.Sourced[string]
	File                 span.FileId
	Aliases              *span.Sourced[[]string]
	Bindables            map[string]*BindableDef
	IsTemplateController bool
	SymbolId             SymbolId
}

// Bindable looks up a bindable in the property-keyed Bindables map.
// Exact match on property name is tried first, then the dash-to-camel
// form of name, matching the linker's resolution order (§4.5 "Bindable
// resolution"). A bindable's declared Attribute is not consulted, so an
// overridden attribute name that doesn't camel-case to the property
// name finds nothing.
func (r *ResourceDef) Bindable(name string) *BindableDef {
	if r == nil || r.Bindables == nil {
		return nil
	}
	if b, ok := r.Bindables[name]; ok {
		return b
	}
	camel := dashToCamel(name)
	if b, ok := r.Bindables[camel]; ok {
		return b
	}
	return nil
}

// dashToCamel converts a kebab-case attribute name to camelCase, e.g.
// "foo-bar" -> "fooBar".
func dashToCamel(s string) string {
	out := make([]byte, 0, len(s))
	upperNext := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' {
			upperNext = true
			continue
		}
		if upperNext && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upperNext = false
		out = append(out, c)
	}
	return string(out)
}

// CamelToDash converts a camelCase property name to kebab-case, e.g.
// "fooBar" -> "foo-bar". Used when synthesizing the default attribute
// name for a bindable that doesn't declare one explicitly.
func CamelToDash(s string) string {
	out := make([]byte, 0, len(s)+4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				out = append(out, '-')
			}
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
