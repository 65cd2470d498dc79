package resources

import "github.com/aurelia/aurelia-ls-sub004/internal/span"

// Builtins returns the framework's own always-available resources:
// the template controllers, binding behaviors, and the custom elements
// that ship with the runtime rather than being declared by any
// analyzed script (spec.md §1 "the core never parses script source
// itself" — these never come from a FileFacts batch, so Index.Rebuild
// is always called with Builtins() in the builtins slot alongside
// whatever the host's script facts contribute).
func Builtins() []*ResourceDef {
	return []*ResourceDef{
		builtinController("repeat"),
		builtinController("if"),
		builtinController("else"),
		builtinController("with"),
		builtinController("switch"),
		builtinController("case"),
		builtinController("default-case"),
		builtinController("portal"),
		builtinElement("au-slot"),
		builtinElement("au-compose"),
		builtinBehavior("self"),
		builtinBehavior("update-trigger"),
		builtinBehavior("debounce"),
		builtinBehavior("throttle"),
		builtinBehavior("signal"),
		builtinBehavior("once"),
		builtinBehavior("to-view"),
		builtinBehavior("from-view"),
		builtinBehavior("two-way"),
	}
}

func builtinController(name string) *ResourceDef {
	return &ResourceDef{
		Kind:                 KindTemplateController,
		Name:                 span.NewSourcedNoLocation(name, span.OriginBuiltin),
		IsTemplateController: true,
	}
}

func builtinElement(name string) *ResourceDef {
	return &ResourceDef{
		Kind: KindCustomElement,
		Name: span.NewSourcedNoLocation(name, span.OriginBuiltin),
	}
}

func builtinBehavior(name string) *ResourceDef {
	return &ResourceDef{
		Kind: KindBindingBehavior,
		Name: span.NewSourcedNoLocation(name, span.OriginBuiltin),
	}
}
