package config

import (
	"fmt"

	"github.com/aurelia/aurelia-ls-sub004/internal/patterns"
)

// ApplyAttributePatterns registers cfg's configured attribute patterns
// with registry, in the order they're listed (earliest registration
// wins ties, per patterns.Registry.RegisterPattern). Must be called
// before the registry's first Analyze call (spec.md §4.3 "the registry
// is frozen" after first use).
func ApplyAttributePatterns(cfg ServerConfig, registry *patterns.Registry) error {
	for _, spec := range cfg.AttributePatterns {
		handler, ok := patterns.HandlerByName(spec.Handler)
		if !ok {
			return fmt.Errorf("config: unknown attribute-pattern handler %q for template %q", spec.Handler, spec.Template)
		}
		registry.RegisterPattern(spec.Template, handler)
	}
	return nil
}
