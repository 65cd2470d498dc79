// Package resources implements the resource-definition index (S8): a
// SymbolId-keyed collation of custom elements, custom attributes,
// template controllers, value converters, and binding behaviors, gathered
// from script-side FileFacts supplied by the host.
package resources

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/aurelia/aurelia-ls-sub004/internal/span"
)

// Kind is the closed set of resource kinds a template may reference.
type Kind string

const (
	KindCustomElement        Kind = "custom-element"
	KindCustomAttribute      Kind = "custom-attribute"
	KindTemplateController   Kind = "template-controller"
	KindValueConverter       Kind = "value-converter"
	KindBindingBehavior      Kind = "binding-behavior"
	kindBindable             Kind = "bindable"  // internal, for SymbolId namespacing only
	kindLocal                Kind = "local"     // internal, for SymbolId namespacing only
)

// SymbolId is an opaque, stable identifier for a resource, a bindable
// property of a resource, or a scope-local binding identifier. Equal
// inputs always produce an equal SymbolId; it is safe to use as a map
// key and to persist across snapshot versions (spec.md §3).
type SymbolId string

// NewResourceSymbolId builds the SymbolId for a top-level resource
// definition: kind + name + the file it was declared in (normalized).
func NewResourceSymbolId(kind Kind, name string, file span.FileId) SymbolId {
	return SymbolId(digest("res", string(kind), name, string(file)))
}

// NewBindableSymbolId builds the SymbolId for a bindable property owned
// by a resource.
func NewBindableSymbolId(owner SymbolId, property string) SymbolId {
	return SymbolId(digest("bindable", string(owner), property))
}

// NewLocalSymbolId builds the SymbolId for a scope-local identifier (a
// repeat iteration variable, a destructured binding, a <let> name) scoped
// to one frame of one document.
func NewLocalSymbolId(file span.FileId, frameID int, name string) SymbolId {
	return SymbolId(digest("local", string(file), fmt.Sprintf("%d", frameID), name))
}

// digest deterministically hashes its parts into a short, stable, opaque
// string. SHA-1 is used purely as a fast, collision-resistant mixing
// function — there is no cryptographic requirement here.
func digest(parts ...string) string {
	h := sha1.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
