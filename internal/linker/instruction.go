// Package linker implements the linker (S6) and scope binder (S7): it
// walks a parsed template's DOM, resolves each attribute through the
// S3 pattern registry, and compiles the result into a tree of binding
// instructions plus the scope graph structural controllers introduce
// (spec.md §4.5).
package linker

import (
	"github.com/aurelia/aurelia-ls-sub004/internal/expr"
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/template"
)

// InstructionKind is the closed set of instruction variants spec.md
// §4.5 names.
type InstructionKind string

const (
	KindPropertyBinding          InstructionKind = "propertyBinding"
	KindAttributeBinding         InstructionKind = "attributeBinding"
	KindStylePropertyBinding     InstructionKind = "stylePropertyBinding"
	KindListenerBinding          InstructionKind = "listenerBinding"
	KindRefBinding               InstructionKind = "refBinding"
	KindLetBinding               InstructionKind = "letBinding"
	KindSetProperty              InstructionKind = "setProperty"
	KindHydrateTemplateController InstructionKind = "hydrateTemplateController"
	KindHydrateAttribute         InstructionKind = "hydrateAttribute"
	KindHydrateElement           InstructionKind = "hydrateElement"
)

// TargetKind classifies what an instruction's Target name resolved
// against (spec.md §4.5 "Bindable resolution").
type TargetKind string

const (
	TargetElementBindable   TargetKind = "element.bindable"
	TargetAttributeBindable TargetKind = "attribute.bindable"
	TargetControllerProp    TargetKind = "controller.prop"
	TargetUnknown           TargetKind = "unknown"
	TargetLetBinding        TargetKind = "letBinding"
)

// FromKind distinguishes a plain parsed expression from an
// interpolation's multi-expression form.
type FromKind string

const (
	FromExpr   FromKind = "expr"
	FromInterp FromKind = "interp"
)

// From is the value side of a binding instruction.
type From struct {
	Kind  FromKind
	Expr  expr.Node   // set when Kind == FromExpr
	Exprs []expr.Node // set when Kind == FromInterp (one per hole)
}

// Instruction is one compiled attribute: a binding, a listener, a
// hydration, a ref, or a static set-property.
type Instruction struct {
	Kind     InstructionKind
	Target   string
	TargetOf TargetKind
	Bindable *resources.BindableDef
	Command  string
	Modifier string // listener option, e.g. "once"/"capture"
	From     From
	ToBindingContext bool // letBinding only

	Resource *resources.ResourceDef // set for hydrateElement/hydrateAttribute/hydrateTemplateController
	Attr     *template.Attr
	Node     *template.Node
}

// ElementRow is one linked DOM element: its own static attributes plus
// the instructions compiled from its dynamic ones, and (for structural
// controllers) the nested template it controls.
type ElementRow struct {
	Node         *template.Node
	Instructions []Instruction
	Children     []*ElementRow
	FrameId      int // the ScopeFrame this row's own instructions resolve against
}

// LinkedTemplate is S6's result: the linked row tree, the scope graph,
// and the expression table S9 (provenance) and S10 (cursor) consume.
type LinkedTemplate struct {
	Roots     []*ElementRow
	Scope     *ScopeGraph
	ExprTable []ExprEntry
}

// ExprEntry records one parsed expression and the frame it resolves
// against.
type ExprEntry struct {
	Id      int
	Node    expr.Node
	Span    span.Span
	FrameId int
}
