package linker

import (
	"strings"

	"github.com/aurelia/aurelia-ls-sub004/internal/expr"
	"github.com/aurelia/aurelia-ls-sub004/internal/patterns"
	"github.com/aurelia/aurelia-ls-sub004/internal/resources"
	"github.com/aurelia/aurelia-ls-sub004/internal/span"
	"github.com/aurelia/aurelia-ls-sub004/internal/template"
)

// bindCommands is the closed set of commands spec.md §4.5 routes to
// propertyBinding/attributeBinding.
var bindCommands = map[string]bool{
	"bind": true, "to-view": true, "from-view": true, "two-way": true, "one-time": true,
}

var listenerCommands = map[string]bool{"trigger": true, "capture": true, "delegate": true}

// Linker holds the shared inputs for one link() call: the resource
// index, pattern registry, and the known-globals set the expression
// parser needs.
type Linker struct {
	Resources *resources.Index
	Registry  *patterns.Registry
	Globals   map[string]bool
	File      span.FileId

	exprs []ExprEntry
	next  int
}

// Link implements S6/S7: link(dom, meta, resources, parser, registry).
func Link(doc *template.Document, resourcesIdx *resources.Index, registry *patterns.Registry, globals map[string]bool, file span.FileId) *LinkedTemplate {
	l := &Linker{Resources: resourcesIdx, Registry: registry, Globals: globals, File: file}
	scope := NewScopeGraph()

	var roots []*ElementRow
	for _, n := range doc.Roots {
		if row := l.linkNode(n, scope, scope.RootId); row != nil {
			roots = append(roots, row)
		}
	}

	return &LinkedTemplate{Roots: roots, Scope: scope, ExprTable: l.exprs}
}

func (l *Linker) parseExpr(value string, valueSpan span.Span, mode expr.Mode, frameId int) expr.Node {
	node := expr.Parse(value, mode, expr.Options{BaseSpan: &valueSpan, File: l.File, Globals: l.Globals})
	id := l.next
	l.next++
	l.exprs = append(l.exprs, ExprEntry{Id: id, Node: node, Span: node.Span(), FrameId: frameId})
	return node
}

func (l *Linker) linkNode(n *template.Node, scope *ScopeGraph, frameId int) *ElementRow {
	if n == nil || n.Kind != template.KindElement {
		return nil
	}

	row := &ElementRow{Node: n, FrameId: frameId}

	elementDef := l.Resources.LookupElement(n.TagName)
	if elementDef != nil {
		row.Instructions = append(row.Instructions, Instruction{
			Kind:     KindHydrateElement,
			Target:   n.TagName,
			Resource: elementDef,
			Node:     n,
		})
	}

	if n.TagName == "let" {
		for i := range n.Attrs {
			row.Instructions = append(row.Instructions, l.linkLetAttr(&n.Attrs[i], frameId))
		}
		return row
	}

	childFrame := frameId
	var controllerInstrs []Instruction

	for i := range n.Attrs {
		a := &n.Attrs[i]
		result, matched := l.Registry.Analyze(a.Name)

		if !matched {
			l.linkImplicitAttr(a, elementDef, frameId, row)
			continue
		}

		target, command := result.Target, result.Command

		if ctrlDef := l.Resources.Lookup(resources.KindTemplateController, target); ctrlDef != nil && ctrlDef.IsTemplateController {
			instr := l.linkController(a, target, ctrlDef, childFrame, &childFrame, scope)
			controllerInstrs = append(controllerInstrs, instr)
			continue
		}

		if attrDef := l.Resources.Lookup(resources.KindCustomAttribute, target); attrDef != nil {
			row.Instructions = append(row.Instructions, l.linkCustomAttribute(a, target, attrDef, frameId))
			continue
		}

		if isRefTarget(target) {
			row.Instructions = append(row.Instructions, l.linkRef(a, target, frameId))
			continue
		}

		if listenerCommands[command] {
			row.Instructions = append(row.Instructions, l.linkListener(a, target, command, frameId))
			continue
		}

		if bindCommands[command] {
			row.Instructions = append(row.Instructions, l.linkBindCommand(a, target, command, elementDef, frameId))
			continue
		}

		// An unrecognized command/target combination: fall through to
		// static/interpolation handling keyed on the raw attribute name.
		l.linkImplicitAttr(a, elementDef, frameId, row)
	}

	var children []*ElementRow
	for _, c := range n.Children {
		if child := l.linkNode(c, scope, childFrame); child != nil {
			children = append(children, child)
		}
	}
	row.Children = children
	row.Instructions = append(row.Instructions, controllerInstrs...)

	return row
}

// linkImplicitAttr handles an attribute the pattern registry didn't
// match at all: plain HTML attributes, interpolated string values, and
// bindable-demanded static set-properties (spec.md §4.5 "Otherwise the
// attribute is static").
func (l *Linker) linkImplicitAttr(a *template.Attr, owner *resources.ResourceDef, frameId int, row *ElementRow) {
	if a.HasValue && strings.Contains(a.Value, "${") {
		holes := l.parseInterpolation(a.Value, a.ValueSpan, frameId)
		row.Instructions = append(row.Instructions, Instruction{
			Kind:     propertyOrAttribute(a.Name),
			Target:   a.Name,
			TargetOf: targetKindFor(owner, a.Name),
			Bindable: bindableFor(owner, a.Name),
			From:     From{Kind: FromInterp, Exprs: holes},
			Attr:     a,
		})
		return
	}

	if owner != nil {
		if b := owner.Bindable(a.Name); b != nil {
			row.Instructions = append(row.Instructions, Instruction{
				Kind:     KindSetProperty,
				Target:   a.Name,
				TargetOf: TargetElementBindable,
				Bindable: b,
				From:     From{Kind: FromExpr, Expr: expr.NewPrimitiveLiteral(a.Value, a.ValueSpan)},
				Attr:     a,
			})
		}
	}
}

func (l *Linker) parseInterpolation(value string, valueSpan span.Span, frameId int) []expr.Node {
	node := l.parseExpr(value, valueSpan, expr.ModeInterpolation, frameId)
	interp, ok := node.(*expr.Interpolation)
	if !ok {
		return nil
	}
	return interp.Expressions
}

func (l *Linker) linkLetAttr(a *template.Attr, frameId int) Instruction {
	target := a.Name
	toBindingContext := false
	if result, matched := l.Registry.Analyze(a.Name); matched {
		target = result.Target
	}
	var fromNode expr.Node
	if a.HasValue {
		fromNode = l.parseExpr(a.Value, a.ValueSpan, expr.ModeIsProperty, frameId)
	}
	return Instruction{
		Kind:             KindLetBinding,
		Target:           target,
		TargetOf:         TargetLetBinding,
		From:             From{Kind: FromExpr, Expr: fromNode},
		ToBindingContext: toBindingContext,
		Attr:             a,
	}
}

func isRefTarget(target string) bool {
	return target == "ref" || strings.HasSuffix(target, "-ref") || target == "view-model" || target == "view"
}

func (l *Linker) linkRef(a *template.Attr, target string, frameId int) Instruction {
	var fromNode expr.Node
	if a.HasValue {
		fromNode = l.parseExpr(a.Value, a.ValueSpan, expr.ModeIsProperty, frameId)
	}
	return Instruction{
		Kind:     KindRefBinding,
		Target:   target,
		From:     From{Kind: FromExpr, Expr: fromNode},
		Attr:     a,
	}
}

func (l *Linker) linkListener(a *template.Attr, target, command string, frameId int) Instruction {
	var fromNode expr.Node
	if a.HasValue {
		fromNode = l.parseExpr(a.Value, a.ValueSpan, expr.ModeIsFunction, frameId)
	}
	modifier := ""
	res, _ := l.Registry.Analyze(a.Name)
	if len(res.Parts) > 1 && res.Parts[len(res.Parts)-1] != command {
		modifier = res.Parts[len(res.Parts)-1]
	}
	return Instruction{
		Kind:     KindListenerBinding,
		Target:   target,
		Command:  command,
		Modifier: modifier,
		From:     From{Kind: FromExpr, Expr: fromNode},
		Attr:     a,
	}
}

func (l *Linker) linkBindCommand(a *template.Attr, target, command string, owner *resources.ResourceDef, frameId int) Instruction {
	var fromNode expr.Node
	if a.HasValue {
		fromNode = l.parseExpr(a.Value, a.ValueSpan, expr.ModeIsProperty, frameId)
	}

	kind := propertyOrAttribute(target)
	if target == "style" && owner == nil {
		// Only when the host is a native element (owner == nil, i.e. the
		// tag isn't a registered custom element) does a `style` target
		// route to stylePropertyBinding; a custom element that declares
		// its own `style` bindable binds through that bindable instead
		// (spec.md §4.5 "Style properties route to stylePropertyBinding
		// when the host is a native element and the attribute target is
		// a style property").
		kind = KindStylePropertyBinding
	}

	return Instruction{
		Kind:     kind,
		Target:   target,
		TargetOf: targetKindFor(owner, target),
		Bindable: bindableFor(owner, target),
		Command:  command,
		From:     From{Kind: FromExpr, Expr: fromNode},
		Attr:     a,
	}
}

func (l *Linker) linkCustomAttribute(a *template.Attr, target string, attrDef *resources.ResourceDef, frameId int) Instruction {
	var fromNode expr.Node
	if a.HasValue {
		fromNode = l.parseExpr(a.Value, a.ValueSpan, expr.ModeIsProperty, frameId)
	}
	return Instruction{
		Kind:     KindHydrateAttribute,
		Target:   target,
		TargetOf: TargetAttributeBindable,
		Resource: attrDef,
		From:     From{Kind: FromExpr, Expr: fromNode},
		Attr:     a,
	}
}

func (l *Linker) linkController(a *template.Attr, target string, ctrlDef *resources.ResourceDef, parentFrame int, childFrame *int, scope *ScopeGraph) Instruction {
	newFrame := parentFrame
	var fromNode expr.Node
	if a.HasValue {
		mode := expr.ModeIsIterator
		if isIteratorTarget(target) {
			fromNode = l.parseExpr(a.Value, a.ValueSpan, mode, parentFrame)
			if forOf, ok := fromNode.(*expr.ForOfStatement); ok {
				if ident, ok := forOf.Declaration.(*expr.BindingIdentifier); ok {
					newFrame = scope.PushRepeatFrame(parentFrame, ident.Name)
				} else {
					newFrame = scope.PushFrame(parentFrame)
					addDestructureSymbols(scope, newFrame, forOf.Declaration)
				}
			}
		} else {
			fromNode = l.parseExpr(a.Value, a.ValueSpan, expr.ModeIsProperty, parentFrame)
		}
	}
	*childFrame = newFrame
	return Instruction{
		Kind:     KindHydrateTemplateController,
		Target:   target,
		TargetOf: TargetControllerProp,
		Resource: ctrlDef,
		From:     From{Kind: FromExpr, Expr: fromNode},
		Attr:     a,
	}
}

func isIteratorTarget(target string) bool {
	return target == "repeat"
}

func addDestructureSymbols(scope *ScopeGraph, frameId int, n expr.Node) {
	switch v := n.(type) {
	case *expr.BindingIdentifier:
		scope.AddDestructureSymbol(frameId, v.Name)
	case *expr.ArrayBindingPattern:
		for _, e := range v.Elements {
			addDestructureSymbols(scope, frameId, e)
		}
	case *expr.ObjectBindingPattern:
		for _, e := range v.Elements {
			addDestructureSymbols(scope, frameId, e)
		}
	case *expr.BindingPatternDefault:
		addDestructureSymbols(scope, frameId, v.Target)
	}
}

// propertyOrAttribute decides propertyBinding vs attributeBinding by
// target shape: a target containing a dash binds as a plain attribute;
// every other target binds as a property. There is no table of known
// DOM property spellings (spec.md §4.5).
func propertyOrAttribute(target string) InstructionKind {
	if strings.Contains(target, "-") {
		return KindAttributeBinding
	}
	for i := 0; i < len(target); i++ {
		if target[i] >= 'A' && target[i] <= 'Z' {
			return KindPropertyBinding
		}
	}
	return KindPropertyBinding
}

func targetKindFor(owner *resources.ResourceDef, target string) TargetKind {
	if owner == nil {
		return TargetUnknown
	}
	if owner.Bindable(target) != nil {
		return TargetElementBindable
	}
	return TargetUnknown
}

func bindableFor(owner *resources.ResourceDef, target string) *resources.BindableDef {
	if owner == nil {
		return nil
	}
	return owner.Bindable(target)
}
