package convert

import (
	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/irb"
	"github.com/githubhjs/xls/internal/report"
)

// IrValue is the tagged variant the ValueTable binds every converted AST
// node to: a Dynamic handle to a builder-produced node, or a Constant
// pairing a compile-time-known literal with its own IR materialization.
type IrValue struct {
	Handle  irb.Value
	Literal *irb.Literal // non-nil iff this binding is Constant
}

// IsConstant reports whether this binding is the Constant variant.
func (v IrValue) IsConstant() bool { return v.Literal != nil }

// Dynamic wraps a builder handle with no associated compile-time literal.
func Dynamic(h irb.Value) IrValue { return IrValue{Handle: h} }

// Constant wraps a builder handle together with the literal it was
// materialized from.
func Constant(h irb.Value, lit *irb.Literal) IrValue { return IrValue{Handle: h, Literal: lit} }

// ValueTable maps each AST node identity to its assigned IR value across
// one function's conversion.  Once an AST node is bound, the binding is
// never mutated -- rebinding is a programmer error, reported as an
// Internal ConversionError rather than silently overwritten.
type ValueTable struct {
	bindings map[ast.Node]IrValue
}

// NewValueTable creates an empty table, sized for one function's worth of
// bindings.
func NewValueTable() *ValueTable {
	return &ValueTable{bindings: make(map[ast.Node]IrValue)}
}

// Bind stores a fresh binding for node. It is an error to bind a node that
// already has one.
func (t *ValueTable) Bind(node ast.Node, v IrValue) *report.ConversionError {
	if _, ok := t.bindings[node]; ok {
		return report.Internalf(node.Span(), "node already bound in value table")
	}
	t.bindings[node] = v
	return nil
}

// Lookup returns the binding for node, if any.
func (t *ValueTable) Lookup(node ast.Node) (IrValue, bool) {
	v, ok := t.bindings[node]
	return v, ok
}

// Use extracts the IR handle bound to node, regardless of variant.
func (t *ValueTable) Use(node ast.Node) (irb.Value, *report.ConversionError) {
	v, ok := t.bindings[node]
	if !ok {
		return nil, report.NotFoundf(node.Span(), "no binding for node")
	}
	return v.Handle, nil
}

// Alias copies from's binding onto to, letting let-bindings, pattern
// leaves, and ColonRef-to-constant references share one IR node instead of
// re-emitting it.  If to is a name-definition node whose binding is
// Dynamic, the defined identifier is attached to the IR handle as a debug
// name.
func (t *ValueTable) Alias(from, to ast.Node) *report.ConversionError {
	v, ok := t.bindings[from]
	if !ok {
		return report.NotFoundf(from.Span(), "no binding to alias from")
	}
	if _, ok := t.bindings[to]; ok {
		return report.Internalf(to.Span(), "node already bound in value table")
	}
	t.bindings[to] = v

	if def, ok := to.(*ast.NameDef); ok && !v.IsConstant() {
		if named, ok := v.Handle.(interface{ SetName(string) }); ok {
			named.SetName(def.Name)
		}
	}
	return nil
}
