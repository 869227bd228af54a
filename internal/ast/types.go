package ast

import "github.com/githubhjs/xls/internal/report"

// ConcreteType is a closed variant over the fully-resolved HDL types the
// converter ever has to lower: bit vectors, arrays, tuples, structs, and
// enums.  Widths and sizes are Dims, which may still be parametric at the
// point a ConcreteType is built and must be resolved against the active
// SymbolicBindings before the type can be lowered to IR.
type ConcreteType interface {
	// isConcreteType is unexported so ConcreteType stays a closed variant.
	isConcreteType()
}

// BitsType is a fixed-width, sign-qualified bit vector.
type BitsType struct {
	Signed bool
	Width  Dim
}

// ArrayType is a fixed-length homogeneous array.
type ArrayType struct {
	Elem ConcreteType
	Size Dim
}

// TupleType is an ordered, unnamed product type.
type TupleType struct {
	Members []ConcreteType
}

// StructField is one (name, type) pair of a struct, in declaration order.
type StructField struct {
	Name string
	Type ConcreteType
}

// StructType is an ordered, named product type.  Field names are carried
// here for attribute lookup but are erased once lowered to IR.
type StructType struct {
	Name   string
	Fields []StructField
}

// EnumType is a set of named constants sharing a single bit width.  Enum
// tags are erased at IR: an EnumType lowers to the same bits type as a
// BitsType of the same width.
type EnumType struct {
	Width Dim
}

func (*BitsType) isConcreteType()   {}
func (*ArrayType) isConcreteType()  {}
func (*TupleType) isConcreteType()  {}
func (*StructType) isConcreteType() {}
func (*EnumType) isConcreteType()   {}

// FieldIndex returns the declaration index of the named field, or false if
// the struct has no such field.
func (s *StructType) FieldIndex(name string) (int, bool) {
	for i, f := range s.Fields {
		if f.Name == name {
			return i, true
		}
	}
	return 0, false
}

// -----------------------------------------------------------------------------

// Dim is a width or size that is either a literal non-negative integer or a
// symbolic expression over the identifiers bound by the enclosing
// instantiation.
type Dim interface {
	// Resolve evaluates the dimension under bindings, recursively
	// substituting until a literal integer is obtained.
	Resolve(bindings *SymbolicBindings) (int, *report.ConversionError)
}

// LiteralDim is a Dim that is already a concrete integer.
type LiteralDim int

func (d LiteralDim) Resolve(*SymbolicBindings) (int, *report.ConversionError) {
	return int(d), nil
}

// DimExprKind enumerates the arithmetic operators a parametric dimension
// expression may use.
type DimExprKind int

const (
	DimIdent DimExprKind = iota
	DimAdd
	DimSub
	DimMul
)

// DimExpr is a symbolic parametric dimension, e.g. `N + 1` in
// `fn f<N: u32>(x: bits[N + 1])`.
type DimExpr struct {
	Kind     DimExprKind
	Ident    string   // valid when Kind == DimIdent
	Lhs, Rhs Dim      // valid otherwise
	Span     *report.Span
}

func (d *DimExpr) Resolve(bindings *SymbolicBindings) (int, *report.ConversionError) {
	if d.Kind == DimIdent {
		v, ok := bindings.Lookup(d.Ident)
		if !ok {
			return 0, report.Internalf(d.Span, "no symbolic binding for %q", d.Ident)
		}
		return v, nil
	}

	lhs, err := d.Lhs.Resolve(bindings)
	if err != nil {
		return 0, err
	}
	rhs, err := d.Rhs.Resolve(bindings)
	if err != nil {
		return 0, err
	}

	switch d.Kind {
	case DimAdd:
		return lhs + rhs, nil
	case DimSub:
		return lhs - rhs, nil
	case DimMul:
		return lhs * rhs, nil
	default:
		return 0, report.Internalf(d.Span, "unknown dim expr kind %d", d.Kind)
	}
}

// -----------------------------------------------------------------------------

// Binding is one identifier->integer entry of a SymbolicBindings, kept in
// binding-declaration order since the NameMangler's grammar is positional.
type Binding struct {
	Name  string
	Value int
}

// SymbolicBindings is the ordered, keyed mapping of a parametric
// instantiation's type parameters to their integer values at a particular
// call or conversion site.
type SymbolicBindings struct {
	Bindings []Binding
}

// Lookup finds the integer value bound to name, if any.
func (b *SymbolicBindings) Lookup(name string) (int, bool) {
	if b == nil {
		return 0, false
	}
	for _, bind := range b.Bindings {
		if bind.Name == name {
			return bind.Value, true
		}
	}
	return 0, false
}

// Keys returns the set of bound identifiers.
func (b *SymbolicBindings) Keys() map[string]bool {
	keys := make(map[string]bool)
	if b == nil {
		return keys
	}
	for _, bind := range b.Bindings {
		keys[bind.Name] = true
	}
	return keys
}

// Values returns the bound integer values in binding-declaration order, the
// same order the NameMangler uses to build `v1_v2_...`.
func (b *SymbolicBindings) Values() []int {
	if b == nil {
		return nil
	}
	vals := make([]int, len(b.Bindings))
	for i, bind := range b.Bindings {
		vals[i] = bind.Value
	}
	return vals
}

// Len reports the number of bindings, treating a nil receiver as empty.
func (b *SymbolicBindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Bindings)
}

// WithoutModuleConstants filters out entries whose name is a module-level
// constant rather than a true instantiation parameter; this is the "current"
// binding set used for mangling key generation.
func (b *SymbolicBindings) WithoutModuleConstants(moduleConsts map[string]bool) *SymbolicBindings {
	if b == nil {
		return nil
	}
	filtered := &SymbolicBindings{}
	for _, bind := range b.Bindings {
		if !moduleConsts[bind.Name] {
			filtered.Bindings = append(filtered.Bindings, bind)
		}
	}
	return filtered
}
