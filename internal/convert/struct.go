package convert

import (
	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/irb"
	"github.com/githubhjs/xls/internal/report"
)

// lowerStructLiteral emits members in the struct's declared field order
// (StructLiteral.Members is already in that order, not source order), and
// additionally records a Constant binding when every member is
// compile-time known.
func (l *Lowerer) lowerStructLiteral(n *ast.StructLiteral) (IrValue, *report.ConversionError) {
	members := make([]irb.Value, len(n.Members))
	elemLits := make([]*irb.Literal, len(n.Members))
	allConstant := true
	for i, m := range n.Members {
		v, err := l.lowerExpr(m)
		if err != nil {
			return IrValue{}, err
		}
		members[i] = v.Handle
		if v.IsConstant() {
			elemLits[i] = v.Literal
		} else {
			allConstant = false
		}
	}

	h := l.fb.Tuple(members, l.span(n))
	if !allConstant {
		return Dynamic(h), nil
	}
	lit := irb.NewCompositeLiteral(h.Type(), elemLits)
	return Constant(h, lit), nil
}

// lowerStructSplat lowers `Base { field: override, ..base }`: base and
// every override expression are visited first, then the struct's members
// are rebuilt in declared order, substituting an override where present
// and otherwise reading the corresponding field out of base.
func (l *Lowerer) lowerStructSplat(n *ast.StructSplat) (IrValue, *report.ConversionError) {
	baseHandle, err := l.lowerAndUse(n.BaseExpr)
	if err != nil {
		return IrValue{}, err
	}

	overrides := make(map[string]irb.Value, len(n.Overrides))
	for name, expr := range n.Overrides {
		v, err := l.lowerAndUse(expr)
		if err != nil {
			return IrValue{}, err
		}
		overrides[name] = v
	}

	fields := n.StructDef.Type.Fields
	members := make([]irb.Value, len(fields))
	for i, f := range fields {
		if ov, ok := overrides[f.Name]; ok {
			members[i] = ov
			continue
		}
		members[i] = l.fb.TupleIndex(baseHandle, i, l.span(n))
	}
	return Dynamic(l.fb.Tuple(members, l.span(n))), nil
}

// lowerAttr resolves lhs.FieldName to its declared field index and emits a
// TupleIndex, attaching the field name as a debug name on the result.
func (l *Lowerer) lowerAttr(n *ast.Attr) (IrValue, *report.ConversionError) {
	operandType, err := l.resolver.Resolve(n.Operand)
	if err != nil {
		return IrValue{}, err
	}
	st, ok := operandType.(*ast.StructType)
	if !ok {
		return IrValue{}, report.Internalf(n.Span(), "attr access on non-struct type")
	}
	idx, ok := st.FieldIndex(n.FieldName)
	if !ok {
		return IrValue{}, report.Internalf(n.Span(), "unknown struct field %q", n.FieldName)
	}

	operand, err := l.lowerAndUse(n.Operand)
	if err != nil {
		return IrValue{}, err
	}
	h := l.fb.TupleIndex(operand, idx, l.span(n))
	if named, ok := h.(interface{ SetName(string) }); ok {
		named.SetName(n.FieldName)
	}
	return Dynamic(h), nil
}
