package convert

import (
	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/irb"
	"github.com/githubhjs/xls/internal/report"
)

// lowerIndex dispatches on Index.Kind, each of which lowers to a different
// IR primitive despite sharing one AST node.
func (l *Lowerer) lowerIndex(n *ast.Index) (IrValue, *report.ConversionError) {
	operand, err := l.lowerAndUse(n.Operand)
	if err != nil {
		return IrValue{}, err
	}

	switch n.Kind {
	case ast.IndexTuple:
		i, err := l.constantIndexValue(n.Rhs)
		if err != nil {
			return IrValue{}, err
		}
		return Dynamic(l.fb.TupleIndex(operand, i, l.span(n))), nil

	case ast.IndexSlice:
		start, width, ok := l.info.SliceBounds(n)
		if !ok {
			return IrValue{}, report.Internalf(n.Span(), "missing slice bounds for index expression")
		}
		return Dynamic(l.fb.BitSlice(operand, start, width, l.span(n))), nil

	case ast.IndexWidthSlice:
		t, err := l.resolver.Resolve(n)
		if err != nil {
			return IrValue{}, err
		}
		bt, ok := t.(*ast.BitsType)
		if !ok {
			return IrValue{}, report.Internalf(n.Span(), "width-slice result is not a bits type")
		}
		width, err := literalWidth(bt.Width)
		if err != nil {
			return IrValue{}, err
		}
		start, err := l.lowerAndUse(n.WidthStart)
		if err != nil {
			return IrValue{}, err
		}
		return Dynamic(l.fb.DynamicBitSlice(operand, start, width, l.span(n))), nil

	case ast.IndexArray:
		idx, err := l.lowerAndUse(n.Rhs)
		if err != nil {
			return IrValue{}, err
		}
		return Dynamic(l.fb.ArrayIndex(operand, []irb.Value{idx}, l.span(n))), nil

	default:
		return IrValue{}, report.Internalf(n.Span(), "unknown index kind %d", n.Kind)
	}
}

// constantIndexValue reads off a tuple-index rhs's compile-time integer
// value; tuple member indices are always literal in source DSLX.
func (l *Lowerer) constantIndexValue(rhs ast.Expr) (int, *report.ConversionError) {
	num, ok := rhs.(*ast.Number)
	if !ok {
		return 0, report.Internalf(rhs.Span(), "tuple index must be a literal")
	}
	return int(num.Value.Int64()), nil
}
