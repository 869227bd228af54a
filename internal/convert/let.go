package convert

import (
	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/report"
)

// lowerLet lowers `let pattern = rhs; body`. A leaf pattern aliases rhs's
// existing binding onto the defined name; a tuple pattern recursively
// destructures via TupleIndex, binding each leaf as it goes. The Let node
// itself aliases body's binding, so a reference to the let-expression
// reads as a reference to its body.
func (l *Lowerer) lowerLet(n *ast.Let) (IrValue, *report.ConversionError) {
	rhsVal, err := l.lowerExpr(n.Rhs)
	if err != nil {
		return IrValue{}, err
	}

	if n.Pattern.Leaf != nil {
		if err := l.values.Alias(n.Rhs, n.Pattern.Leaf); err != nil {
			return IrValue{}, err
		}
	} else if err := l.destructure(n.Pattern, rhsVal, n); err != nil {
		return IrValue{}, err
	}

	bodyVal, err := l.lowerExpr(n.Body)
	if err != nil {
		return IrValue{}, err
	}
	if err := l.values.Alias(n.Body, n); err != nil {
		return IrValue{}, err
	}
	return bodyVal, nil
}

// destructure walks a tuple LetPattern in pre-order, emitting a TupleIndex
// for each member and binding leaf NameDefs to the result. pos supplies the
// span attached to synthesized TupleIndex nodes.
func (l *Lowerer) destructure(pattern *ast.LetPattern, val IrValue, pos ast.Node) *report.ConversionError {
	for i, member := range pattern.Tuple {
		memberVal := Dynamic(l.fb.TupleIndex(val.Handle, i, l.span(pos)))
		if member.Leaf != nil {
			if err := l.values.Bind(member.Leaf, memberVal); err != nil {
				return err
			}
			continue
		}
		if err := l.destructure(member, memberVal, pos); err != nil {
			return err
		}
	}
	return nil
}
