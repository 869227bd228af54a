package convert

import (
	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/irb"
	"github.com/githubhjs/xls/internal/irtypes"
	"github.com/githubhjs/xls/internal/report"
)

// lowerExpr dispatches on node's concrete kind, lowers its children per
// that kind's contract, emits IR via the builder, and binds the result in
// the value table before returning it (unless the handler already aliased
// a binding onto node itself, as Let and ColonRef lowering do).
func (l *Lowerer) lowerExpr(node ast.Expr) (IrValue, *report.ConversionError) {
	if v, ok := l.values.Lookup(node); ok {
		return v, nil
	}

	var result IrValue
	var err *report.ConversionError

	switch n := node.(type) {
	case *ast.Number:
		result, err = l.lowerNumber(n)
	case *ast.Unop:
		result, err = l.lowerUnop(n)
	case *ast.Binop:
		result, err = l.lowerBinop(n)
	case *ast.Cast:
		result, err = l.lowerCast(n)
	case *ast.Index:
		result, err = l.lowerIndex(n)
	case *ast.ArrayLiteral:
		result, err = l.lowerArrayLiteral(n)
	case *ast.ConstantArray:
		result, err = l.lowerConstantArray(n)
	case *ast.TupleLiteral:
		result, err = l.lowerTupleLiteral(n)
	case *ast.StructLiteral:
		result, err = l.lowerStructLiteral(n)
	case *ast.StructSplat:
		result, err = l.lowerStructSplat(n)
	case *ast.Attr:
		result, err = l.lowerAttr(n)
	case *ast.Let:
		result, err = l.lowerLet(n)
	case *ast.Ternary:
		result, err = l.lowerTernary(n)
	case *ast.ColonRef:
		result, err = l.lowerColonRef(n)
	case *ast.Invocation:
		result, err = l.lowerInvocation(n)
	case *ast.Match:
		result, err = l.lowerMatch(n)
	case *ast.NameRef:
		result, err = l.lowerNameRef(n)
	case *ast.For:
		result, err = l.lowerFor(n)
	default:
		return IrValue{}, report.Internalf(node.Span(), "unsupported expression kind %T", node)
	}
	if err != nil {
		return IrValue{}, err
	}

	if _, aliased := l.values.Lookup(node); aliased {
		return result, nil
	}
	if bindErr := l.values.Bind(node, result); bindErr != nil {
		return IrValue{}, bindErr
	}
	return result, nil
}

// lowerNameRef resolves a reference to a previously-bound name. NameRef
// nodes are ephemeral read sites, not new definitions, so the binding we
// return is the one already recorded for its NameDef or function parameter.
// A reference to a module-level ConstantDef is the one case with nothing
// recorded yet on first use -- constants aren't parameters, so nothing
// binds them ahead of time -- and is lowered lazily, once, here.
func (l *Lowerer) lowerNameRef(n *ast.NameRef) (IrValue, *report.ConversionError) {
	def, ok := n.Def.(ast.Node)
	if !ok {
		return IrValue{}, report.Internalf(n.Span(), "unresolved name reference %q", n.Name)
	}
	if v, ok := l.values.Lookup(def); ok {
		return v, nil
	}
	cd, ok := def.(*ast.ConstantDef)
	if !ok {
		return IrValue{}, report.NotFoundf(n.Span(), "no binding for name %q", n.Name)
	}
	v, err := l.lowerExpr(cd.Value)
	if err != nil {
		return IrValue{}, err
	}
	if err := l.values.Alias(cd.Value, cd); err != nil {
		return IrValue{}, err
	}
	return v, nil
}

func (l *Lowerer) lowerNumber(n *ast.Number) (IrValue, *report.ConversionError) {
	t, err := l.resolver.Resolve(n)
	if err != nil {
		return IrValue{}, err
	}
	bitsT, ok := t.(*ast.BitsType)
	if !ok {
		return IrValue{}, report.Internalf(n.Span(), "number literal resolved to non-bits type")
	}
	w, err := literalWidth(bitsT.Width)
	if err != nil {
		return IrValue{}, err
	}
	lit := irb.NewBitsLiteral(n.Value, w)
	h := l.fb.Literal(lit, l.span(n))
	return Constant(h, lit), nil
}

func (l *Lowerer) lowerUnop(n *ast.Unop) (IrValue, *report.ConversionError) {
	operand, err := l.lowerAndUse(n.Operand)
	if err != nil {
		return IrValue{}, err
	}
	switch n.Kind {
	case ast.Negate:
		return Dynamic(l.fb.Neg(operand, l.span(n))), nil
	case ast.Invert:
		return Dynamic(l.fb.Not(operand, l.span(n))), nil
	default:
		return IrValue{}, report.Internalf(n.Span(), "unknown unary operator kind %d", n.Kind)
	}
}

// lhsSigned reports whether e's resolved type is a signed bits type, the
// signal every signed/unsigned binary operator variant dispatches on.
func (l *Lowerer) lhsSigned(e ast.Expr) (bool, *report.ConversionError) {
	t, err := l.resolver.Resolve(e)
	if err != nil {
		return false, err
	}
	bitsT, ok := t.(*ast.BitsType)
	if !ok {
		return false, nil
	}
	return bitsT.Signed, nil
}

func (l *Lowerer) lowerBinop(n *ast.Binop) (IrValue, *report.ConversionError) {
	if n.Kind == ast.Concat {
		return l.lowerConcat(n)
	}

	lhs, err := l.lowerAndUse(n.Lhs)
	if err != nil {
		return IrValue{}, err
	}
	rhs, err := l.lowerAndUse(n.Rhs)
	if err != nil {
		return IrValue{}, err
	}

	signed, err := l.lhsSigned(n.Lhs)
	if err != nil {
		return IrValue{}, err
	}
	pos := l.span(n)

	switch n.Kind {
	case ast.Add:
		return Dynamic(l.fb.Add(lhs, rhs, pos)), nil
	case ast.Sub:
		return Dynamic(l.fb.Sub(lhs, rhs, pos)), nil
	case ast.Mul:
		if signed {
			return Dynamic(l.fb.SMul(lhs, rhs, pos)), nil
		}
		return Dynamic(l.fb.UMul(lhs, rhs, pos)), nil
	case ast.Div:
		if signed {
			return IrValue{}, report.Unimplementedf(pos, "signed division is not supported")
		}
		return Dynamic(l.fb.UDiv(lhs, rhs, pos)), nil
	case ast.Eq:
		return Dynamic(l.fb.Eq(lhs, rhs, pos)), nil
	case ast.Ne:
		return Dynamic(l.fb.Ne(lhs, rhs, pos)), nil
	case ast.Ge:
		if signed {
			return Dynamic(l.fb.SGe(lhs, rhs, pos)), nil
		}
		return Dynamic(l.fb.UGe(lhs, rhs, pos)), nil
	case ast.Gt:
		if signed {
			return Dynamic(l.fb.SGt(lhs, rhs, pos)), nil
		}
		return Dynamic(l.fb.UGt(lhs, rhs, pos)), nil
	case ast.Le:
		if signed {
			return Dynamic(l.fb.SLe(lhs, rhs, pos)), nil
		}
		return Dynamic(l.fb.ULe(lhs, rhs, pos)), nil
	case ast.Lt:
		if signed {
			return Dynamic(l.fb.SLt(lhs, rhs, pos)), nil
		}
		return Dynamic(l.fb.ULt(lhs, rhs, pos)), nil
	case ast.Shrl:
		return Dynamic(l.fb.Shrl(lhs, rhs, pos)), nil
	case ast.Shll:
		return Dynamic(l.fb.Shll(lhs, rhs, pos)), nil
	case ast.Shra:
		return Dynamic(l.fb.Shra(lhs, rhs, pos)), nil
	case ast.And, ast.LogicalAnd:
		return Dynamic(l.fb.And(lhs, rhs, pos)), nil
	case ast.Or, ast.LogicalOr:
		return Dynamic(l.fb.Or(lhs, rhs, pos)), nil
	case ast.Xor:
		return Dynamic(l.fb.Xor(lhs, rhs, pos)), nil
	default:
		return IrValue{}, report.Internalf(pos, "unknown binary operator kind %d", n.Kind)
	}
}

// lowerConcat emits Concat for a Bits result or ArrayConcat for an Array
// result, per the resolved output type of the Binop node itself.
func (l *Lowerer) lowerConcat(n *ast.Binop) (IrValue, *report.ConversionError) {
	lhs, err := l.lowerAndUse(n.Lhs)
	if err != nil {
		return IrValue{}, err
	}
	rhs, err := l.lowerAndUse(n.Rhs)
	if err != nil {
		return IrValue{}, err
	}

	outType, err := l.resolver.Resolve(n)
	if err != nil {
		return IrValue{}, err
	}

	switch outType.(type) {
	case *ast.BitsType:
		return Dynamic(l.fb.Concat([]irb.Value{lhs, rhs}, l.span(n))), nil
	case *ast.ArrayType:
		return Dynamic(l.fb.ArrayConcat([]irb.Value{lhs, rhs}, l.span(n))), nil
	default:
		return IrValue{}, report.Internalf(n.Span(), "concat result is neither bits nor array")
	}
}

func (l *Lowerer) lowerTernary(n *ast.Ternary) (IrValue, *report.ConversionError) {
	cond, err := l.lowerAndUse(n.Cond)
	if err != nil {
		return IrValue{}, err
	}
	cons, err := l.lowerAndUse(n.Consequent)
	if err != nil {
		return IrValue{}, err
	}
	alt, err := l.lowerAndUse(n.Alternate)
	if err != nil {
		return IrValue{}, err
	}
	return Dynamic(l.fb.Select(cond, cons, alt, l.span(n))), nil
}

func (l *Lowerer) lowerArrayLiteral(n *ast.ArrayLiteral) (IrValue, *report.ConversionError) {
	members := make([]irb.Value, 0, len(n.Members))
	for _, m := range n.Members {
		v, err := l.lowerAndUse(m)
		if err != nil {
			return IrValue{}, err
		}
		members = append(members, v)
	}

	t, err := l.resolver.Resolve(n)
	if err != nil {
		return IrValue{}, err
	}
	arrT, ok := t.(*ast.ArrayType)
	if !ok {
		return IrValue{}, report.Internalf(n.Span(), "array literal resolved to non-array type")
	}
	size, err := literalWidth(arrT.Size)
	if err != nil {
		return IrValue{}, err
	}
	if n.HasEllipsis && len(members) > 0 {
		last := members[len(members)-1]
		for len(members) < size {
			members = append(members, last)
		}
	}

	elemType, err := LowerType(arrT.Elem)
	if err != nil {
		return IrValue{}, err
	}
	return Dynamic(l.fb.Array(members, elemType, l.span(n))), nil
}

// lowerConstantArray behaves like lowerArrayLiteral but additionally
// records a Constant binding, since every member is compile-time known.
func (l *Lowerer) lowerConstantArray(n *ast.ConstantArray) (IrValue, *report.ConversionError) {
	elemLits := make([]*irb.Literal, 0, len(n.Members))
	members := make([]irb.Value, 0, len(n.Members))
	for _, m := range n.Members {
		v, err := l.lowerExpr(m)
		if err != nil {
			return IrValue{}, err
		}
		if !v.IsConstant() {
			return IrValue{}, report.Internalf(m.Span(), "constant array member is not compile-time known")
		}
		elemLits = append(elemLits, v.Literal)
		members = append(members, v.Handle)
	}

	t, err := l.resolver.Resolve(n)
	if err != nil {
		return IrValue{}, err
	}
	irT, err := LowerType(t)
	if err != nil {
		return IrValue{}, err
	}
	h := l.fb.Array(members, irT.(*irtypes.Array).Elem, l.span(n))
	lit := irb.NewCompositeLiteral(irT, elemLits)
	return Constant(h, lit), nil
}

func (l *Lowerer) lowerTupleLiteral(n *ast.TupleLiteral) (IrValue, *report.ConversionError) {
	members := make([]irb.Value, 0, len(n.Members))
	for _, m := range n.Members {
		v, err := l.lowerAndUse(m)
		if err != nil {
			return IrValue{}, err
		}
		members = append(members, v)
	}
	return Dynamic(l.fb.Tuple(members, l.span(n))), nil
}
