package convert

import (
	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/irb"
	"github.com/githubhjs/xls/internal/irtypes"
	"github.com/githubhjs/xls/internal/report"
)

// builtinNames is the set of free-function names the dispatcher recognizes;
// anything else with a nil NameRef.Def is an unresolved identifier error.
var builtinNames = map[string]bool{
	"and_reduce": true, "or_reduce": true, "xor_reduce": true,
	"clz": true, "ctz": true, "rev": true,
	"bit_slice": true, "one_hot": true, "one_hot_sel": true,
	"signex": true, "update": true, "map": true,
}

// lowerBuiltinCall dispatches a builtin invocation. handled is false when
// name is not a recognized builtin, letting the caller distinguish "not a
// builtin" from "builtin call failed".
func (l *Lowerer) lowerBuiltinCall(name string, n *ast.Invocation) (IrValue, bool, *report.ConversionError) {
	if !builtinNames[name] {
		return IrValue{}, false, nil
	}

	v, err := l.dispatchBuiltin(name, n)
	return v, true, err
}

func (l *Lowerer) dispatchBuiltin(name string, n *ast.Invocation) (IrValue, *report.ConversionError) {
	pos := l.span(n)

	switch name {
	case "and_reduce", "or_reduce", "xor_reduce":
		x, err := l.lowerAndUse(n.Args[0])
		if err != nil {
			return IrValue{}, err
		}
		switch name {
		case "and_reduce":
			return Dynamic(l.fb.AndReduce(x, pos)), nil
		case "or_reduce":
			return Dynamic(l.fb.OrReduce(x, pos)), nil
		default:
			return Dynamic(l.fb.XorReduce(x, pos)), nil
		}

	case "clz":
		x, err := l.lowerAndUse(n.Args[0])
		if err != nil {
			return IrValue{}, err
		}
		return Dynamic(l.fb.Clz(x, pos)), nil

	case "ctz":
		x, err := l.lowerAndUse(n.Args[0])
		if err != nil {
			return IrValue{}, err
		}
		return Dynamic(l.fb.Ctz(x, pos)), nil

	case "rev":
		x, err := l.lowerAndUse(n.Args[0])
		if err != nil {
			return IrValue{}, err
		}
		return Dynamic(l.fb.Reverse(x, pos)), nil

	case "bit_slice":
		x, err := l.lowerAndUse(n.Args[0])
		if err != nil {
			return IrValue{}, err
		}
		start, err := l.requireConstInt(n.Args[1])
		if err != nil {
			return IrValue{}, err
		}
		width, err := l.requireConstInt(n.Args[2])
		if err != nil {
			return IrValue{}, err
		}
		return Dynamic(l.fb.BitSlice(x, start, width, pos)), nil

	case "one_hot":
		x, err := l.lowerAndUse(n.Args[0])
		if err != nil {
			return IrValue{}, err
		}
		lsbPriority, err := l.requireConstBool(n.Args[1])
		if err != nil {
			return IrValue{}, err
		}
		return Dynamic(l.fb.OneHot(x, lsbPriority, pos)), nil

	case "one_hot_sel":
		selector, err := l.lowerAndUse(n.Args[0])
		if err != nil {
			return IrValue{}, err
		}
		lit, ok := n.Args[1].(*ast.ArrayLiteral)
		if !ok {
			return IrValue{}, report.Internalf(n.Span(), "one_hot_sel's second argument must be an array literal")
		}
		cases := make([]irb.Value, 0, len(lit.Members))
		for _, m := range lit.Members {
			v, err := l.lowerAndUse(m)
			if err != nil {
				return IrValue{}, err
			}
			cases = append(cases, v)
		}
		return Dynamic(l.fb.OneHotSelect(selector, cases, pos)), nil

	case "signex":
		x, err := l.lowerAndUse(n.Args[0])
		if err != nil {
			return IrValue{}, err
		}
		targetType, err := l.resolver.Resolve(n.Args[1])
		if err != nil {
			return IrValue{}, err
		}
		bt, ok := targetType.(*ast.BitsType)
		if !ok {
			return IrValue{}, report.Internalf(n.Span(), "signex's second argument must resolve to a bits type")
		}
		width, err := literalWidth(bt.Width)
		if err != nil {
			return IrValue{}, err
		}
		return Dynamic(l.fb.SignExtend(x, width, pos)), nil

	case "update":
		arr, err := l.lowerAndUse(n.Args[0])
		if err != nil {
			return IrValue{}, err
		}
		idx, err := l.lowerAndUse(n.Args[1])
		if err != nil {
			return IrValue{}, err
		}
		newElem, err := l.lowerAndUse(n.Args[2])
		if err != nil {
			return IrValue{}, err
		}
		return Dynamic(l.fb.ArrayUpdate(arr, newElem, []irb.Value{idx}, pos)), nil

	case "map":
		return l.lowerMapCall(n)

	default:
		return IrValue{}, report.Internalf(n.Span(), "unrecognized builtin %q", name)
	}
}

// lowerMapCall lowers `map(arr, fn)`. fn is either an ordinary
// already-converted function or one of the parametric builtins (clz, ctz)
// that Map needs a real single-argument IR function for; those are
// synthesized once per package and memoized in mapHelpers, keyed by builtin
// and element type so two calls against differently-sized arrays don't
// collide.
func (l *Lowerer) lowerMapCall(n *ast.Invocation) (IrValue, *report.ConversionError) {
	arr, err := l.lowerAndUse(n.Args[0])
	if err != nil {
		return IrValue{}, err
	}

	ref, ok := n.Args[1].(*ast.NameRef)
	if !ok {
		return IrValue{}, report.Internalf(n.Span(), "map's second argument must be a function name")
	}

	elem, ok := arr.Type().(*irtypes.Array)
	if !ok {
		return IrValue{}, report.Internalf(n.Span(), "map's first argument is not an array")
	}

	var fn *irb.Function
	if ref.Def == nil {
		fn, err = l.synthesizeElementwiseHelper(ref.Name, elem.Elem, n)
		if err != nil {
			return IrValue{}, err
		}
	} else {
		target, ok := ref.Def.(*ast.FunctionDef)
		if !ok {
			return IrValue{}, report.Internalf(n.Span(), "map's second argument does not resolve to a function")
		}
		found, err := convertFunction(l.pkg, target.Module, l.info, target, emptyBindings(), l.emitPositions, l.building)
		if err != nil {
			return IrValue{}, err
		}
		fn = found
	}

	return Dynamic(l.fb.Map(arr, fn, l.span(n))), nil
}

// synthesizeElementwiseHelper builds (once per builtin and element type) the
// single-parameter helper function Map needs to apply a parametric builtin
// elementwise, registered under a name distinct from any mangled DSLX symbol;
// a helper another function already registered in the package is reused.
func (l *Lowerer) synthesizeElementwiseHelper(builtin string, elemType irtypes.Type, n ast.Node) (*irb.Function, *report.ConversionError) {
	key := builtin + "@" + elemType.String()
	if fn, ok := l.mapHelpers[key]; ok {
		return fn, nil
	}

	helperName := "__map_helper_" + builtin + "_" + elemType.String()
	if fn, ok := l.pkg.GetFunction(helperName); ok {
		l.mapHelpers[key] = fn
		return fn, nil
	}
	fb := irb.NewFunctionBuilder(l.pkg, helperName)
	param := fb.Param("x", elemType, l.span(n))

	var ret irb.Value
	switch builtin {
	case "clz":
		ret = fb.Clz(param, l.span(n))
	case "ctz":
		ret = fb.Ctz(param, l.span(n))
	default:
		return nil, report.Unimplementedf(n.Span(), "map does not support builtin %q as an elementwise callee", builtin)
	}

	fn := fb.Build(ret, ret.Type())
	l.mapHelpers[key] = fn
	return fn, nil
}

// requireConstInt reads off a builtin argument that must be a compile-time
// integer constant (bit_slice's start/width).
func (l *Lowerer) requireConstInt(e ast.Expr) (int, *report.ConversionError) {
	num, ok := e.(*ast.Number)
	if !ok {
		return 0, report.Internalf(e.Span(), "expected a compile-time integer constant")
	}
	return int(num.Value.Int64()), nil
}

// requireConstBool reads off a builtin argument that must be a compile-time
// boolean constant (one_hot's lsb_priority flag), represented as a 1-bit
// Number.
func (l *Lowerer) requireConstBool(e ast.Expr) (bool, *report.ConversionError) {
	n, err := l.requireConstInt(e)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}
