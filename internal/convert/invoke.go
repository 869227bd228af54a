package convert

import (
	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/irb"
	"github.com/githubhjs/xls/internal/report"
)

// lowerColonRef handles `module::name`, in either of its two forms.
func (l *Lowerer) lowerColonRef(n *ast.ColonRef) (IrValue, *report.ConversionError) {
	switch n.Kind {
	case ast.ColonRefImportedConstant:
		cd, ok := n.ImportedModule.FindConstant(n.ConstantName)
		if !ok {
			return IrValue{}, report.NotFoundf(n.Span(), "unknown imported constant %q", n.ConstantName)
		}
		sub := &Lowerer{
			pkg:           l.pkg,
			module:        n.ImportedModule,
			info:          l.info,
			fb:            l.fb,
			values:        l.values,
			resolver:      NewTypeResolver(l.info, emptyBindings()),
			bindings:      emptyBindings(),
			emitPositions: l.emitPositions,
			mapHelpers:    l.mapHelpers,
			building:      l.building,
		}
		v, err := sub.lowerExpr(cd.Value)
		if err != nil {
			return IrValue{}, err
		}
		if err := l.values.Alias(cd.Value, n); err != nil {
			return IrValue{}, err
		}
		return v, nil

	case ast.ColonRefEnumMember:
		enumDef := n.TypeRef.Deref()
		if enumDef == nil {
			return IrValue{}, report.Internalf(n.Span(), "enum type reference did not resolve to a definition")
		}
		memberExpr, ok := enumDef.MemberValue(n.MemberName)
		if !ok {
			return IrValue{}, report.NotFoundf(n.Span(), "unknown enum member %q", n.MemberName)
		}
		v, err := l.lowerExpr(memberExpr)
		if err != nil {
			return IrValue{}, err
		}
		if err := l.values.Alias(memberExpr, n); err != nil {
			return IrValue{}, err
		}
		return v, nil

	default:
		return IrValue{}, report.Internalf(n.Span(), "unknown colon-ref kind %d", n.Kind)
	}
}

// emptyBindings is the zero-value SymbolicBindings used when converting a
// constant, which never itself carries parametric bindings.
func emptyBindings() *ast.SymbolicBindings {
	return &ast.SymbolicBindings{}
}

// lowerInvocation lowers a function call. Builtins short-circuit to the
// BuiltinDispatcher; everything else converts its callee on demand -- via
// the same idempotent ConvertFunction entry point the driver uses -- so a
// caller never depends on having visited its callees in any particular
// order first.
func (l *Lowerer) lowerInvocation(n *ast.Invocation) (IrValue, *report.ConversionError) {
	ref, ok := n.Callee.(*ast.NameRef)
	if !ok {
		return IrValue{}, report.Internalf(n.Span(), "unsupported call callee expression")
	}

	if ref.Def == nil {
		if v, handled, err := l.lowerBuiltinCall(ref.Name, n); handled || err != nil {
			return v, err
		}
		return IrValue{}, report.NotFoundf(n.Span(), "unknown builtin %q", ref.Name)
	}

	fn, ok := ref.Def.(*ast.FunctionDef)
	if !ok {
		return IrValue{}, report.Internalf(n.Span(), "call callee does not resolve to a function")
	}

	args := make([]irb.Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := l.lowerAndUse(a)
		if err != nil {
			return IrValue{}, err
		}
		args = append(args, v)
	}

	bindings := emptyBindings()
	if b, ok := l.info.SymbolicBindingsOf(n); ok {
		bindings = b
	}

	callee, err := convertFunction(l.pkg, fn.Module, l.info, fn, bindings, l.emitPositions, l.building)
	if err != nil {
		return IrValue{}, err
	}
	return Dynamic(l.fb.Call(callee, args, l.span(n))), nil
}
