package convert

import (
	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/irb"
	"github.com/githubhjs/xls/internal/report"
)

// Lowerer holds everything one function's conversion needs: the builder it
// emits into, the value table bindings accumulate in, and the resolver for
// the instantiation's symbolic bindings. One Lowerer is built per function;
// it does not outlive that function's conversion.
type Lowerer struct {
	pkg    *irb.Package
	module *ast.Module
	info   ast.TypeInfo

	fb       *irb.FunctionBuilder
	values   *ValueTable
	resolver *TypeResolver
	bindings *ast.SymbolicBindings

	emitPositions bool

	// mapHelpers memoizes the small per-element helper functions Map
	// synthesizes for parametric builtins (clz/ctz), keyed by builtin name
	// and element type.
	mapHelpers map[string]*irb.Function

	// building tracks mangled names currently mid-conversion across this
	// whole call chain, so a callee that (transitively) calls back into
	// itself is caught as an error instead of recursing the Go stack
	// forever -- this IR has no call-stack primitive, so recursion can
	// never be lowered.
	building map[string]bool

	// forOrdinal counts the `for` loops lowered so far in this function,
	// giving each synthesized loop-body function a unique suffix.
	forOrdinal int
}

// ConvertFunction is the entry point both the driver and invocation
// lowering call to obtain a function's IR: it mangles fn's name under
// bindings, and if a function with that mangled name already exists in
// pkg, returns it unconverted -- conversion is idempotent per mangled
// name. Invocation lowering calls back into this directly instead of
// requiring callees to have been pre-converted in dependency order.
func ConvertFunction(
	pkg *irb.Package,
	module *ast.Module,
	info ast.TypeInfo,
	fn *ast.FunctionDef,
	bindings *ast.SymbolicBindings,
	emitPositions bool,
) (*irb.Function, *report.ConversionError) {
	return convertFunction(pkg, module, info, fn, bindings, emitPositions, make(map[string]bool))
}

func convertFunction(
	pkg *irb.Package,
	module *ast.Module,
	info ast.TypeInfo,
	fn *ast.FunctionDef,
	bindings *ast.SymbolicBindings,
	emitPositions bool,
	building map[string]bool,
) (*irb.Function, *report.ConversionError) {
	currentBindings := bindings.WithoutModuleConstants(module.ModuleConstantNames())

	name, err := Mangle(fn.Name, fn.FreeParametricKeys, module.Name, currentBindings)
	if err != nil {
		return nil, err
	}
	if existing, ok := pkg.GetFunction(name); ok {
		return existing, nil
	}
	if building[name] {
		return nil, report.Unimplementedf(fn.Span(), "function %q recurses; this lowering engine does not support recursive calls", name)
	}
	building[name] = true
	defer delete(building, name)

	l := &Lowerer{
		pkg:           pkg,
		module:        module,
		info:          info,
		fb:            irb.NewFunctionBuilder(pkg, name),
		values:        NewValueTable(),
		resolver:      NewTypeResolver(info, currentBindings),
		bindings:      currentBindings,
		emitPositions: emitPositions,
		mapHelpers:    make(map[string]*irb.Function),
		building:      building,
	}

	for _, p := range fn.Params {
		t, err := l.resolver.Resolve(p.Name)
		if err != nil {
			return nil, err
		}
		irT, err := LowerType(t)
		if err != nil {
			return nil, err
		}
		h := l.fb.Param(p.Name.Name, irT, l.span(p.Name))
		if err := l.values.Bind(p.Name, Dynamic(h)); err != nil {
			return nil, err
		}
	}

	retVal, err := l.lowerExpr(fn.Body)
	if err != nil {
		return nil, err
	}

	retConcreteType, err := l.resolver.Resolve(fn.Body)
	if err != nil {
		return nil, err
	}
	retType, err := LowerType(retConcreteType)
	if err != nil {
		return nil, err
	}

	return l.fb.Build(retVal.Handle, retType), nil
}

// span returns node's span when emit_positions is set, nil otherwise.
func (l *Lowerer) span(node ast.Node) *report.Span {
	if !l.emitPositions {
		return nil
	}
	return node.Span()
}

// lowerAndUse lowers node and returns its bound IR handle, a convenience
// used throughout the expression lowerer.
func (l *Lowerer) lowerAndUse(node ast.Expr) (irb.Value, *report.ConversionError) {
	v, err := l.lowerExpr(node)
	if err != nil {
		return nil, err
	}
	return v.Handle, nil
}
