// Package driver is the module-level conversion entry point: it walks a
// Module's top-level definitions and drives internal/convert over each one
// reachable from the module's own non-parametric functions, grounded on
// the teacher compiler's mir.Lowerer dependency-ordered pass (see
// bootstrap/mir/lowerer.go, lower_def.go).
package driver

import (
	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/convert"
	"github.com/githubhjs/xls/internal/irb"
	"github.com/githubhjs/xls/internal/report"
)

// Options controls one module conversion run.
type Options struct {
	// EmitPositions attaches source spans to every emitted IR node, at the
	// cost of a larger in-memory IR; off by default for release builds.
	EmitPositions bool
}

// ConvertModule lowers every non-parametric top-level function in module
// into pkg. Parametric functions are converted lazily, once per distinct
// set of symbolic bindings, the first time a call site instantiates them;
// a parametric function nothing ever calls is never lowered, matching the
// "reachable code only" contract every OpKind-emitting driver in this
// domain follows.
//
// Top-level constants are not walked directly: each is lowered the first
// time some reachable function's body references it, exactly once,
// memoized in that function's own value table the way any other name
// reference is (see convert.Lowerer.lowerNameRef).
func ConvertModule(pkg *irb.Package, module *ast.Module, info ast.TypeInfo, opts Options) []*report.ConversionError {
	var errs []*report.ConversionError

	for _, fn := range module.Functions {
		if len(fn.FreeParametricKeys) > 0 {
			continue
		}
		if _, err := convert.ConvertFunction(pkg, module, info, fn, &ast.SymbolicBindings{}, opts.EmitPositions); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// ConvertModules lowers a module and every module it (transitively)
// imports into one shared package, so cross-module calls resolve against
// IR already collected in pkg. Modules are visited in the order supplied;
// callers should pass a topological order (imports before importers) when
// one is known, though ConvertFunction's own lazy recursion makes the
// order advisory rather than load-bearing.
func ConvertModules(pkg *irb.Package, modules []*ast.Module, info ast.TypeInfo, opts Options) []*report.ConversionError {
	var errs []*report.ConversionError
	for _, m := range modules {
		errs = append(errs, ConvertModule(pkg, m, info, opts)...)
	}
	return errs
}
