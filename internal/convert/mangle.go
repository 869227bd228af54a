package convert

import (
	"strconv"
	"strings"

	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/report"
)

// Mangle produces the unique IR symbol for one instantiation of fnName,
// following the grammar:
//
//	mangled := "__" module "__" fn
//	        |  "__" module "__" fn "__" v ("_" v)*
//	module  := <identifier with '.' -> '_'>
//	v       := decimal integer
//
// freeKeys is the set of symbolic identifiers the function's signature
// depends on; bindings is the current instantiation's SymbolicBindings, or
// nil for a non-parametric function. Mangle is pure and deterministic and
// is used both when a function is first built and when a caller resolves
// its callee by name.
func Mangle(fnName string, freeKeys []string, module string, bindings *ast.SymbolicBindings) (string, *report.ConversionError) {
	bound := bindings.Keys()
	for _, k := range freeKeys {
		if !bound[k] {
			return "", report.InvalidArgumentf(nil, "not enough symbolic bindings: missing %q", k)
		}
	}

	m := strings.ReplaceAll(module, ".", "_")

	if bindings.Len() == 0 {
		return "__" + m + "__" + fnName, nil
	}

	var sb strings.Builder
	sb.WriteString("__")
	sb.WriteString(m)
	sb.WriteString("__")
	sb.WriteString(fnName)
	sb.WriteString("__")
	for i, v := range bindings.Values() {
		if i > 0 {
			sb.WriteString("_")
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String(), nil
}
