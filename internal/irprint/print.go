// Package irprint renders a built irb.Package as text, the same Repr-style
// dump the teacher compiler's MIR bundle produces (see
// bootstrap/mir/print_mir.go), but carried all the way through to each
// node's operands instead of stopping at function signatures.
package irprint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/githubhjs/xls/internal/irb"
)

// Package renders every function in pkg, in the order they were built.
func Package(pkg *irb.Package) string {
	var sb strings.Builder
	for i, fn := range pkg.Functions() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(Function(fn))
	}
	return sb.String()
}

// Function renders one function's signature and body.
func Function(fn *irb.Function) string {
	var sb strings.Builder

	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%s: %s", valueName(p), p.Type().String())
	}
	sb.WriteString(fmt.Sprintf("fn %s(%s) -> %s {\n", fn.Name, strings.Join(params, ", "), fn.ReturnType.String()))

	for _, n := range fn.Nodes() {
		sb.WriteString("  ")
		sb.WriteString(nodeLine(irb.AsNode(n)))
		sb.WriteByte('\n')
	}

	sb.WriteString(fmt.Sprintf("  ret %s\n}\n", valueName(fn.Return())))
	return sb.String()
}

func nodeLine(n irb.Inspectable) string {
	operands := make([]string, len(n.Operands()))
	for i, op := range n.Operands() {
		operands[i] = valueName(op)
	}

	switch n.Op() {
	case irb.OpParam:
		return fmt.Sprintf("%s: %s = param", valueName(n), n.Type().String())
	case irb.OpLiteral:
		return fmt.Sprintf("%s: %s = literal(%s)", valueName(n), n.Type().String(), literalRepr(n.LiteralValue()))
	default:
		return fmt.Sprintf("%s: %s = %s(%s)", valueName(n), n.Type().String(), n.Op().String(), strings.Join(operands, ", "))
	}
}

func literalRepr(lit *irb.Literal) string {
	if lit == nil {
		return "<nil>"
	}
	if lit.Kind == irb.LiteralBits {
		return lit.Bits.String()
	}
	parts := make([]string, len(lit.Elements))
	for i, e := range lit.Elements {
		parts[i] = literalRepr(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func valueName(v irb.Value) string {
	if n, ok := v.(irb.Inspectable); ok && n.Name() != "" {
		return n.Name()
	}
	return "%" + strconv.Itoa(v.ID())
}
