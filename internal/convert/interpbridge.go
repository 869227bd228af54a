package convert

import (
	"github.com/githubhjs/xls/internal/irb"
	"github.com/githubhjs/xls/internal/irtypes"
	"github.com/githubhjs/xls/internal/interp"
	"github.com/githubhjs/xls/internal/report"
)

// InterpToIR converts a constant-folded interpreter value into its IR
// Literal representation under the given IR type. The converter's own
// lowering does not call it: literals there are built directly off
// ast.Number nodes.
func InterpToIR(v interp.Value, t irtypes.Type) (*irb.Literal, *report.ConversionError) {
	switch tt := t.(type) {
	case *irtypes.Bits:
		if v.Kind != interp.KindBits {
			return nil, report.InvalidArgumentf(nil, "interpreter value is not a bits value for target type %s", t.String())
		}
		return irb.NewBitsLiteral(v.Bits, tt.BitWidth()), nil

	case *irtypes.Array:
		if v.Kind != interp.KindTuple {
			return nil, report.InvalidArgumentf(nil, "interpreter value is not a composite value for target type %s", t.String())
		}
		if len(v.Elements) != tt.Size {
			return nil, report.Internalf(nil, "interpreter array has %d elements, want %d", len(v.Elements), tt.Size)
		}
		elems := make([]*irb.Literal, len(v.Elements))
		for i, e := range v.Elements {
			lit, err := InterpToIR(e, tt.Elem)
			if err != nil {
				return nil, err
			}
			elems[i] = lit
		}
		return irb.NewCompositeLiteral(t, elems), nil

	case *irtypes.Tuple:
		if v.Kind != interp.KindTuple {
			return nil, report.InvalidArgumentf(nil, "interpreter value is not a composite value for target type %s", t.String())
		}
		if len(v.Elements) != len(tt.Members) {
			return nil, report.Internalf(nil, "interpreter tuple has %d elements, want %d", len(v.Elements), len(tt.Members))
		}
		elems := make([]*irb.Literal, len(v.Elements))
		for i, e := range v.Elements {
			lit, err := InterpToIR(e, tt.Members[i])
			if err != nil {
				return nil, err
			}
			elems[i] = lit
		}
		return irb.NewCompositeLiteral(t, elems), nil

	default:
		return nil, report.Internalf(nil, "unknown IR type in InterpToIR")
	}
}

// InterpFromIR converts an IR Literal back to the interpreter value domain.
// Array and tuple literals both collapse to KindTuple, the same erasure
// interp.Value documents: a caller needing to tell them apart must already
// know the original shape from the AST it came from.
func InterpFromIR(lit *irb.Literal) interp.Value {
	switch lit.Kind {
	case irb.LiteralBits:
		// irtypes.Bits carries no sign flag of its own; the interpreter
		// value's Signed field only matters for builtins that consult it
		// directly off an ast.BitsType, never off a round-tripped Literal.
		return interp.NewBits(lit.Bits, lit.Type.BitWidth(), false)
	case irb.LiteralComposite:
		elems := make([]interp.Value, len(lit.Elements))
		for i, e := range lit.Elements {
			elems[i] = InterpFromIR(e)
		}
		return interp.NewTuple(elems)
	default:
		return interp.Value{}
	}
}
