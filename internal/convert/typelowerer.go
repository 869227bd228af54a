package convert

import (
	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/irtypes"
	"github.com/githubhjs/xls/internal/report"
)

// LowerType lowers a fully-resolved ConcreteType to its IR type. Struct
// field names and enum tags are erased: both collapse to their bit-level
// shape.
func LowerType(t ast.ConcreteType) (irtypes.Type, *report.ConversionError) {
	switch v := t.(type) {
	case *ast.BitsType:
		w, err := literalWidth(v.Width)
		if err != nil {
			return nil, err
		}
		return irtypes.NewBits(w), nil
	case *ast.EnumType:
		w, err := literalWidth(v.Width)
		if err != nil {
			return nil, err
		}
		return irtypes.NewBits(w), nil
	case *ast.ArrayType:
		elem, err := LowerType(v.Elem)
		if err != nil {
			return nil, err
		}
		n, err := literalWidth(v.Size)
		if err != nil {
			return nil, err
		}
		return irtypes.NewArray(elem, n), nil
	case *ast.TupleType:
		members := make([]irtypes.Type, len(v.Members))
		for i, m := range v.Members {
			lm, err := LowerType(m)
			if err != nil {
				return nil, err
			}
			members[i] = lm
		}
		return irtypes.NewTuple(members), nil
	case *ast.StructType:
		members := make([]irtypes.Type, len(v.Fields))
		for i, f := range v.Fields {
			lm, err := LowerType(f.Type)
			if err != nil {
				return nil, err
			}
			members[i] = lm
		}
		return irtypes.NewTuple(members), nil
	default:
		return nil, report.Internalf(nil, "unknown concrete type variant")
	}
}

// literalWidth resolves a Dim that a TypeResolver pass has already
// specialized down to a LiteralDim.
func literalWidth(d ast.Dim) (int, *report.ConversionError) {
	lit, ok := d.(ast.LiteralDim)
	if !ok {
		return 0, report.Internalf(nil, "type lowering requires a fully-specialized dimension")
	}
	return int(lit), nil
}
