package convert

import (
	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/report"
)

// TypeResolver obtains an AST node's concrete type from TypeInfo and
// specializes any parametric dimensions it contains against the
// instantiation's current SymbolicBindings.
type TypeResolver struct {
	info     ast.TypeInfo
	bindings *ast.SymbolicBindings
}

func NewTypeResolver(info ast.TypeInfo, bindings *ast.SymbolicBindings) *TypeResolver {
	return &TypeResolver{info: info, bindings: bindings}
}

// Resolve returns node's fully-specialized concrete type.
func (r *TypeResolver) Resolve(node ast.Node) (ast.ConcreteType, *report.ConversionError) {
	t, ok := r.info.TypeOf(node)
	if !ok {
		return nil, report.Internalf(node.Span(), "missing type information for node")
	}
	return r.specialize(t, node.Span())
}

// specialize substitutes every parametric Dim reachable from t with its
// resolved integer value under the resolver's bindings.
func (r *TypeResolver) specialize(t ast.ConcreteType, span *report.Span) (ast.ConcreteType, *report.ConversionError) {
	switch v := t.(type) {
	case *ast.BitsType:
		w, err := v.Width.Resolve(r.bindings)
		if err != nil {
			return nil, err
		}
		return &ast.BitsType{Signed: v.Signed, Width: ast.LiteralDim(w)}, nil
	case *ast.EnumType:
		w, err := v.Width.Resolve(r.bindings)
		if err != nil {
			return nil, err
		}
		return &ast.EnumType{Width: ast.LiteralDim(w)}, nil
	case *ast.ArrayType:
		elem, err := r.specialize(v.Elem, span)
		if err != nil {
			return nil, err
		}
		n, err := v.Size.Resolve(r.bindings)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayType{Elem: elem, Size: ast.LiteralDim(n)}, nil
	case *ast.TupleType:
		members := make([]ast.ConcreteType, len(v.Members))
		for i, m := range v.Members {
			sm, err := r.specialize(m, span)
			if err != nil {
				return nil, err
			}
			members[i] = sm
		}
		return &ast.TupleType{Members: members}, nil
	case *ast.StructType:
		fields := make([]ast.StructField, len(v.Fields))
		for i, f := range v.Fields {
			sf, err := r.specialize(f.Type, span)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.StructField{Name: f.Name, Type: sf}
		}
		return &ast.StructType{Name: v.Name, Fields: fields}, nil
	default:
		return nil, report.Internalf(span, "unknown concrete type variant")
	}
}
