package convert

import (
	"math/big"

	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/irb"
	"github.com/githubhjs/xls/internal/report"
)

// lowerCast implements `operand as T`. The source and target shapes are
// read off the operand's resolved type and the Cast node's own resolved
// type; DSLX's type checker has already ruled out anything but the three
// shapes below by the time conversion sees this node.
func (l *Lowerer) lowerCast(n *ast.Cast) (IrValue, *report.ConversionError) {
	srcT, err := l.resolver.Resolve(n.Operand)
	if err != nil {
		return IrValue{}, err
	}
	dstT, err := l.resolver.Resolve(n)
	if err != nil {
		return IrValue{}, err
	}

	operand, err := l.lowerAndUse(n.Operand)
	if err != nil {
		return IrValue{}, err
	}

	switch dst := dstT.(type) {
	case *ast.ArrayType:
		src, ok := srcT.(*ast.BitsType)
		if !ok {
			return IrValue{}, report.Internalf(n.Span(), "cast to array requires a bits source")
		}
		v, err := l.castBitsToArray(operand, dst, n)
		if err != nil {
			return IrValue{}, err
		}
		_ = src
		return Dynamic(v), nil
	case *ast.BitsType:
		switch src := srcT.(type) {
		case *ast.ArrayType:
			v, err := l.castArrayToBits(operand, src, n)
			if err != nil {
				return IrValue{}, err
			}
			return Dynamic(v), nil
		case *ast.BitsType:
			v, err := l.castBitsToBits(operand, src, dst, n)
			if err != nil {
				return IrValue{}, err
			}
			return Dynamic(v), nil
		default:
			return IrValue{}, report.Internalf(n.Span(), "cast from unsupported source type to bits")
		}
	default:
		return IrValue{}, report.Internalf(n.Span(), "unsupported cast target type")
	}
}

// castBitsToArray slices input into size(dst) chunks of elem_width bits
// each, taken from the LSB upward, then reverses the chunk order so array
// index 0 holds the most-significant chunk.
func (l *Lowerer) castBitsToArray(input irb.Value, dst *ast.ArrayType, n ast.Node) (irb.Value, *report.ConversionError) {
	size, err := literalWidth(dst.Size)
	if err != nil {
		return nil, err
	}
	elemType, err := LowerType(dst.Elem)
	if err != nil {
		return nil, err
	}
	elemWidth := elemType.BitWidth()

	chunks := make([]irb.Value, size)
	for i := 0; i < size; i++ {
		chunks[i] = l.fb.BitSlice(input, i*elemWidth, elemWidth, l.span(n))
	}
	members := make([]irb.Value, size)
	for j := 0; j < size; j++ {
		members[j] = chunks[size-1-j]
	}
	return l.fb.Array(members, elemType, l.span(n)), nil
}

// castArrayToBits indexes every element of input in order and concatenates
// them MSB-first, mirroring castBitsToArray's inverse.
func (l *Lowerer) castArrayToBits(input irb.Value, src *ast.ArrayType, n ast.Node) (irb.Value, *report.ConversionError) {
	size, err := literalWidth(src.Size)
	if err != nil {
		return nil, err
	}
	idxWidth := indexBitWidth(size)
	elems := make([]irb.Value, size)
	for i := 0; i < size; i++ {
		idxLit := irb.NewBitsLiteral(big.NewInt(int64(i)), idxWidth)
		idx := l.fb.Literal(idxLit, l.span(n))
		elems[i] = l.fb.ArrayIndex(input, []irb.Value{idx}, l.span(n))
	}
	return l.fb.Concat(elems, l.span(n)), nil
}

// castBitsToBits narrows via a static low-bit slice or widens via sign- or
// zero-extension depending on the source's signedness.
func (l *Lowerer) castBitsToBits(input irb.Value, src, dst *ast.BitsType, n ast.Node) (irb.Value, *report.ConversionError) {
	srcW, err := literalWidth(src.Width)
	if err != nil {
		return nil, err
	}
	dstW, err := literalWidth(dst.Width)
	if err != nil {
		return nil, err
	}
	switch {
	case dstW == srcW:
		return input, nil
	case dstW < srcW:
		return l.fb.BitSlice(input, 0, dstW, l.span(n)), nil
	case src.Signed:
		return l.fb.SignExtend(input, dstW, l.span(n)), nil
	default:
		return l.fb.ZeroExtend(input, dstW, l.span(n)), nil
	}
}

// indexBitWidth returns the number of bits needed to index an array of the
// given size, with a floor of 1 so a single-element array still gets a
// valid index type.
func indexBitWidth(size int) int {
	w := 1
	for (1 << w) < size {
		w++
	}
	return w
}
