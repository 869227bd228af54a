package irb_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/githubhjs/xls/internal/irb"
	"github.com/githubhjs/xls/internal/irtypes"
)

func TestFunctionBuilder_AddAndBuild(t *testing.T) {
	pkg := irb.NewPackage("test")
	fb := irb.NewFunctionBuilder(pkg, "__m__add")

	bits8 := irtypes.NewBits(8)
	x := fb.Param("x", bits8, nil)
	y := fb.Param("y", bits8, nil)
	sum := fb.Add(x, y, nil)

	fn := fb.Build(sum, bits8)

	require.Equal(t, "__m__add", fn.Name)
	require.Same(t, sum, fn.Return())
	require.Equal(t, 8, fn.ReturnType.BitWidth())

	registered, ok := pkg.GetFunction("__m__add")
	require.True(t, ok)
	require.Same(t, fn, registered)
}

func TestFunctionBuilder_BitSliceWidth(t *testing.T) {
	pkg := irb.NewPackage("test")
	fb := irb.NewFunctionBuilder(pkg, "f")

	x := fb.Param("x", irtypes.NewBits(32), nil)
	slice := fb.BitSlice(x, 4, 10, nil)

	require.Equal(t, 10, slice.Type().BitWidth())

	n := irb.AsNode(slice)
	require.Equal(t, irb.OpBitSlice, n.Op())
	require.Equal(t, irb.BitSliceAux{Start: 4, Width: 10}, n.Aux())
}

func TestFunctionBuilder_ConcatSumsWidths(t *testing.T) {
	pkg := irb.NewPackage("test")
	fb := irb.NewFunctionBuilder(pkg, "f")

	a := fb.Param("a", irtypes.NewBits(3), nil)
	b := fb.Param("b", irtypes.NewBits(5), nil)
	cat := fb.Concat([]irb.Value{a, b}, nil)

	require.Equal(t, 8, cat.Type().BitWidth())
}

func TestFunctionBuilder_ArrayIndexUnwrapsOneDimensionPerIndex(t *testing.T) {
	pkg := irb.NewPackage("test")
	fb := irb.NewFunctionBuilder(pkg, "f")

	elem := irtypes.NewBits(4)
	inner := irtypes.NewArray(elem, 3)
	outer := irtypes.NewArray(inner, 2)

	arr := fb.Param("arr", outer, nil)
	i0 := fb.Literal(irb.NewBitsLiteral(big.NewInt(0), 1), nil)
	i1 := fb.Literal(irb.NewBitsLiteral(big.NewInt(1), 2), nil)

	elemVal := fb.ArrayIndex(arr, []irb.Value{i0, i1}, nil)
	require.True(t, irtypes.Equal(elemVal.Type(), elem))
}

func TestFunctionBuilder_OneHotWidensByOne(t *testing.T) {
	pkg := irb.NewPackage("test")
	fb := irb.NewFunctionBuilder(pkg, "f")

	x := fb.Param("x", irtypes.NewBits(4), nil)
	oh := fb.OneHot(x, true, nil)
	require.Equal(t, 5, oh.Type().BitWidth())
}

func TestPackage_AddFunctionPanicsOnDuplicateName(t *testing.T) {
	pkg := irb.NewPackage("test")
	fb1 := irb.NewFunctionBuilder(pkg, "dup")
	fb1.Build(fb1.Literal(irb.NewBitsLiteral(big.NewInt(1), 1), nil), irtypes.NewBits(1))

	fb2 := irb.NewFunctionBuilder(pkg, "dup")
	require.Panics(t, func() {
		fb2.Build(fb2.Literal(irb.NewBitsLiteral(big.NewInt(1), 1), nil), irtypes.NewBits(1))
	})
}
