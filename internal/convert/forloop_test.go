package convert_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/convert"
	"github.com/githubhjs/xls/internal/irb"
)

// TestConvertFunction_CountedFor lowers the supplemented `for` construct:
//
//	fn sum_all(arr: u8[4]) -> u8 {
//	    for (i, acc): u8 in range(0, 4) { acc + arr[i] }(u8:0)
//	}
//
// grounded on the original converter's visit_For (see SPEC_FULL.md).
func TestConvertFunction_CountedFor(t *testing.T) {
	info := newFakeTypeInfo()

	arrType := &ast.ArrayType{Elem: u(8), Size: ast.LiteralDim(4)}
	arrDef := &ast.NameDef{Name: "arr"}
	arrRef := &ast.NameRef{Name: "arr", Def: arrDef}
	info.set(arrDef, arrType)
	info.set(arrRef, arrType)

	iDef := &ast.NameDef{Name: "i"}
	iRef := &ast.NameRef{Name: "i", Def: iDef}
	info.set(iDef, u(32))
	info.set(iRef, u(32))

	accDef := &ast.NameDef{Name: "acc"}
	accRef := &ast.NameRef{Name: "acc", Def: accDef}
	info.set(accDef, u(8))
	info.set(accRef, u(8))

	idx := &ast.Index{Kind: ast.IndexArray, Operand: arrRef, Rhs: iRef}
	info.set(idx, u(8))

	sum := &ast.Binop{Kind: ast.Add, Lhs: accRef, Rhs: idx}
	info.set(sum, u(8))

	initLit := num(0)
	info.set(initLit, u(8))

	forNode := &ast.For{
		Induction:    iDef,
		CarryPattern: &ast.LetPattern{Leaf: accDef},
		TripCount:    ast.LiteralDim(4),
		Init:         initLit,
		Body:         sum,
		FreeVars:     []*ast.NameDef{arrDef},
	}
	info.set(forNode, u(8))

	fn := &ast.FunctionDef{
		Name:       "sum_all",
		ReturnType: u(8),
		Params:     []*ast.Param{{Name: arrDef, Type: arrType}},
		Body:       forNode,
	}
	module := &ast.Module{Name: "m"}
	fn.Module = module
	module.Functions = append(module.Functions, fn)

	pkg := irb.NewPackage("m")
	built, err := convert.ConvertFunction(pkg, module, info, fn, &ast.SymbolicBindings{}, false)
	require.Nil(t, err)

	n := irb.AsNode(built.Return())
	require.Equal(t, irb.OpCountedFor, n.Op())

	aux := n.Aux().(irb.CountedForAux)
	require.Equal(t, 4, aux.Trips)
	require.Len(t, aux.InvariantArgs, 1)
	require.Same(t, built.Params[0], aux.InvariantArgs[0])

	initNode := irb.AsNode(aux.InitV)
	require.Equal(t, irb.OpLiteral, initNode.Op())
	require.Equal(t, big.NewInt(0), initNode.LiteralValue().Bits)

	body := aux.Body
	require.Equal(t, "__m__sum_all_counted_for_1_body", body.Name)
	require.Len(t, body.Params, 3) // induction, carry, one free variable

	bodyRet := irb.AsNode(body.Return())
	require.Equal(t, irb.OpAdd, bodyRet.Op())
	require.Same(t, body.Params[1], bodyRet.Operands()[0]) // carry (acc)

	arrIndex := irb.AsNode(bodyRet.Operands()[1])
	require.Equal(t, irb.OpArrayIndex, arrIndex.Op())
	require.Same(t, body.Params[2], arrIndex.Operands()[0]) // free var (arr)
	require.Same(t, body.Params[0], arrIndex.Operands()[1]) // induction (i)
}
