package convert_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/convert"
	"github.com/githubhjs/xls/internal/irb"
)

// fakeTypeInfo is a minimal, hand-populated ast.TypeInfo: tests register
// exactly the node->type (and slice-bound, symbolic-binding) facts the
// lowering path under test actually queries, the same way a real type
// checker would have filled them in ahead of conversion.
type fakeTypeInfo struct {
	types    map[ast.Node]ast.ConcreteType
	slices   map[*ast.Index][2]int
	bindings map[*ast.Invocation]*ast.SymbolicBindings
}

func newFakeTypeInfo() *fakeTypeInfo {
	return &fakeTypeInfo{
		types:    make(map[ast.Node]ast.ConcreteType),
		slices:   make(map[*ast.Index][2]int),
		bindings: make(map[*ast.Invocation]*ast.SymbolicBindings),
	}
}

func (f *fakeTypeInfo) set(n ast.Node, t ast.ConcreteType) ast.Node {
	f.types[n] = t
	return n
}

func (f *fakeTypeInfo) TypeOf(n ast.Node) (ast.ConcreteType, bool) {
	t, ok := f.types[n]
	return t, ok
}

func (f *fakeTypeInfo) SliceBounds(n *ast.Index) (int, int, bool) {
	b, ok := f.slices[n]
	if !ok {
		return 0, 0, false
	}
	return b[0], b[1], true
}

func (f *fakeTypeInfo) SymbolicBindingsOf(n *ast.Invocation) (*ast.SymbolicBindings, bool) {
	b, ok := f.bindings[n]
	return b, ok
}

func u(width int) *ast.BitsType { return &ast.BitsType{Signed: false, Width: ast.LiteralDim(width)} }
func s(width int) *ast.BitsType { return &ast.BitsType{Signed: true, Width: ast.LiteralDim(width)} }

func num(v int64) *ast.Number { return &ast.Number{Value: big.NewInt(v)} }

func buildFunc(name string, params []*ast.Param, retType ast.ConcreteType, body ast.Expr) *ast.FunctionDef {
	module := &ast.Module{Name: "m"}
	fn := &ast.FunctionDef{Name: name, Module: module, Params: params, ReturnType: retType, Body: body}
	module.Functions = append(module.Functions, fn)
	return fn
}

// TestConvertFunction_UnaryNegate covers end-to-end scenario 1: fn f(x: u8)
// -> u8 { -x }.
func TestConvertFunction_UnaryNegate(t *testing.T) {
	info := newFakeTypeInfo()

	xDef := &ast.NameDef{Name: "x"}
	xRef := &ast.NameRef{Name: "x", Def: xDef}
	info.set(xDef, u(8))
	info.set(xRef, u(8))

	neg := &ast.Unop{Kind: ast.Negate, Operand: xRef}
	info.set(neg, u(8))

	fn := buildFunc("f", []*ast.Param{{Name: xDef, Type: u(8)}}, u(8), neg)

	built, err := convert.ConvertFunction(irb.NewPackage("m"), fn.Module, info, fn, &ast.SymbolicBindings{}, false)
	require.Nil(t, err)
	require.Equal(t, "__m__f", built.Name)

	nodes := built.Nodes()
	require.Len(t, nodes, 2) // the param x, then the negate
	n := irb.AsNode(nodes[1])
	require.Equal(t, irb.OpNeg, n.Op())
	require.Same(t, built.Params[0], n.Operands()[0])
	require.Same(t, nodes[1], built.Return())
}

// TestConvertFunction_Concat covers end-to-end scenario 2: fn g(a: u4, b:
// u4) -> u8 { a ++ b }.
func TestConvertFunction_Concat(t *testing.T) {
	info := newFakeTypeInfo()

	aDef, bDef := &ast.NameDef{Name: "a"}, &ast.NameDef{Name: "b"}
	aRef := &ast.NameRef{Name: "a", Def: aDef}
	bRef := &ast.NameRef{Name: "b", Def: bDef}
	info.set(aDef, u(4))
	info.set(bDef, u(4))
	info.set(aRef, u(4))
	info.set(bRef, u(4))

	cat := &ast.Binop{Kind: ast.Concat, Lhs: aRef, Rhs: bRef}
	info.set(cat, u(8))

	fn := buildFunc("g", []*ast.Param{{Name: aDef, Type: u(4)}, {Name: bDef, Type: u(4)}}, u(8), cat)

	built, err := convert.ConvertFunction(irb.NewPackage("m"), fn.Module, info, fn, &ast.SymbolicBindings{}, false)
	require.Nil(t, err)

	n := irb.AsNode(built.Return())
	require.Equal(t, irb.OpConcat, n.Op())
	require.Equal(t, 8, n.Type().BitWidth())
	require.Len(t, n.Operands(), 2)
}

// TestConvertFunction_CastNarrowing covers end-to-end scenario 3: fn h(x:
// u8) -> u4 { x as u4 }.
func TestConvertFunction_CastNarrowing(t *testing.T) {
	info := newFakeTypeInfo()

	xDef := &ast.NameDef{Name: "x"}
	xRef := &ast.NameRef{Name: "x", Def: xDef}
	info.set(xDef, u(8))
	info.set(xRef, u(8))

	cast := &ast.Cast{Operand: xRef}
	info.set(cast, u(4))

	fn := buildFunc("h", []*ast.Param{{Name: xDef, Type: u(8)}}, u(4), cast)

	built, err := convert.ConvertFunction(irb.NewPackage("m"), fn.Module, info, fn, &ast.SymbolicBindings{}, false)
	require.Nil(t, err)

	n := irb.AsNode(built.Return())
	require.Equal(t, irb.OpBitSlice, n.Op())
	require.Equal(t, irb.BitSliceAux{Start: 0, Width: 4}, n.Aux())
}

// TestConvertFunction_CastWidening verifies sign-aware widening: a signed
// s4 source widened to s8 is sign-extended.
func TestConvertFunction_CastWidening(t *testing.T) {
	info := newFakeTypeInfo()

	xDef := &ast.NameDef{Name: "x"}
	xRef := &ast.NameRef{Name: "x", Def: xDef}
	info.set(xDef, s(4))
	info.set(xRef, s(4))

	cast := &ast.Cast{Operand: xRef}
	info.set(cast, s(8))

	fn := buildFunc("widen", []*ast.Param{{Name: xDef, Type: s(4)}}, s(8), cast)

	built, err := convert.ConvertFunction(irb.NewPackage("m"), fn.Module, info, fn, &ast.SymbolicBindings{}, false)
	require.Nil(t, err)

	n := irb.AsNode(built.Return())
	require.Equal(t, irb.OpSignExtend, n.Op())
}

// TestConvertFunction_LetTupleDestructure covers end-to-end scenario 4:
// `let (p, q) = (x, y); p + q`.
func TestConvertFunction_LetTupleDestructure(t *testing.T) {
	info := newFakeTypeInfo()

	xDef, yDef := &ast.NameDef{Name: "x"}, &ast.NameDef{Name: "y"}
	xRef := &ast.NameRef{Name: "x", Def: xDef}
	yRef := &ast.NameRef{Name: "y", Def: yDef}
	info.set(xDef, u(8))
	info.set(yDef, u(8))
	info.set(xRef, u(8))
	info.set(yRef, u(8))

	rhs := &ast.TupleLiteral{Members: []ast.Expr{xRef, yRef}}
	info.set(rhs, &ast.TupleType{Members: []ast.ConcreteType{u(8), u(8)}})

	pDef, qDef := &ast.NameDef{Name: "p"}, &ast.NameDef{Name: "q"}
	pRef := &ast.NameRef{Name: "p", Def: pDef}
	qRef := &ast.NameRef{Name: "q", Def: qDef}
	info.set(pDef, u(8))
	info.set(qDef, u(8))
	info.set(pRef, u(8))
	info.set(qRef, u(8))

	sum := &ast.Binop{Kind: ast.Add, Lhs: pRef, Rhs: qRef}
	info.set(sum, u(8))

	let := &ast.Let{
		Pattern: &ast.LetPattern{Tuple: []*ast.LetPattern{{Leaf: pDef}, {Leaf: qDef}}},
		Rhs:     rhs,
		Body:    sum,
	}
	info.set(let, u(8))

	fn := buildFunc("letdestr", []*ast.Param{{Name: xDef, Type: u(8)}, {Name: yDef, Type: u(8)}}, u(8), let)

	built, err := convert.ConvertFunction(irb.NewPackage("m"), fn.Module, info, fn, &ast.SymbolicBindings{}, false)
	require.Nil(t, err)

	retNode := irb.AsNode(built.Return())
	require.Equal(t, irb.OpAdd, retNode.Op())

	p := irb.AsNode(retNode.Operands()[0])
	q := irb.AsNode(retNode.Operands()[1])
	require.Equal(t, irb.OpTupleIndex, p.Op())
	require.Equal(t, 0, p.Aux())
	require.Equal(t, irb.OpTupleIndex, q.Op())
	require.Equal(t, 1, q.Aux())
}

// TestConvertFunction_Match covers end-to-end scenario 5: `match x { u2:0 =>
// u8:10, u2:1 => u8:20, _ => u8:30 }`.
func TestConvertFunction_Match(t *testing.T) {
	info := newFakeTypeInfo()

	xDef := &ast.NameDef{Name: "x"}
	xRef := &ast.NameRef{Name: "x", Def: xDef}
	info.set(xDef, u(2))
	info.set(xRef, u(2))

	lit0, lit1 := num(0), num(1)
	info.set(lit0, u(2))
	info.set(lit1, u(2))

	v10, v20, v30 := num(10), num(20), num(30)
	info.set(v10, u(8))
	info.set(v20, u(8))
	info.set(v30, u(8))

	wc := &ast.WildcardPattern{}

	match := &ast.Match{
		Scrutinee: xRef,
		Arms: []ast.MatchArm{
			{Patterns: []ast.Pattern{lit0}, Rhs: v10},
			{Patterns: []ast.Pattern{lit1}, Rhs: v20},
			{Patterns: []ast.Pattern{wc}, Rhs: v30},
		},
	}
	info.set(match, u(8))

	fn := buildFunc("matcher", []*ast.Param{{Name: xDef, Type: u(2)}}, u(8), match)

	built, err := convert.ConvertFunction(irb.NewPackage("m"), fn.Module, info, fn, &ast.SymbolicBindings{}, false)
	require.Nil(t, err)

	n := irb.AsNode(built.Return())
	require.Equal(t, irb.OpMatchTrue, n.Op())
	aux := n.Aux().(irb.MatchTrueAux)
	require.Len(t, aux.Selectors, 2)
	require.Equal(t, irb.OpEq, irb.AsNode(aux.Selectors[0]).Op())
	require.Equal(t, irb.OpEq, irb.AsNode(aux.Selectors[1]).Op())

	def := irb.AsNode(aux.Default)
	require.Equal(t, irb.OpLiteral, def.Op())
	require.Equal(t, big.NewInt(30), def.LiteralValue().Bits)
}

// TestConvertFunction_ParametricCallMangling covers end-to-end scenario 6: a
// parametric call `f<N=8>(x)` converts the callee under its mangled name,
// registers it in the package, and the caller's call node targets it.
func TestConvertFunction_ParametricCallMangling(t *testing.T) {
	info := newFakeTypeInfo()

	calleeX := &ast.NameDef{Name: "x"}
	calleeXRef := &ast.NameRef{Name: "x", Def: calleeX}
	info.set(calleeX, u(8))
	info.set(calleeXRef, u(8))
	callee := buildFunc("double", []*ast.Param{{Name: calleeX, Type: u(8)}}, u(8),
		&ast.Binop{Kind: ast.Add, Lhs: calleeXRef, Rhs: calleeXRef})
	callee.FreeParametricKeys = []string{"N"}
	info.set(callee.Body, u(8))

	module := callee.Module

	callerArgDef := &ast.NameDef{Name: "y"}
	callerArgRef := &ast.NameRef{Name: "y", Def: callerArgDef}
	info.set(callerArgDef, u(8))
	info.set(callerArgRef, u(8))

	calleeRef := &ast.NameRef{Name: "double", Def: callee}
	invoke := &ast.Invocation{Callee: calleeRef, Args: []ast.Expr{callerArgRef}}
	info.set(invoke, u(8))
	info.bindings[invoke] = &ast.SymbolicBindings{Bindings: []ast.Binding{{Name: "N", Value: 8}}}

	caller := &ast.FunctionDef{Name: "caller", Module: module, Params: []*ast.Param{{Name: callerArgDef, Type: u(8)}}, ReturnType: u(8), Body: invoke}
	module.Functions = append(module.Functions, caller)

	pkg := irb.NewPackage("m")
	built, err := convert.ConvertFunction(pkg, module, info, caller, &ast.SymbolicBindings{}, false)
	require.Nil(t, err)

	call := irb.AsNode(built.Return())
	require.Equal(t, irb.OpCall, call.Op())
	calleeAux := call.Aux().(irb.CallAux)
	require.Equal(t, "__m__double__8", calleeAux.Callee.Name)

	_, ok := pkg.GetFunction("__m__double__8")
	require.True(t, ok)
}

// TestConvertFunction_StructSplatIdempotence covers invariant 5: splatting
// with an empty override map reproduces the base tuple element-wise.
func TestConvertFunction_StructSplatIdempotence(t *testing.T) {
	info := newFakeTypeInfo()

	baseDef := &ast.NameDef{Name: "base"}
	baseRef := &ast.NameRef{Name: "base", Def: baseDef}
	structType := &ast.StructType{Name: "Point", Fields: []ast.StructField{{Name: "x", Type: u(8)}, {Name: "y", Type: u(8)}}}
	info.set(baseDef, structType)
	info.set(baseRef, structType)

	splat := &ast.StructSplat{
		StructDef: &ast.StructDef{Name: "Point", Type: structType},
		BaseExpr:  baseRef,
		Overrides: map[string]ast.Expr{},
	}
	info.set(splat, structType)

	fn := buildFunc("splat", []*ast.Param{{Name: baseDef, Type: structType}}, structType, splat)

	built, err := convert.ConvertFunction(irb.NewPackage("m"), fn.Module, info, fn, &ast.SymbolicBindings{}, false)
	require.Nil(t, err)

	n := irb.AsNode(built.Return())
	require.Equal(t, irb.OpTuple, n.Op())
	require.Len(t, n.Operands(), 2)
	for i, op := range n.Operands() {
		idx := irb.AsNode(op)
		require.Equal(t, irb.OpTupleIndex, idx.Op())
		require.Equal(t, i, idx.Aux())
	}
}

// TestConvertFunction_BuiltinBitSlice covers the BuiltinDispatcher's
// bit_slice(x, start, width) entry.
func TestConvertFunction_BuiltinBitSlice(t *testing.T) {
	info := newFakeTypeInfo()

	xDef := &ast.NameDef{Name: "x"}
	xRef := &ast.NameRef{Name: "x", Def: xDef}
	info.set(xDef, u(16))
	info.set(xRef, u(16))

	start, width := num(2), num(5)
	info.set(start, u(32))
	info.set(width, u(32))

	builtinRef := &ast.NameRef{Name: "bit_slice", Def: nil}
	call := &ast.Invocation{Callee: builtinRef, Args: []ast.Expr{xRef, start, width}}
	info.set(call, u(5))

	fn := buildFunc("slicer", []*ast.Param{{Name: xDef, Type: u(16)}}, u(5), call)

	built, err := convert.ConvertFunction(irb.NewPackage("m"), fn.Module, info, fn, &ast.SymbolicBindings{}, false)
	require.Nil(t, err)

	n := irb.AsNode(built.Return())
	require.Equal(t, irb.OpBitSlice, n.Op())
	require.Equal(t, irb.BitSliceAux{Start: 2, Width: 5}, n.Aux())
}

// TestConvertFunction_SignedDivisionUnimplemented covers the Open Question
// resolved toward rejecting, rather than silently mis-lowering, signed
// division.
func TestConvertFunction_SignedDivisionUnimplemented(t *testing.T) {
	info := newFakeTypeInfo()

	xDef, yDef := &ast.NameDef{Name: "x"}, &ast.NameDef{Name: "y"}
	xRef := &ast.NameRef{Name: "x", Def: xDef}
	yRef := &ast.NameRef{Name: "y", Def: yDef}
	info.set(xDef, s(8))
	info.set(yDef, s(8))
	info.set(xRef, s(8))
	info.set(yRef, s(8))

	div := &ast.Binop{Kind: ast.Div, Lhs: xRef, Rhs: yRef}
	info.set(div, s(8))

	fn := buildFunc("divider", []*ast.Param{{Name: xDef, Type: s(8)}, {Name: yDef, Type: s(8)}}, s(8), div)

	_, err := convert.ConvertFunction(irb.NewPackage("m"), fn.Module, info, fn, &ast.SymbolicBindings{}, false)
	require.NotNil(t, err)
	require.Equal(t, err.Kind.String(), "Unimplemented")
}
