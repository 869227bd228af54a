package irb

import (
	"github.com/githubhjs/xls/internal/irtypes"
	"github.com/githubhjs/xls/internal/report"
)

// FunctionBuilder appends pure dataflow nodes to a single in-progress
// Function.  One FunctionBuilder is instantiated per function converted;
// its lifetime matches the ValueTable's.
type FunctionBuilder struct {
	pkg    *Package
	fn     *Function
	nextID int
}

// NewFunctionBuilder starts building a new function named name.
func NewFunctionBuilder(pkg *Package, name string) *FunctionBuilder {
	return &FunctionBuilder{pkg: pkg, fn: &Function{Name: name}}
}

// Name returns the name this builder's function will be registered under.
func (b *FunctionBuilder) Name() string { return b.fn.Name }

func (b *FunctionBuilder) emit(op OpKind, typ irtypes.Type, operands []Value, aux any, pos *report.Span) Value {
	b.nextID++
	n := &node{id: b.nextID, op: op, typ: typ, operands: operands, aux: aux, pos: pos}
	b.fn.nodes = append(b.fn.nodes, n)
	return n
}

// Param declares a function parameter of type t.
func (b *FunctionBuilder) Param(name string, t irtypes.Type, pos *report.Span) Value {
	v := b.emit(OpParam, t, nil, nil, pos)
	v.(*node).name = name
	b.fn.Params = append(b.fn.Params, v)
	return v
}

// Literal materializes a compile-time-known value.
func (b *FunctionBuilder) Literal(lit *Literal, pos *report.Span) Value {
	n := b.emit(OpLiteral, lit.Type, nil, nil, pos)
	n.(*node).literal = lit
	return n
}

func (b *FunctionBuilder) binary(op OpKind, lhs, rhs Value, resultType irtypes.Type, pos *report.Span) Value {
	return b.emit(op, resultType, []Value{lhs, rhs}, nil, pos)
}

func (b *FunctionBuilder) Add(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpAdd, lhs, rhs, lhs.Type(), pos)
}
func (b *FunctionBuilder) Sub(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpSub, lhs, rhs, lhs.Type(), pos)
}
func (b *FunctionBuilder) SMul(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpSMul, lhs, rhs, lhs.Type(), pos)
}
func (b *FunctionBuilder) UMul(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpUMul, lhs, rhs, lhs.Type(), pos)
}
func (b *FunctionBuilder) UDiv(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpUDiv, lhs, rhs, lhs.Type(), pos)
}

var bit1 = irtypes.NewBits(1)

func (b *FunctionBuilder) Eq(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpEq, lhs, rhs, bit1, pos)
}
func (b *FunctionBuilder) Ne(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpNe, lhs, rhs, bit1, pos)
}
func (b *FunctionBuilder) UGe(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpUGe, lhs, rhs, bit1, pos)
}
func (b *FunctionBuilder) SGe(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpSGe, lhs, rhs, bit1, pos)
}
func (b *FunctionBuilder) UGt(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpUGt, lhs, rhs, bit1, pos)
}
func (b *FunctionBuilder) SGt(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpSGt, lhs, rhs, bit1, pos)
}
func (b *FunctionBuilder) ULe(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpULe, lhs, rhs, bit1, pos)
}
func (b *FunctionBuilder) SLe(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpSLe, lhs, rhs, bit1, pos)
}
func (b *FunctionBuilder) ULt(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpULt, lhs, rhs, bit1, pos)
}
func (b *FunctionBuilder) SLt(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpSLt, lhs, rhs, bit1, pos)
}

func (b *FunctionBuilder) Shrl(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpShrl, lhs, rhs, lhs.Type(), pos)
}
func (b *FunctionBuilder) Shll(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpShll, lhs, rhs, lhs.Type(), pos)
}
func (b *FunctionBuilder) Shra(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpShra, lhs, rhs, lhs.Type(), pos)
}
func (b *FunctionBuilder) And(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpAnd, lhs, rhs, lhs.Type(), pos)
}
func (b *FunctionBuilder) Or(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpOr, lhs, rhs, lhs.Type(), pos)
}
func (b *FunctionBuilder) Xor(lhs, rhs Value, pos *report.Span) Value {
	return b.binary(OpXor, lhs, rhs, lhs.Type(), pos)
}

func (b *FunctionBuilder) Not(v Value, pos *report.Span) Value {
	return b.emit(OpNot, v.Type(), []Value{v}, nil, pos)
}
func (b *FunctionBuilder) Neg(v Value, pos *report.Span) Value {
	return b.emit(OpNeg, v.Type(), []Value{v}, nil, pos)
}

// BitSlice extracts a static [start, start+width) sub-range of bits.
func (b *FunctionBuilder) BitSlice(v Value, start, width int, pos *report.Span) Value {
	return b.emit(OpBitSlice, irtypes.NewBits(width), []Value{v}, BitSliceAux{Start: start, Width: width}, pos)
}

// DynamicBitSlice extracts a width-wide sub-range starting at a
// runtime-computed offset.
func (b *FunctionBuilder) DynamicBitSlice(v, start Value, width int, pos *report.Span) Value {
	return b.emit(OpDynamicBitSlice, irtypes.NewBits(width), []Value{v, start}, BitSliceAux{Width: width}, pos)
}

func (b *FunctionBuilder) SignExtend(v Value, newWidth int, pos *report.Span) Value {
	return b.emit(OpSignExtend, irtypes.NewBits(newWidth), []Value{v}, nil, pos)
}
func (b *FunctionBuilder) ZeroExtend(v Value, newWidth int, pos *report.Span) Value {
	return b.emit(OpZeroExtend, irtypes.NewBits(newWidth), []Value{v}, nil, pos)
}

// Concat concatenates bits values MSB-first: values[0] occupies the high
// bits of the result.
func (b *FunctionBuilder) Concat(values []Value, pos *report.Span) Value {
	total := 0
	for _, v := range values {
		total += v.Type().BitWidth()
	}
	return b.emit(OpConcat, irtypes.NewBits(total), values, nil, pos)
}

// ArrayConcat concatenates array values element-wise, in order.
func (b *FunctionBuilder) ArrayConcat(values []Value, pos *report.Span) Value {
	total := 0
	var elem irtypes.Type
	for _, v := range values {
		arr := v.Type().(*irtypes.Array)
		elem = arr.Elem
		total += arr.Size
	}
	return b.emit(OpArrayConcat, irtypes.NewArray(elem, total), values, nil, pos)
}

func (b *FunctionBuilder) Tuple(values []Value, pos *report.Span) Value {
	members := make([]irtypes.Type, len(values))
	for i, v := range values {
		members[i] = v.Type()
	}
	return b.emit(OpTuple, irtypes.NewTuple(members), values, nil, pos)
}

func (b *FunctionBuilder) TupleIndex(v Value, i int, pos *report.Span) Value {
	tup := v.Type().(*irtypes.Tuple)
	return b.emit(OpTupleIndex, tup.Members[i], []Value{v}, i, pos)
}

// Array builds an array literal-shaped node from already-built element
// values; elemType is required so an empty array still carries a type.
func (b *FunctionBuilder) Array(values []Value, elemType irtypes.Type, pos *report.Span) Value {
	return b.emit(OpArray, irtypes.NewArray(elemType, len(values)), values, nil, pos)
}

// ArrayIndex indexes into (possibly nested) arrays, one index per
// dimension.
func (b *FunctionBuilder) ArrayIndex(v Value, indices []Value, pos *report.Span) Value {
	typ := v.Type()
	for range indices {
		typ = typ.(*irtypes.Array).Elem
	}
	operands := append([]Value{v}, indices...)
	return b.emit(OpArrayIndex, typ, operands, len(indices), pos)
}

// ArrayUpdate returns a copy of v with the element at indices replaced by
// newElem.
func (b *FunctionBuilder) ArrayUpdate(v, newElem Value, indices []Value, pos *report.Span) Value {
	operands := append([]Value{v, newElem}, indices...)
	return b.emit(OpArrayUpdate, v.Type(), operands, len(indices), pos)
}

// OneHot produces a one-hot bit vector one bit wider than v, with priority
// resolved toward the LSB or MSB per lsbPriority.
func (b *FunctionBuilder) OneHot(v Value, lsbPriority bool, pos *report.Span) Value {
	width := v.Type().BitWidth() + 1
	return b.emit(OpOneHot, irtypes.NewBits(width), []Value{v}, OneHotAux{LsbPriority: lsbPriority}, pos)
}

// OneHotSelect selects among cases by a one-hot selector, OR-ing together
// the (at most one) selected case.
func (b *FunctionBuilder) OneHotSelect(selector Value, cases []Value, pos *report.Span) Value {
	operands := append([]Value{selector}, cases...)
	return b.emit(OpOneHotSelect, cases[0].Type(), operands, nil, pos)
}

// MatchTrue picks the value whose 1-bit selector is true, defaulting to def
// when none are.
func (b *FunctionBuilder) MatchTrue(selectors, values []Value, def Value, pos *report.Span) Value {
	operands := append(append([]Value{}, selectors...), values...)
	operands = append(operands, def)
	return b.emit(OpMatchTrue, def.Type(), operands, MatchTrueAux{Selectors: selectors, Default: def}, pos)
}

func (b *FunctionBuilder) Clz(v Value, pos *report.Span) Value {
	return b.emit(OpClz, v.Type(), []Value{v}, nil, pos)
}
func (b *FunctionBuilder) Ctz(v Value, pos *report.Span) Value {
	return b.emit(OpCtz, v.Type(), []Value{v}, nil, pos)
}
func (b *FunctionBuilder) Reverse(v Value, pos *report.Span) Value {
	return b.emit(OpReverse, v.Type(), []Value{v}, nil, pos)
}

func (b *FunctionBuilder) AndReduce(v Value, pos *report.Span) Value {
	return b.emit(OpAndReduce, bit1, []Value{v}, nil, pos)
}
func (b *FunctionBuilder) OrReduce(v Value, pos *report.Span) Value {
	return b.emit(OpOrReduce, bit1, []Value{v}, nil, pos)
}
func (b *FunctionBuilder) XorReduce(v Value, pos *report.Span) Value {
	return b.emit(OpXorReduce, bit1, []Value{v}, nil, pos)
}

// Map applies fn elementwise to arg, which must be an array.
func (b *FunctionBuilder) Map(arg Value, fn *Function, pos *report.Span) Value {
	size := arg.Type().(*irtypes.Array).Size
	return b.emit(OpMap, irtypes.NewArray(fn.ReturnType, size), []Value{arg}, MapAux{Fn: fn}, pos)
}

func (b *FunctionBuilder) Select(cond, t, f Value, pos *report.Span) Value {
	return b.emit(OpSelect, t.Type(), []Value{cond, t, f}, nil, pos)
}

// Call invokes an already-built IR function.
func (b *FunctionBuilder) Call(callee *Function, args []Value, pos *report.Span) Value {
	return b.emit(OpCall, callee.ReturnType, args, CallAux{Callee: callee}, pos)
}

// CountedFor lowers DSLX's `for` expression: body is invoked trips times,
// threading its own return value back in as the next iteration's carry
// argument, seeded by initV, with invariantArgs passed unchanged to every
// iteration after the induction variable and the carry. This is a
// supplemented feature: see SPEC_FULL.md.
func (b *FunctionBuilder) CountedFor(trips int, body *Function, initV Value, invariantArgs []Value, pos *report.Span) Value {
	operands := append([]Value{initV}, invariantArgs...)
	return b.emit(OpCountedFor, initV.Type(), operands, CountedForAux{Trips: trips, Body: body, InitV: initV, InvariantArgs: invariantArgs}, pos)
}

// Build finalizes the function -- retVal becomes its designated return
// value -- and registers it into the package under the name it was created
// with (the name mangling has already happened by the time NewFunctionBuilder
// is called).
func (b *FunctionBuilder) Build(retVal Value, retType irtypes.Type) *Function {
	b.fn.ret = retVal
	b.fn.ReturnType = retType
	b.pkg.AddFunction(b.fn)
	return b.fn
}
