// Package irb is the FunctionBuilder/Package collaborator: a thin factory
// of pure dataflow IR nodes exposing typed operator primitives.  Per the
// lowering engine's contract this package is an external collaborator --
// it does not type-check, optimize, or otherwise second-guess what the
// converter asks it to build -- but the converter needs a concrete
// implementation to emit into, so this package plays that role.
package irb

import (
	"github.com/githubhjs/xls/internal/irtypes"
	"github.com/githubhjs/xls/internal/report"
)

// OpKind enumerates every pure dataflow operator the builder can emit.
type OpKind int

const (
	OpLiteral OpKind = iota
	OpParam

	OpAdd
	OpSub
	OpUMul
	OpSMul
	OpUDiv
	OpEq
	OpNe
	OpUGe
	OpSGe
	OpUGt
	OpSGt
	OpULe
	OpSLe
	OpULt
	OpSLt
	OpShrl
	OpShll
	OpShra
	OpAnd
	OpOr
	OpXor
	OpNot
	OpNeg

	OpBitSlice
	OpDynamicBitSlice
	OpSignExtend
	OpZeroExtend
	OpConcat
	OpArrayConcat
	OpTuple
	OpTupleIndex
	OpArray
	OpArrayIndex
	OpArrayUpdate
	OpOneHot
	OpOneHotSelect
	OpMatchTrue
	OpClz
	OpCtz
	OpReverse
	OpAndReduce
	OpOrReduce
	OpXorReduce
	OpMap
	OpSelect
	OpCall
	OpCountedFor
)

var opKindNames = map[OpKind]string{
	OpLiteral: "literal", OpParam: "param",
	OpAdd: "add", OpSub: "sub", OpUMul: "umul", OpSMul: "smul", OpUDiv: "udiv",
	OpEq: "eq", OpNe: "ne",
	OpUGe: "uge", OpSGe: "sge", OpUGt: "ugt", OpSGt: "sgt",
	OpULe: "ule", OpSLe: "sle", OpULt: "ult", OpSLt: "slt",
	OpShrl: "shrl", OpShll: "shll", OpShra: "shra",
	OpAnd: "and", OpOr: "or", OpXor: "xor", OpNot: "not", OpNeg: "neg",
	OpBitSlice: "bit_slice", OpDynamicBitSlice: "dynamic_bit_slice",
	OpSignExtend: "sign_extend", OpZeroExtend: "zero_extend",
	OpConcat: "concat", OpArrayConcat: "array_concat",
	OpTuple: "tuple", OpTupleIndex: "tuple_index",
	OpArray: "array", OpArrayIndex: "array_index", OpArrayUpdate: "array_update",
	OpOneHot: "one_hot", OpOneHotSelect: "one_hot_sel", OpMatchTrue: "match_true",
	OpClz: "clz", OpCtz: "ctz", OpReverse: "reverse",
	OpAndReduce: "and_reduce", OpOrReduce: "or_reduce", OpXorReduce: "xor_reduce",
	OpMap: "map", OpSelect: "sel", OpCall: "call", OpCountedFor: "counted_for",
}

// String renders op using the same mnemonic the textual IR printer does.
func (op OpKind) String() string {
	if s, ok := opKindNames[op]; ok {
		return s
	}
	return "unknown_op"
}

// Value is an opaque handle to a built IR node.  It is what the converter
// stores in its ValueTable and passes between operator constructors.
type Value interface {
	ID() int
	Type() irtypes.Type
}

// node is the concrete backing of a Value.
type node struct {
	id   int
	op   OpKind
	typ  irtypes.Type
	name string
	pos  *report.Span

	operands []Value
	literal  *Literal

	// Aux carries operator-specific, non-Value payload: BitSlice's
	// (start, width), OneHot's priority flag, Map/Call's callee, etc.
	aux any
}

func (n *node) ID() int              { return n.id }
func (n *node) Type() irtypes.Type   { return n.typ }
func (n *node) SetName(name string)  { n.name = name }
func (n *node) Name() string         { return n.name }

// BitSliceAux is the aux payload of an OpBitSlice node.
type BitSliceAux struct{ Start, Width int }

// OneHotAux is the aux payload of an OpOneHot node.
type OneHotAux struct{ LsbPriority bool }

// MatchTrueAux is the aux payload of an OpMatchTrue node: selectors line up
// positionally with the leading values; Default is the irrefutable arm.
type MatchTrueAux struct {
	Selectors []Value
	Default   Value
}

// CallAux is the aux payload of an OpCall node.
type CallAux struct {
	Callee *Function
}

// MapAux is the aux payload of an OpMap node.
type MapAux struct {
	Fn *Function
}

// CountedForAux is the aux payload of an OpCountedFor node, the supplemental
// lowering for DSLX's `for` expression (see SPEC_FULL.md's supplemented
// features): a loop counted by a compile-time-known trip count, stride 1,
// threading InitV as the carry seed and InvariantArgs unchanged into every
// iteration of Body.
type CountedForAux struct {
	Trips         int
	Body          *Function
	InitV         Value
	InvariantArgs []Value
}

// Operands returns the ordered operand values of the node.
func (n *node) Operands() []Value { return n.operands }

// Op returns the node's operator kind.
func (n *node) Op() OpKind { return n.op }

// Literal returns the node's literal payload; nil unless Op() == OpLiteral.
func (n *node) LiteralValue() *Literal { return n.literal }

// Aux returns the node's operator-specific payload.
func (n *node) Aux() any { return n.aux }

// Inspectable is the introspection surface of a built node, exposed to tests
// and pretty-printers that need to look inside an opaque Value.
type Inspectable interface {
	Value
	Op() OpKind
	Name() string
	Operands() []Value
	LiteralValue() *Literal
	Aux() any
}

// AsNode exposes the concrete node behind a Value, for IR inspection (tests,
// pretty-printing) outside this package.
func AsNode(v Value) Inspectable { return v.(*node) }
