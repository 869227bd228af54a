package ast

import (
	"math/big"
)

// Number is an integer literal.  Its target width/signedness comes from the
// TypeInfo oracle, not from the literal's own textual form.
type Number struct {
	ExprBase
	Value *big.Int
}

// UnopKind enumerates the unary operators.
type UnopKind int

const (
	Negate UnopKind = iota
	Invert
)

type Unop struct {
	ExprBase
	Kind    UnopKind
	Operand Expr
}

// BinopKind enumerates the binary operators.
type BinopKind int

const (
	Add BinopKind = iota
	Sub
	Mul
	Div
	Eq
	Ne
	Ge
	Gt
	Le
	Lt
	Shrl
	Shll
	Shra
	And
	Or
	Xor
	LogicalAnd
	LogicalOr
	Concat
)

type Binop struct {
	ExprBase
	Kind     BinopKind
	Lhs, Rhs Expr
}

// Cast converts Operand from its resolved type to the cast's own target
// type, which TypeInfo resolves for the Cast node itself.
type Cast struct {
	ExprBase
	Operand Expr
}

// IndexKind distinguishes the four lowering strategies for Index.
type IndexKind int

const (
	// IndexTuple: rhs is a compile-time constant tuple member index.
	IndexTuple IndexKind = iota
	// IndexSlice: `x[start:limit]`, both compile-time resolved to
	// (start, width) by TypeInfo.
	IndexSlice
	// IndexWidthSlice: `x[start +: uN]`, dynamic start, width from type.
	IndexWidthSlice
	// IndexArray: plain array element access, static or dynamic.
	IndexArray
)

type Index struct {
	ExprBase
	Kind    IndexKind
	Operand Expr

	// Rhs is the index expression for IndexTuple and IndexArray.
	Rhs Expr

	// Start/Limit are the slice bound expressions for IndexSlice; both are
	// resolved to (start, width) via TypeInfo.SliceBounds, since either
	// bound may be negative or omitted in source.
	Start, Limit Expr

	// WidthStart is the dynamic start expression for IndexWidthSlice.
	WidthStart Expr
}

// ArrayLiteral is `[a, b, c]` or, with HasEllipsis, `[a, b, ...]` which pads
// to the target size by repeating the last element.
type ArrayLiteral struct {
	ExprBase
	Members     []Expr
	HasEllipsis bool
}

// ConstantArray is an ArrayLiteral all of whose members are compile-time
// constants, allowing it to be bound as a Constant IrValue.
type ConstantArray struct {
	ExprBase
	Members []Expr
}

// TupleLiteral is `(a, b, c)`.
type TupleLiteral struct {
	ExprBase
	Members []Expr
}

// StructLiteral is `Point { x: 1, y: 2 }`.  Members are in the struct's
// declared field order, not source order.
type StructLiteral struct {
	ExprBase
	StructDef *StructDef
	Members   []Expr
}

// StructSplat is `Point { x: 1, ..base }`: overrides the named members of
// base, keeping the rest.
type StructSplat struct {
	ExprBase
	StructDef *StructDef
	BaseExpr  Expr
	Overrides map[string]Expr
}

// Attr is `lhs.field_name`.
type Attr struct {
	ExprBase
	Operand   Expr
	FieldName string
}

// LetPattern is the left-hand side of a Let: either a leaf name binding or a
// nested tuple destructuring pattern.
type LetPattern struct {
	Leaf *NameDef
	// Tuple is non-nil when this pattern destructures a tuple.
	Tuple []*LetPattern
}

// Let is `let pattern = rhs; body`.
type Let struct {
	ExprBase
	Pattern *LetPattern
	Rhs     Expr
	Body    Expr
}

// Ternary is `cond ? consequent : alternate`.
type Ternary struct {
	ExprBase
	Cond, Consequent, Alternate Expr
}

// ColonRefKind distinguishes the two ways `module::name` resolves.
type ColonRefKind int

const (
	// ColonRefImportedConstant: name is a ConstantDef in ImportedModule.
	ColonRefImportedConstant ColonRefKind = iota
	// ColonRefEnumMember: name is a member of an EnumDef, possibly behind
	// a chain of type aliases.
	ColonRefEnumMember
)

type ColonRef struct {
	ExprBase
	Kind ColonRefKind

	// Set when Kind == ColonRefImportedConstant.
	ImportedModule *Module
	ConstantName   string

	// Set when Kind == ColonRefEnumMember.
	TypeRef    TypeRef
	MemberName string
}

// TypeRef is a possibly-aliased reference to a type definition; Deref walks
// the typedef chain until it reaches a concrete EnumDef.
type TypeRef struct {
	Def      *EnumDef
	AliasFor *TypeRef
}

func (r TypeRef) Deref() *EnumDef {
	cur := r
	for cur.Def == nil && cur.AliasFor != nil {
		cur = *cur.AliasFor
	}
	return cur.Def
}

// Invocation is a function call.  Callee is either a NameRef (local
// function or builtin) or a ColonRef (imported function).
type Invocation struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

// WildcardPattern matches any value.
type WildcardPattern struct {
	ExprBase
}

// TuplePattern matches a tuple and recursively matches each member.
type TuplePattern struct {
	ExprBase
	Members []Pattern
}

// Pattern is any of the leaf or tuple patterns a match arm may use.
type Pattern interface {
	Expr
	isPattern()
}

func (*WildcardPattern) isPattern() {}
func (*TuplePattern) isPattern()    {}
func (*Number) isPattern()          {}
func (*ColonRef) isPattern()        {}
func (*NameRef) isPattern()         {}
func (*NameDef) isPattern()         {}

// MatchArm is one arm of a Match: a disjunction of patterns sharing one RHS.
type MatchArm struct {
	Patterns []Pattern
	Rhs      Expr
}

// Match is a `match scrutinee { ... }` expression.  The trailing arm must be
// irrefutable and carry exactly one pattern.
type Match struct {
	ExprBase
	Scrutinee Expr
	Arms      []MatchArm
}

// NameRef is a reference to a previously bound name: a local variable, a
// function, or (in pattern position) a constant comparison.
type NameRef struct {
	ExprBase
	Name string
	Def  Node // *NameDef, *FunctionDef, *ConstantDef, or nil for an unresolved builtin name
}

// NameDef is a fresh name binding: a let-pattern leaf, a function parameter,
// or a match-arm capture.
type NameDef struct {
	ExprBase
	Name string
}

// For is a counted `for` loop of the one shape the original converter ever
// lowers: `for (induction, carry): CarryType in range(0, trip_count) { body }`
// seeded by Init. TripCount must be compile-time resolvable; any other
// iterable shape is a checker-level rejection upstream, never seen here.
//
// FreeVars lists the names the body references from the enclosing function
// beyond Induction and the carry pattern; each becomes an extra parameter on
// the synthesized loop-body function, threaded through as an invariant
// argument at the call site.
type For struct {
	ExprBase
	Induction    *NameDef
	CarryPattern *LetPattern
	TripCount    Dim
	Init         Expr
	Body         Expr
	FreeVars     []*NameDef
}
