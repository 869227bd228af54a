package irb

import (
	"math/big"

	"github.com/githubhjs/xls/internal/irtypes"
)

// LiteralKind distinguishes a Literal's shape.  A Literal only ever tags
// Bits vs. Composite; whether a composite is an array or a tuple is carried
// by its Type (irtypes.Array or irtypes.Tuple).  InterpBridge is where the
// array/tuple distinction is deliberately (and lossily) erased, see
// SPEC_FULL.md's Open Question resolutions.
type LiteralKind int

const (
	LiteralBits LiteralKind = iota
	LiteralComposite
)

// Literal is a compile-time-known IR value: either a bit pattern or a
// (possibly nested) composite of other Literals.
type Literal struct {
	Kind     LiteralKind
	Type     irtypes.Type
	Bits     *big.Int
	Elements []*Literal
}

// NewBitsLiteral builds a Literal of the given value materialized in a bits
// type of width w.
func NewBitsLiteral(value *big.Int, width int) *Literal {
	return &Literal{Kind: LiteralBits, Type: irtypes.NewBits(width), Bits: new(big.Int).Set(value)}
}

// NewCompositeLiteral builds a Literal for an array or a tuple shape; typ
// distinguishes which via its irtypes.Type (Array vs Tuple).
func NewCompositeLiteral(typ irtypes.Type, elements []*Literal) *Literal {
	return &Literal{Kind: LiteralComposite, Type: typ, Elements: elements}
}
