// Package irtypes is the lowered IR type domain: bits, arrays, and tuples,
// with struct and enum shape erased.  Concrete representation is borrowed
// from github.com/llir/llvm's type system -- bit vectors become LLVM
// integer types, arrays become LLVM array types, and tuples become LLVM
// struct types -- the same "host IR via llir/llvm" strategy the teacher
// compiler used for its own backend (see its generate package) rather than
// a bespoke width-tracking struct.
package irtypes

import (
	"fmt"
	"strings"

	lltypes "github.com/llir/llvm/ir/types"
)

// Type is an IR-level type: the result of lowering a ConcreteType.
type Type interface {
	// LLVM exposes the backing llir/llvm representation.
	LLVM() lltypes.Type
	String() string
	// BitWidth is the flattened bit width of the type, used by the
	// BitsType<->ArrayType cast round-trip.
	BitWidth() int
}

// Bits is a fixed-width bit vector IR type.
type Bits struct {
	Width int
	typ   *lltypes.IntType
}

// NewBits builds a Bits type of the given width.
func NewBits(width int) *Bits {
	return &Bits{Width: width, typ: lltypes.NewInt(uint64(width))}
}

func (b *Bits) LLVM() lltypes.Type { return b.typ }
func (b *Bits) String() string     { return fmt.Sprintf("bits[%d]", b.Width) }
func (b *Bits) BitWidth() int      { return b.Width }

// Array is a fixed-length homogeneous array IR type.
type Array struct {
	Elem Type
	Size int
	typ  *lltypes.ArrayType
}

func NewArray(elem Type, size int) *Array {
	return &Array{Elem: elem, Size: size, typ: lltypes.NewArray(uint64(size), elem.LLVM())}
}

func (a *Array) LLVM() lltypes.Type { return a.typ }
func (a *Array) String() string     { return fmt.Sprintf("%s[%d]", a.Elem, a.Size) }
func (a *Array) BitWidth() int      { return a.Elem.BitWidth() * a.Size }

// Tuple is an ordered product IR type; struct field names are not preserved.
type Tuple struct {
	Members []Type
	typ     *lltypes.StructType
}

func NewTuple(members []Type) *Tuple {
	llMembers := make([]lltypes.Type, len(members))
	for i, m := range members {
		llMembers[i] = m.LLVM()
	}
	return &Tuple{Members: members, typ: lltypes.NewStruct(llMembers...)}
}

func (t *Tuple) LLVM() lltypes.Type { return t.typ }

func (t *Tuple) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t *Tuple) BitWidth() int {
	w := 0
	for _, m := range t.Members {
		w += m.BitWidth()
	}
	return w
}

// Equal reports structural equality of two IR types.
func Equal(a, b Type) bool {
	return a.String() == b.String()
}
