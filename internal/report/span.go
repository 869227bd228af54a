// Package report carries source positions and the error taxonomy shared by
// every stage of the lowering pipeline, plus a pterm-backed diagnostic
// printer for the CLI driver.
package report

import "fmt"

// Position is a single line/column location within a source file.
type Position struct {
	Line, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Span is the source range an AST node or IR node was built from.  The
// converter is constructed with a flag indicating whether spans should be
// attached to emitted IR at all (`emit_positions`); when that flag is unset,
// lowering still runs but every emitted node carries a nil span.
type Span struct {
	File       string
	Start, End Position
}

func NewSpan(file string, start, end Position) *Span {
	return &Span{File: file, Start: start, End: end}
}

// SpanOver returns the smallest span covering both a and b.  Either argument
// may be nil, in which case the other is returned unchanged.
func SpanOver(a, b *Span) *Span {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &Span{File: a.File, Start: a.Start, End: b.End}
}

func (s *Span) String() string {
	if s == nil {
		return "<no span>"
	}
	return fmt.Sprintf("%s:%s-%s", s.File, s.Start, s.End)
}
