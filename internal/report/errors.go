package report

import "fmt"

// Kind is the category of a ConversionError.  This is the only error
// taxonomy the converter exposes; every failure returned from internal/ast,
// internal/convert, or internal/irb carries one of these.
type Kind int

const (
	// NotFound indicates a missing node binding in the value table.
	NotFound Kind = iota
	// Internal indicates an invariant violation: an unknown operator kind,
	// a re-bind of an already-bound node, or type information the checker
	// should have already filled in.
	Internal
	// InvalidArgument indicates bad mangling inputs or an unsupported
	// interpreter value tag at the InterpBridge boundary.
	InvalidArgument
	// Unimplemented indicates a well-typed but unsupported construct, such
	// as signed division or a non-irrefutable trailing match arm.
	Unimplemented
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case Internal:
		return "Internal"
	case InvalidArgument:
		return "InvalidArgument"
	case Unimplemented:
		return "Unimplemented"
	default:
		return "Unknown"
	}
}

// ConversionError is the single error type returned across the lowering
// pipeline.  It always carries the originating span on a best-effort basis:
// callers map Kind to a user-visible diagnostic.
type ConversionError struct {
	Kind    Kind
	Span    *Span
	Message string
}

func (e *ConversionError) Error() string {
	if e.Span == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Message)
}

// Errorf builds a ConversionError of the given kind at span, formatting the
// message the way fmt.Errorf would.
func Errorf(kind Kind, span *Span, format string, args ...any) *ConversionError {
	return &ConversionError{Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(span *Span, format string, args ...any) *ConversionError {
	return Errorf(NotFound, span, format, args...)
}

func Internalf(span *Span, format string, args ...any) *ConversionError {
	return Errorf(Internal, span, format, args...)
}

func InvalidArgumentf(span *Span, format string, args ...any) *ConversionError {
	return Errorf(InvalidArgument, span, format, args...)
}

func Unimplementedf(span *Span, format string, args ...any) *ConversionError {
	return Errorf(Unimplemented, span, format, args...)
}
