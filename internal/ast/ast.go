package ast

import "github.com/githubhjs/xls/internal/report"

// Node is the abstract interface for every AST node the converter visits.
// Node identity is pointer identity: the converter's ValueTable is keyed on
// the Node interface value itself, never on structural equality, so two
// syntactically identical nodes never alias each other by accident.
type Node interface {
	Span() *report.Span
}

// Base is embedded by every concrete node to provide its span.
type Base struct {
	span *report.Span
}

func NewBase(span *report.Span) Base {
	return Base{span: span}
}

func (b Base) Span() *report.Span {
	return b.span
}

// Expr is a Node that yields a value.
type Expr interface {
	Node
	isExpr()
}

// ExprBase is embedded by every expression node.
type ExprBase struct {
	Base
}

func (ExprBase) isExpr() {}
