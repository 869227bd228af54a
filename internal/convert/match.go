package convert

import (
	"math/big"

	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/irb"
	"github.com/githubhjs/xls/internal/report"
)

// lowerMatch lowers a `match scrutinee { ... }` expression to a MatchTrue
// node: one 1-bit selector per non-trailing arm, ORing together the
// selectors of an arm's alternative patterns, with the trailing
// irrefutable arm supplying the default value.
func (l *Lowerer) lowerMatch(n *ast.Match) (IrValue, *report.ConversionError) {
	if len(n.Arms) == 0 {
		return IrValue{}, report.Internalf(n.Span(), "match expression has no arms")
	}
	last := n.Arms[len(n.Arms)-1]
	if len(last.Patterns) != 1 {
		return IrValue{}, report.Unimplementedf(n.Span(), "trailing match arm must carry exactly one pattern")
	}
	if _, ok := last.Patterns[0].(*ast.WildcardPattern); !ok {
		if _, ok := last.Patterns[0].(*ast.NameDef); !ok {
			return IrValue{}, report.Unimplementedf(n.Span(), "trailing match arm must be irrefutable")
		}
	}

	scrutinee, err := l.lowerAndUse(n.Scrutinee)
	if err != nil {
		return IrValue{}, err
	}

	selectors := make([]irb.Value, 0, len(n.Arms)-1)
	values := make([]irb.Value, 0, len(n.Arms)-1)
	for _, arm := range n.Arms[:len(n.Arms)-1] {
		sel, err := l.compileArmSelector(arm.Patterns, scrutinee, n)
		if err != nil {
			return IrValue{}, err
		}
		rhs, err := l.lowerAndUse(arm.Rhs)
		if err != nil {
			return IrValue{}, err
		}
		selectors = append(selectors, sel)
		values = append(values, rhs)
	}

	// Compile the trailing pattern for its binding side effects (an
	// irrefutable NameDef pattern binds the whole scrutinee), without
	// contributing a selector.
	if _, err := l.compilePattern(last.Patterns[0], scrutinee, n); err != nil {
		return IrValue{}, err
	}
	def, err := l.lowerAndUse(last.Rhs)
	if err != nil {
		return IrValue{}, err
	}

	return Dynamic(l.fb.MatchTrue(selectors, values, def, l.span(n))), nil
}

// compileArmSelector ORs together the selectors of every alternative
// pattern in one arm.
func (l *Lowerer) compileArmSelector(patterns []ast.Pattern, scrutinee irb.Value, n ast.Node) (irb.Value, *report.ConversionError) {
	var acc irb.Value
	for _, p := range patterns {
		sel, err := l.compilePattern(p, scrutinee, n)
		if err != nil {
			return nil, err
		}
		if acc == nil {
			acc = sel
			continue
		}
		acc = l.fb.Or(acc, sel, l.span(n))
	}
	return acc, nil
}

// compilePattern recursively compiles one pattern against scrutinee,
// returning a 1-bit selector that is true exactly when the pattern
// matches. Leaf NameDef patterns bind the matched value as a side effect;
// NameRef leaves compare against the value they already name.
func (l *Lowerer) compilePattern(p ast.Pattern, scrutinee irb.Value, n ast.Node) (irb.Value, *report.ConversionError) {
	switch v := p.(type) {
	case *ast.WildcardPattern:
		return l.constBit1(n), nil

	case *ast.NameDef:
		if err := l.values.Bind(v, Dynamic(scrutinee)); err != nil {
			return nil, err
		}
		return l.constBit1(n), nil

	case *ast.NameRef:
		bound, err := l.values.Use(v.Def)
		if err != nil {
			return nil, err
		}
		return l.fb.Eq(bound, scrutinee, l.span(n)), nil

	case *ast.Number:
		lit := irb.NewBitsLiteral(v.Value, scrutinee.Type().BitWidth())
		h := l.fb.Literal(lit, l.span(n))
		return l.fb.Eq(h, scrutinee, l.span(n)), nil

	case *ast.ColonRef:
		val, err := l.lowerExpr(v)
		if err != nil {
			return nil, err
		}
		return l.fb.Eq(val.Handle, scrutinee, l.span(n)), nil

	case *ast.TuplePattern:
		acc := l.constBit1(n)
		for i, member := range v.Members {
			elem := l.fb.TupleIndex(scrutinee, i, l.span(n))
			sel, err := l.compilePattern(member, elem, n)
			if err != nil {
				return nil, err
			}
			acc = l.fb.And(acc, sel, l.span(n))
		}
		return acc, nil

	default:
		return nil, report.Internalf(n.Span(), "unsupported pattern kind %T", p)
	}
}

// constBit1 materializes the 1-bit literal `1`, used as the identity
// element patterns without a real comparison (wildcards, name captures)
// contribute to an AND chain.
func (l *Lowerer) constBit1(n ast.Node) irb.Value {
	lit := irb.NewBitsLiteral(big.NewInt(1), 1)
	return l.fb.Literal(lit, l.span(n))
}
