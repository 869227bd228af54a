package convert

import (
	"fmt"

	"github.com/githubhjs/xls/internal/ast"
	"github.com/githubhjs/xls/internal/irb"
	"github.com/githubhjs/xls/internal/report"
)

// lowerFor lowers `for (induction, carry): T in range(0, trip_count) { body }`,
// the one counted-loop shape this engine (like the original converter it is
// grounded on, see SPEC_FULL.md) ever reduces to IR. The loop body becomes
// its own IR function -- taking the induction variable, the carry, and one
// parameter per free variable the body reads from the enclosing scope -- and
// the loop itself becomes a single CountedFor node in the caller, seeded by
// Init and threading the enclosing function's current bindings in as
// invariant arguments.
func (l *Lowerer) lowerFor(n *ast.For) (IrValue, *report.ConversionError) {
	initVal, err := l.lowerAndUse(n.Init)
	if err != nil {
		return IrValue{}, err
	}

	trips, err := n.TripCount.Resolve(l.bindings)
	if err != nil {
		return IrValue{}, err
	}

	body, err := l.buildForBody(n)
	if err != nil {
		return IrValue{}, err
	}

	invariantArgs := make([]irb.Value, 0, len(n.FreeVars))
	for _, fv := range n.FreeVars {
		v, err := l.values.Use(fv)
		if err != nil {
			return IrValue{}, err
		}
		invariantArgs = append(invariantArgs, v)
	}

	return Dynamic(l.fb.CountedFor(trips, body, initVal, invariantArgs, l.span(n))), nil
}

// buildForBody converts n.Body into its own IR function: a fresh
// FunctionBuilder and ValueTable, parameterized by the induction variable,
// the (possibly destructured) carry, and every free variable the body
// captures from the enclosing function.
func (l *Lowerer) buildForBody(n *ast.For) (*irb.Function, *report.ConversionError) {
	l.forOrdinal++
	name := fmt.Sprintf("%s_counted_for_%d_body", l.fb.Name(), l.forOrdinal)

	sub := &Lowerer{
		pkg:           l.pkg,
		module:        l.module,
		info:          l.info,
		fb:            irb.NewFunctionBuilder(l.pkg, name),
		values:        NewValueTable(),
		resolver:      l.resolver,
		bindings:      l.bindings,
		emitPositions: l.emitPositions,
		mapHelpers:    l.mapHelpers,
		building:      l.building,
	}

	inductionType, err := l.resolver.Resolve(n.Induction)
	if err != nil {
		return nil, err
	}
	inductionIR, err := LowerType(inductionType)
	if err != nil {
		return nil, err
	}
	inductionParam := sub.fb.Param(n.Induction.Name, inductionIR, sub.span(n))
	if err := sub.values.Bind(n.Induction, Dynamic(inductionParam)); err != nil {
		return nil, err
	}

	carryType, err := l.resolver.Resolve(n.Init)
	if err != nil {
		return nil, err
	}
	carryIR, err := LowerType(carryType)
	if err != nil {
		return nil, err
	}
	if n.CarryPattern.Leaf != nil {
		carryParam := sub.fb.Param(n.CarryPattern.Leaf.Name, carryIR, sub.span(n))
		if err := sub.values.Bind(n.CarryPattern.Leaf, Dynamic(carryParam)); err != nil {
			return nil, err
		}
	} else {
		carryParam := sub.fb.Param("__loop_carry", carryIR, sub.span(n))
		if err := sub.destructure(n.CarryPattern, Dynamic(carryParam), n); err != nil {
			return nil, err
		}
	}

	for _, fv := range n.FreeVars {
		fvType, err := l.resolver.Resolve(fv)
		if err != nil {
			return nil, err
		}
		fvIR, err := LowerType(fvType)
		if err != nil {
			return nil, err
		}
		fvParam := sub.fb.Param(fv.Name, fvIR, sub.span(n))
		if err := sub.values.Bind(fv, Dynamic(fvParam)); err != nil {
			return nil, err
		}
	}

	retVal, err := sub.lowerExpr(n.Body)
	if err != nil {
		return nil, err
	}
	retType, err := l.resolver.Resolve(n.Body)
	if err != nil {
		return nil, err
	}
	retIR, err := LowerType(retType)
	if err != nil {
		return nil, err
	}
	return sub.fb.Build(retVal.Handle, retIR), nil
}
