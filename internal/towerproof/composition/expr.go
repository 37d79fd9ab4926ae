// Package composition implements the composition-polynomial interface
// (spec §4.C): low-degree multivariate row predicates evaluated over a
// query of field elements, plus the small arithmetic-circuit AST used
// for variable-usage analysis and index remapping.
package composition

import "github.com/vybium/towerproof/internal/towerproof/field"

// Expr is the arithmetic-circuit AST a Poly exposes via Expression(),
// used for variable-usage masks (VarsUsage) and index remapping
// (RemapVars), the mechanism IndexComposition relies on.
type Expr interface {
	// VarsUsage returns, for an expression over an outer arity of n
	// variables, a boolean mask of which variable indices the
	// expression actually references.
	VarsUsage(n int) []bool
	// RemapVars returns a copy of the expression with every Var(i)
	// replaced by Var(indices[i]).
	RemapVars(indices []int) Expr
	// Equal reports structural equality with another expression.
	Equal(other Expr) bool
}

// Var references the i-th element of the query.
type Var struct {
	Index int
}

func (v Var) VarsUsage(n int) []bool {
	mask := make([]bool, n)
	if v.Index >= 0 && v.Index < n {
		mask[v.Index] = true
	}
	return mask
}

func (v Var) RemapVars(indices []int) Expr {
	return Var{Index: indices[v.Index]}
}

func (v Var) Equal(other Expr) bool {
	o, ok := other.(Var)
	return ok && o.Index == v.Index
}

// Const is a fixed field element, independent of the query.
type Const struct {
	Value field.Element
}

func (c Const) VarsUsage(n int) []bool {
	return make([]bool, n)
}

func (c Const) RemapVars(indices []int) Expr {
	return c
}

func (c Const) Equal(other Expr) bool {
	o, ok := other.(Const)
	return ok && o.Value.Equal(c.Value)
}

// Add is the sum of two subexpressions (XOR at evaluation time, since
// the underlying field has characteristic 2).
type Add struct {
	Left, Right Expr
}

func (a Add) VarsUsage(n int) []bool {
	return orMasks(a.Left.VarsUsage(n), a.Right.VarsUsage(n))
}

func (a Add) RemapVars(indices []int) Expr {
	return Add{Left: a.Left.RemapVars(indices), Right: a.Right.RemapVars(indices)}
}

func (a Add) Equal(other Expr) bool {
	o, ok := other.(Add)
	return ok && a.Left.Equal(o.Left) && a.Right.Equal(o.Right)
}

// Mul is the product of two subexpressions.
type Mul struct {
	Left, Right Expr
}

func (m Mul) VarsUsage(n int) []bool {
	return orMasks(m.Left.VarsUsage(n), m.Right.VarsUsage(n))
}

func (m Mul) RemapVars(indices []int) Expr {
	return Mul{Left: m.Left.RemapVars(indices), Right: m.Right.RemapVars(indices)}
}

func (m Mul) Equal(other Expr) bool {
	o, ok := other.(Mul)
	return ok && m.Left.Equal(o.Left) && m.Right.Equal(o.Right)
}

func orMasks(a, b []bool) []bool {
	out := make([]bool, len(a))
	for i := range a {
		out[i] = a[i] || b[i]
	}
	return out
}

// EvaluateExpr evaluates an Expr tree against a query over a field of
// the given tower level. It is used by compositions whose natural
// definition is expressed directly as an Expr (rather than hand-written
// Go arithmetic), and by tests exercising VarsUsage/RemapVars.
func EvaluateExpr(e Expr, query []field.Element) field.Element {
	switch v := e.(type) {
	case Var:
		return query[v.Index]
	case Const:
		return v.Value
	case Add:
		return EvaluateExpr(v.Left, query).Add(EvaluateExpr(v.Right, query))
	case Mul:
		return EvaluateExpr(v.Left, query).Mul(EvaluateExpr(v.Right, query))
	default:
		panic("composition: unknown expression node")
	}
}
