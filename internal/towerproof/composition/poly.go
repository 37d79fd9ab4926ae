package composition

import "github.com/vybium/towerproof/internal/towerproof/field"

// Poly is the composition-polynomial capability interface (spec §4.C):
// a pure, stateless, low-degree multivariate predicate over a row of
// field elements, with enough introspection (arity, degree, tower
// level, expression) for the builder and sumcheck engine to reason
// about it without knowing its concrete kind.
type Poly interface {
	NVars() int
	Degree() int
	BinaryTowerLevel() int
	Evaluate(query []field.Element) (field.Element, error)
	Expression() Expr
}

// BatchEvaluate evaluates a composition over each row of a batch,
// writing results into out. It is the generic fallback for
// compositions that do not provide a specialized vectorized path; spec
// §4.C lists batch_evaluate as optional exactly for this reason.
func BatchEvaluate(p Poly, rows [][]field.Element, out []field.Element) error {
	if len(rows) != len(out) {
		return &IncorrectQuerySizeError{Expected: len(out), Got: len(rows)}
	}
	for i, row := range rows {
		v, err := p.Evaluate(row)
		if err != nil {
			return err
		}
		out[i] = v
	}
	return nil
}

func checkArity(p Poly, query []field.Element) error {
	if len(query) != p.NVars() {
		return &IncorrectQuerySizeError{Expected: p.NVars(), Got: len(query)}
	}
	return nil
}
