package sumcheck

import "github.com/vybium/towerproof/internal/towerproof/field"

// Composition is the minimal surface an Evaluator needs from a
// composition.Poly, kept narrow so this package doesn't need to import
// the composition package's full interface.
type Composition interface {
	NVars() int
	Evaluate(query []field.Element) (field.Element, error)
}

// Evaluator owns one composition plus the range of point-schedule
// indices it is scheduled at, and an optional const_eval_suffix: the
// size of a trailing hypercube region where the referenced multilinears
// are known constant, letting the engine skip materializing that tail
// (spec §4.G).
type Evaluator struct {
	Composition     Composition
	Inputs          []int // indices into the round's multilinears slice
	EvalPointStart  int
	EvalPointEnd    int
	ConstEvalSuffix int
}

// ProcessSubcubeAtEvalPoint evaluates the composition against the
// gathered evals_z row for every lane of the subcube and returns their
// XOR-sum (characteristic 2 addition), the evaluator's contribution to
// this subcube's round-evaluation accumulator at one schedule point.
func (e *Evaluator) ProcessSubcubeAtEvalPoint(level int, lanes [][]field.Element) (field.Element, error) {
	if len(lanes) == 0 {
		return field.Zero(level), nil
	}
	width := len(lanes[0])
	acc := field.Zero(level)
	query := make([]field.Element, len(lanes))
	for i := 0; i < width; i++ {
		for m := range lanes {
			query[m] = lanes[m][i]
		}
		v, err := e.Composition.Evaluate(query)
		if err != nil {
			return field.Element{}, err
		}
		acc = acc.Add(v)
	}
	return acc, nil
}

// ProcessConstantEvalSuffix accounts for the analytically-handled
// constant tail: since the underlying field has characteristic 2,
// XOR-summing the same composition value `count` times collapses to the
// value itself when count is odd, and to zero when it is even.
func ProcessConstantEvalSuffix(value field.Element, count int) field.Element {
	if count%2 == 1 {
		return value
	}
	return field.Zero(value.Level())
}
