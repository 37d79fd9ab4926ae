package sumcheck

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vybium/towerproof/internal/towerproof/field"
)

// maxSubcubeVars bounds how many inner (cache-resident) variables one
// subcube carries, standing in for the source's MAX_SRC_SUBCUBE_LOG_BITS
// tuning constant (spec §4.G).
const maxSubcubeVars = 6

// RoundInput bundles everything one CalculateRoundEvals call needs: the evaluation
// order, the remaining variable count, the pending tensor query (empty
// once every multilinear has been folded), the multilinears and
// evaluators for this round, the finite evaluation-domain points beyond
// 0/1/infinity, and an optional worker cap (0 uses GOMAXPROCS).
type RoundInput struct {
	Order                      EvaluationOrder
	NVars                      int
	TensorQuery                []field.Element
	Level                      int
	Multilinears               []Multilinear
	Evaluators                 []*Evaluator
	NontrivialEvaluationPoints []field.Element
	NumWorkers                 int
}

// CalculateRoundEvals runs the parallel subcube fold described in spec
// §4.G and returns, for each evaluator, its round-evaluation vector
// indexed by (eval_point_index - evaluator.EvalPointStart).
func CalculateRoundEvals(in RoundInput) ([][]field.Element, error) {
	if in.NVars <= 0 {
		return nil, errInvalidNVars
	}

	maxEnd := 0
	for _, e := range in.Evaluators {
		if e.EvalPointEnd > maxEnd {
			maxEnd = e.EvalPointEnd
		}
	}
	wantNontrivial := maxEnd - 3
	if wantNontrivial < 0 {
		wantNontrivial = 0
	}
	if len(in.NontrivialEvaluationPoints) != wantNontrivial {
		return nil, &IncorrectNontrivialEvalPointsLengthError{Expected: wantNontrivial, Got: len(in.NontrivialEvaluationPoints)}
	}
	for _, e := range in.Evaluators {
		for _, idx := range e.Inputs {
			if idx < 0 || idx >= len(in.Multilinears) {
				return nil, ErrIndexCompositionIndicesOutOfBounds
			}
		}
	}

	subcubeVars := in.NVars - 1
	if subcubeVars > maxSubcubeVars {
		subcubeVars = maxSubcubeVars
	}
	indexVars := in.NVars - 1 - subcubeVars

	access := NewAccess(in.Order)

	results := make([][]field.Element, len(in.Evaluators))
	for i, e := range in.Evaluators {
		results[i] = make([]field.Element, e.EvalPointEnd-e.EvalPointStart)
		for j := range results[i] {
			results[i][j] = field.Zero(in.Level)
		}
	}
	var mu sync.Mutex

	numOuter := 1 << uint(indexVars)
	workers := in.NumWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > numOuter {
		workers = numOuter
	}
	if workers < 1 {
		workers = 1
	}

	g, _ := errgroup.WithContext(context.Background())
	sem := make(chan struct{}, workers)

	for outer := 0; outer < numOuter; outer++ {
		outer := outer
		sem <- struct{}{}
		g.Go(func() error {
			defer func() { <-sem }()
			partial, err := foldOneSubcube(in, access, subcubeVars, outer, indexVars)
			if err != nil {
				return err
			}
			mu.Lock()
			for i := range partial {
				for j := range partial[i] {
					results[i][j] = results[i][j].Add(partial[i][j])
				}
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, e := range in.Evaluators {
		if e.ConstEvalSuffix == 0 {
			continue
		}
		for p := e.EvalPointStart; p < e.EvalPointEnd; p++ {
			isInfinity := p == 2
			if isInfinity {
				// The suffix's multilinears don't vary with this round's
				// variable, so the composed value is constant in z across
				// the whole suffix: its leading (infinity-point)
				// coefficient is 0, not the constant value itself.
				continue
			}
			// Elsewhere (z=0, z=1, and finite domain points) the constant
			// tail contributes the composition's value at the suffix
			// point's constant inputs, gated by parity (see
			// ProcessConstantEvalSuffix).
			query := make([]field.Element, len(e.Inputs))
			for k, idx := range e.Inputs {
				query[k] = constValueFor(in.Multilinears[idx])
			}
			v, err := e.Composition.Evaluate(query)
			if err != nil {
				return nil, err
			}
			results[i][p-e.EvalPointStart] = results[i][p-e.EvalPointStart].Add(ProcessConstantEvalSuffix(v, e.ConstEvalSuffix))
		}
	}

	return results, nil
}

func constValueFor(ml Multilinear) field.Element {
	if f, ok := ml.(*Folded); ok {
		return f.SuffixEval
	}
	return field.Zero(ml.Level())
}

func foldOneSubcube(in RoundInput, access Access, subcubeVars, subcubeIndex, indexVars int) ([][]field.Element, error) {
	width := 1 << uint(subcubeVars)

	evals0 := make([][]field.Element, len(in.Multilinears))
	evals1 := make([][]field.Element, len(in.Multilinears))
	used := make([]bool, len(in.Multilinears))
	for _, e := range in.Evaluators {
		for _, idx := range e.Inputs {
			used[idx] = true
		}
	}
	for i, ml := range in.Multilinears {
		if !used[i] {
			continue
		}
		e0, e1, err := access.Read(ml, in.TensorQuery, subcubeVars, subcubeIndex, indexVars)
		if err != nil {
			return nil, err
		}
		evals0[i] = e0
		evals1[i] = e1
	}

	out := make([][]field.Element, len(in.Evaluators))
	for ei, e := range in.Evaluators {
		out[ei] = make([]field.Element, e.EvalPointEnd-e.EvalPointStart)
		for j := range out[ei] {
			out[ei][j] = field.Zero(in.Level)
		}

		// Rows at or past (1<<(NVars-1)) - ConstEvalSuffix form the
		// constant suffix, which CalculateRoundEvals adds analytically.
		limit := (1 << uint(in.NVars-1)) - e.ConstEvalSuffix - subcubeIndex*width
		if limit <= 0 {
			continue
		}
		if limit > width {
			limit = width
		}
		lanes := make([][]field.Element, len(e.Inputs))
		for p := e.EvalPointStart; p < e.EvalPointEnd; p++ {
			for k, idx := range e.Inputs {
				lanes[k] = evalsAtPoint(evals0[idx], evals1[idx], p, in.NontrivialEvaluationPoints, width)[:limit]
			}
			v, err := e.ProcessSubcubeAtEvalPoint(in.Level, lanes)
			if err != nil {
				return nil, err
			}
			out[ei][p-e.EvalPointStart] = v
		}
	}
	return out, nil
}

// evalsAtPoint materializes the evals_z lane for schedule point p,
// following spec §4.G's point schedule exactly.
func evalsAtPoint(evals0, evals1 []field.Element, p int, nontrivial []field.Element, width int) []field.Element {
	switch {
	case p == 0:
		return evals0
	case p == 1:
		return evals1
	case p == 2:
		out := make([]field.Element, width)
		for i := range out {
			out[i] = evals1[i].Add(evals0[i])
		}
		return out
	default:
		point := nontrivial[p-3]
		out := make([]field.Element, width)
		for i := range out {
			diff := evals1[i].Add(evals0[i])
			out[i] = evals0[i].Add(diff.MulSubfield(point))
		}
		return out
	}
}

var errInvalidNVars = roundError("n_vars must be positive")

type roundError string

func (e roundError) Error() string { return "sumcheck: " + string(e) }
