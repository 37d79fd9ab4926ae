// Package sumcheck implements the sumcheck round-evaluation engine
// (spec §4.G), the hot loop that computes per-round univariate
// evaluations across a boolean hypercube in parallel, for both
// evaluation orders, with the folded-multilinear sparse-tail shortcut.
package sumcheck

import (
	"github.com/vybium/towerproof/internal/towerproof/field"
	"github.com/vybium/towerproof/internal/towerproof/polynomial"
)

// EvaluationOrder selects which remaining variable the round fixes:
// the lowest (LowToHigh) or the highest (HighToLow) of the unfixed
// variables (spec §4.G).
type EvaluationOrder int

const (
	LowToHigh EvaluationOrder = iota
	HighToLow
)

// Multilinear is the tagged variant spec §3 describes: either still
// backed by its original oracle data with a pending tensor query
// (Transparent), or already folded down to a large-field prefix plus a
// constant suffix value (Folded).
type Multilinear interface {
	NVars() int
	Level() int
}

// Transparent wraps a polynomial.Multilinear oracle that has not yet
// had any challenges folded directly into its storage; any
// already-decided challenges are applied on the fly via the round's
// tensor query (SubcubePartialLowEvals/SubcubePartialHighEvals).
type Transparent struct {
	Poly polynomial.Multilinear
}

func (t *Transparent) NVars() int { return t.Poly.NVars() }
func (t *Transparent) Level() int { return t.Poly.TowerLevel() }

// Folded is a prefix of large-field evaluations plus a scalar
// suffix_eval covering the unmaterialized tail of the hypercube — the
// sparse-tail optimization for partial tables (spec §3/§4.G).
type Folded struct {
	Evals      []field.Element
	SuffixEval field.Element
	NVarsTotal int
}

func (f *Folded) NVars() int { return f.NVarsTotal }
func (f *Folded) Level() int { return f.SuffixEval.Level() }

func (f *Folded) at(i int) field.Element {
	if i < len(f.Evals) {
		return f.Evals[i]
	}
	return f.SuffixEval
}
