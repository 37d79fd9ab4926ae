package composition

import (
	"fmt"

	"github.com/vybium/towerproof/internal/towerproof/field"
)

// IndexComposition wraps an inner composition of arity N with an
// injection `indices` into a larger query of arity NVars, so that the
// inner composition can be registered against a constraint whose oracle
// list is a superset of the inner composition's natural inputs (spec
// §4.C). Evaluate gathers query[indices[k]] into a length-N buffer and
// delegates to the inner composition.
type IndexComposition struct {
	nVars   int
	indices []int
	inner   Poly
}

// NewIndexComposition builds an IndexComposition. It fails if any index
// is out of range for the outer arity, or if the number of indices does
// not match the inner composition's arity.
func NewIndexComposition(nVars int, indices []int, inner Poly) (*IndexComposition, error) {
	if len(indices) != inner.NVars() {
		return nil, &IncorrectQuerySizeError{Expected: inner.NVars(), Got: len(indices)}
	}
	for _, idx := range indices {
		if idx < 0 || idx >= nVars {
			return nil, fmt.Errorf("composition: index composition: index %d out of bounds for n_vars=%d: %w", idx, nVars, ErrIndexCompositionIndicesOutOfBounds)
		}
	}
	cp := make([]int, len(indices))
	copy(cp, indices)
	return &IndexComposition{nVars: nVars, indices: cp, inner: inner}, nil
}

// FromSubset builds an IndexComposition by locating each of the inner
// composition's natural oracle ids (`subset`) within a larger ordered
// oracle list (`superset`), failing with ErrMixedMultilinearNotFound if
// any subset id is absent from the superset.
func FromSubset(superset, subset []int, inner Poly) (*IndexComposition, error) {
	position := make(map[int]int, len(superset))
	for i, id := range superset {
		position[id] = i
	}
	indices := make([]int, len(subset))
	for k, id := range subset {
		pos, ok := position[id]
		if !ok {
			return nil, fmt.Errorf("composition: index composition: oracle id %d not found in superset: %w", id, ErrMixedMultilinearNotFound)
		}
		indices[k] = pos
	}
	return NewIndexComposition(len(superset), indices, inner)
}

func (ic *IndexComposition) NVars() int {
	return ic.nVars
}

func (ic *IndexComposition) Degree() int {
	return ic.inner.Degree()
}

func (ic *IndexComposition) BinaryTowerLevel() int {
	return ic.inner.BinaryTowerLevel()
}

func (ic *IndexComposition) Evaluate(query []field.Element) (field.Element, error) {
	if err := checkArity(ic, query); err != nil {
		return field.Element{}, err
	}
	gathered := make([]field.Element, len(ic.indices))
	for k, idx := range ic.indices {
		gathered[k] = query[idx]
	}
	return ic.inner.Evaluate(gathered)
}

// Expression returns the inner composition's expression remapped
// through `indices`, so Var(k) in the inner expression becomes
// Var(indices[k]) in the outer one.
func (ic *IndexComposition) Expression() Expr {
	return ic.inner.Expression().RemapVars(ic.indices)
}
