package sumcheck

import (
	"fmt"

	"github.com/vybium/towerproof/internal/towerproof/field"
)

// Access abstracts over the two evaluation orders' differing subcube
// read strategies (spec §4.G: LowToHighAccess / HighToLowAccess).
type Access interface {
	// ScratchSpaceLen reports the scratch buffer length this access
	// strategy needs for a given subcube_vars, and whether it needs
	// scratch at all.
	ScratchSpaceLen(subcubeVars int) (length int, needed bool)
	// Read fills evals0/evals1 (the z=0 and z=1 restrictions of the
	// subcube) for one multilinear.
	Read(ml Multilinear, tensorQuery []field.Element, subcubeVars, subcubeIndex, indexVars int) (evals0, evals1 []field.Element, err error)
}

// LowToHighAccess fixes the lowest remaining variable: it requests a
// subcubeVars+1-variate subcube (because the z=0/z=1 values are
// interleaved at stride 1), then copies the even entries to evals0 and
// the odd entries to evals1.
type LowToHighAccess struct{}

func (LowToHighAccess) ScratchSpaceLen(subcubeVars int) (int, bool) {
	return 1 << uint(subcubeVars+1), true
}

func (LowToHighAccess) Read(ml Multilinear, tensorQuery []field.Element, subcubeVars, subcubeIndex, indexVars int) ([]field.Element, []field.Element, error) {
	want := 1 << uint(subcubeVars)
	evals0 := make([]field.Element, want)
	evals1 := make([]field.Element, want)

	switch m := ml.(type) {
	case *Transparent:
		interleaved := make([]field.Element, want*2)
		var err error
		if len(tensorQuery) <= 1 {
			err = m.Poly.SubcubeEvals(subcubeVars+1, subcubeIndex, 0, interleaved)
		} else {
			err = m.Poly.SubcubePartialLowEvals(tensorQuery, subcubeVars+1, subcubeIndex, interleaved)
		}
		if err != nil {
			return nil, nil, err
		}
		for i := 0; i < want; i++ {
			evals0[i] = interleaved[2*i]
			evals1[i] = interleaved[2*i+1]
		}
		return evals0, evals1, nil
	case *Folded:
		base := subcubeIndex << uint(subcubeVars+1)
		for i := 0; i < want; i++ {
			evals0[i] = m.at(base + 2*i)
			evals1[i] = m.at(base + 2*i + 1)
		}
		return evals0, evals1, nil
	default:
		return nil, nil, fmt.Errorf("sumcheck: low_to_high access: unknown multilinear kind %T", ml)
	}
}

// HighToLowAccess fixes the highest remaining variable: it performs two
// independent subcube reads at subcube_index and
// subcube_index | (1 << index_vars), directly into evals0/evals1, and
// needs no scratch space.
type HighToLowAccess struct{}

func (HighToLowAccess) ScratchSpaceLen(subcubeVars int) (int, bool) {
	return 0, false
}

func (HighToLowAccess) Read(ml Multilinear, tensorQuery []field.Element, subcubeVars, subcubeIndex, indexVars int) ([]field.Element, []field.Element, error) {
	want := 1 << uint(subcubeVars)
	evals0 := make([]field.Element, want)
	evals1 := make([]field.Element, want)
	offset1 := subcubeIndex | (1 << uint(indexVars))

	switch m := ml.(type) {
	case *Transparent:
		var err error
		if len(tensorQuery) <= 1 {
			if err = m.Poly.SubcubeEvals(subcubeVars, subcubeIndex, 0, evals0); err == nil {
				err = m.Poly.SubcubeEvals(subcubeVars, offset1, 0, evals1)
			}
		} else {
			if err = m.Poly.SubcubePartialHighEvals(tensorQuery, subcubeVars, subcubeIndex, evals0); err == nil {
				err = m.Poly.SubcubePartialHighEvals(tensorQuery, subcubeVars, offset1, evals1)
			}
		}
		if err != nil {
			return nil, nil, err
		}
		return evals0, evals1, nil
	case *Folded:
		base0 := subcubeIndex << uint(subcubeVars)
		base1 := offset1 << uint(subcubeVars)
		for i := 0; i < want; i++ {
			evals0[i] = m.at(base0 + i)
			evals1[i] = m.at(base1 + i)
		}
		return evals0, evals1, nil
	default:
		return nil, nil, fmt.Errorf("sumcheck: high_to_low access: unknown multilinear kind %T", ml)
	}
}

// NewAccess returns the Access strategy for the given evaluation order.
func NewAccess(order EvaluationOrder) Access {
	if order == LowToHigh {
		return LowToHighAccess{}
	}
	return HighToLowAccess{}
}
