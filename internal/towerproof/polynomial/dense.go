// Package polynomial implements the multilinear polynomial abstraction
// that the sumcheck round-evaluation engine (internal/towerproof/sumcheck)
// consults for hypercube evaluations, subcube extraction, and partial
// tensor-query projection. A multilinear is a function from {0,1}^n to
// a tower field, represented densely as its 2^n evaluation table, with
// the usual little-endian convention: the scalar at table index i
// corresponds to the boolean point whose bits are the binary digits of i.
package polynomial

import (
	"fmt"
	"math/bits"

	"github.com/vybium/towerproof/internal/towerproof/field"
)

// Multilinear is the capability-based interface the sumcheck engine
// programs against, matching spec §4.B: n_vars/tower_level/evals,
// subcube extraction, and partial low/high tensor-query projection.
type Multilinear interface {
	NVars() int
	TowerLevel() int
	Evals() []field.Element
	SubcubeEvals(subcubeVars, subcubeIndex, logEmbedding int, dst []field.Element) error
	SubcubePartialLowEvals(query []field.Element, subcubeVars, subcubeIndex int, dst []field.Element) error
	SubcubePartialHighEvals(query []field.Element, subcubeVars, subcubeIndex int, dst []field.Element) error
}

// Dense is a fully materialized multilinear: a flat table of 2^n
// elements all at a single tower level.
type Dense struct {
	level int
	evals []field.Element
}

// NewDense builds a dense multilinear from an evaluation table. The
// table length must be a power of two (including 1, the n_vars==0 case).
func NewDense(level int, evals []field.Element) (*Dense, error) {
	n := len(evals)
	if n == 0 || (n&(n-1)) != 0 {
		return nil, fmt.Errorf("polynomial: new dense multilinear: %w (got %d)", ErrNotPowerOfTwo, n)
	}
	for i, e := range evals {
		if e.Level() != level {
			return nil, fmt.Errorf("polynomial: new dense multilinear: eval %d at level %d, expected %d", i, e.Level(), level)
		}
	}
	cp := make([]field.Element, n)
	copy(cp, evals)
	return &Dense{level: level, evals: cp}, nil
}

// NVars returns log2(len(evals)).
func (d *Dense) NVars() int {
	return bits.TrailingZeros(uint(len(d.evals))) // len is a power of two so this equals log2
}

// TowerLevel returns the tower level shared by every evaluation.
func (d *Dense) TowerLevel() int {
	return d.level
}

// Evals returns the backing evaluation table directly (not a copy);
// callers must not mutate it.
func (d *Dense) Evals() []field.Element {
	return d.evals
}

// SubcubeEvals writes the evaluations of the restriction obtained by
// fixing the upper n-subcubeVars variables to the little-endian bits of
// subcubeIndex. logEmbedding is accepted for interface parity with
// packed-SIMD implementations but has no effect here: this
// implementation represents subcube lanes as plain []field.Element
// slices (see DESIGN.md), so there is no sub-element packing width to
// account for.
func (d *Dense) SubcubeEvals(subcubeVars, subcubeIndex, logEmbedding int, dst []field.Element) error {
	want := 1 << uint(subcubeVars)
	if len(dst) != want {
		return fmt.Errorf("polynomial: subcube_evals: %w (want %d, got %d)", ErrIncorrectDestSliceLengths, want, len(dst))
	}
	offset := subcubeIndex << uint(subcubeVars)
	if offset+want > len(d.evals) {
		return fmt.Errorf("polynomial: subcube_evals: %w (offset %d, width %d, table %d)", ErrSubcubeOutOfRange, offset, want, len(d.evals))
	}
	copy(dst, d.evals[offset:offset+want])
	return nil
}

// SubcubePartialLowEvals contracts the lowest r = log2(len(query))
// variables of the multilinear against the tensor-expanded query,
// leaving a multilinear of n-r variables, and writes the requested
// subcube of that projection into dst.
//
//	projected[y] = Σ_{x in {0,1}^r} query[x] * evals[(y<<r)|x]
func (d *Dense) SubcubePartialLowEvals(query []field.Element, subcubeVars, subcubeIndex int, dst []field.Element) error {
	r, err := tensorArity(query, d.NVars())
	if err != nil {
		return err
	}
	want := 1 << uint(subcubeVars)
	if len(dst) != want {
		return fmt.Errorf("polynomial: subcube_partial_low_evals: %w (want %d, got %d)", ErrIncorrectDestSliceLengths, want, len(dst))
	}
	remaining := d.NVars() - r
	base := subcubeIndex << uint(subcubeVars)
	if base+want > 1<<uint(remaining) {
		return fmt.Errorf("polynomial: subcube_partial_low_evals: %w", ErrSubcubeOutOfRange)
	}
	qlen := len(query)
	for y := 0; y < want; y++ {
		yy := base + y
		acc := field.Zero(d.level)
		for x := 0; x < qlen; x++ {
			acc = acc.Add(query[x].Mul(d.evals[(yy<<uint(r))|x]))
		}
		dst[y] = acc
	}
	return nil
}

// SubcubePartialHighEvals contracts the highest r = log2(len(query))
// variables of the multilinear against the tensor-expanded query,
// leaving a multilinear of n-r variables, and writes the requested
// subcube of that projection into dst.
//
//	projected[x] = Σ_{y in {0,1}^r} query[y] * evals[(y<<(n-r))|x]
func (d *Dense) SubcubePartialHighEvals(query []field.Element, subcubeVars, subcubeIndex int, dst []field.Element) error {
	r, err := tensorArity(query, d.NVars())
	if err != nil {
		return err
	}
	want := 1 << uint(subcubeVars)
	if len(dst) != want {
		return fmt.Errorf("polynomial: subcube_partial_high_evals: %w (want %d, got %d)", ErrIncorrectDestSliceLengths, want, len(dst))
	}
	remaining := d.NVars() - r
	shift := uint(remaining)
	base := subcubeIndex << uint(subcubeVars)
	if base+want > 1<<uint(remaining) {
		return fmt.Errorf("polynomial: subcube_partial_high_evals: %w", ErrSubcubeOutOfRange)
	}
	qlen := len(query)
	for x := 0; x < want; x++ {
		xx := base + x
		acc := field.Zero(d.level)
		for y := 0; y < qlen; y++ {
			acc = acc.Add(query[y].Mul(d.evals[(y<<shift)|xx]))
		}
		dst[x] = acc
	}
	return nil
}

func tensorArity(query []field.Element, nVars int) (int, error) {
	n := len(query)
	if n == 0 || (n&(n-1)) != 0 {
		return 0, fmt.Errorf("polynomial: tensor query: %w (length %d)", ErrTensorQueryLength, n)
	}
	r := bits.TrailingZeros(uint(n))
	if r > nVars {
		return 0, fmt.Errorf("polynomial: tensor query: %w (arity %d exceeds n_vars %d)", ErrTensorQueryLength, r, nVars)
	}
	return r, nil
}

// TensorExpand computes the 2^r-entry tensor product ⊗(1-z_i, z_i) for
// a sequence of r challenge values, the standard representation of a
// partial hypercube assignment used to drive SubcubePartialLowEvals and
// SubcubePartialHighEvals.
func TensorExpand(level int, challenges []field.Element) []field.Element {
	out := []field.Element{field.One(level)}
	for _, z := range challenges {
		next := make([]field.Element, len(out)*2)
		oneMinusZ := field.One(level).Add(z)
		for i, v := range out {
			next[2*i] = v.Mul(oneMinusZ)
			next[2*i+1] = v.Mul(z)
		}
		out = next
	}
	return out
}
