package domain

import (
	"fmt"

	"github.com/vybium/towerproof/internal/towerproof/field"
)

// InterpolationDomain wraps an EvaluationDomain with its inverted
// Vandermonde matrix, precomputed once, so repeated eval-table ->
// monomial-coefficient conversions are a single matrix-vector product
// rather than a fresh O(n^3) solve each time (spec §4.D).
type InterpolationDomain struct {
	domain    *EvaluationDomain
	vInverse  [][]field.Element // n x n, row-major
	level     int
}

// NewInterpolationDomain builds the inverse Vandermonde matrix for the
// domain's points: V[i][j] = points[i]^j, so that
// evals = V * coeffs  <=>  coeffs = V^-1 * evals.
func NewInterpolationDomain(d *EvaluationDomain) (*InterpolationDomain, error) {
	n := d.Size()
	level := d.level
	v := make([][]field.Element, n)
	for i := 0; i < n; i++ {
		row := make([]field.Element, n)
		acc := field.One(level)
		for j := 0; j < n; j++ {
			row[j] = acc
			acc = acc.Mul(d.points[i])
		}
		v[i] = row
	}
	inv, err := invertMatrix(level, v)
	if err != nil {
		return nil, err
	}
	return &InterpolationDomain{domain: d, vInverse: inv, level: level}, nil
}

// Interpolate converts a table of evaluations on the domain's points
// into the unique degree-<n polynomial's monomial coefficients.
func (id *InterpolationDomain) Interpolate(evals []field.Element) ([]field.Element, error) {
	n := len(id.vInverse)
	if len(evals) != n {
		return nil, fmt.Errorf("domain: interpolate: %d evals for a %d-point domain", len(evals), n)
	}
	coeffs := make([]field.Element, n)
	for i := 0; i < n; i++ {
		acc := field.Zero(id.level)
		for j := 0; j < n; j++ {
			acc = acc.Add(id.vInverse[i][j].Mul(evals[j]))
		}
		coeffs[i] = acc
	}
	return coeffs, nil
}

// invertMatrix inverts an n x n matrix over the tower field via
// Gauss-Jordan elimination with XOR row addition and field-multiply
// scaling; characteristic 2 means "subtract" is "add" throughout.
func invertMatrix(level int, m [][]field.Element) ([][]field.Element, error) {
	n := len(m)
	aug := make([][]field.Element, n)
	for i := 0; i < n; i++ {
		row := make([]field.Element, 2*n)
		for k := range row {
			row[k] = field.Zero(level)
		}
		copy(row, m[i])
		row[n+i] = field.One(level)
		aug[i] = row
	}

	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			if !aug[row][col].IsZero() {
				pivot = row
				break
			}
		}
		if pivot == -1 {
			return nil, ErrSingularVandermonde
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		invPivot := aug[col][col].InvertOrZero()
		for k := 0; k < 2*n; k++ {
			aug[col][k] = aug[col][k].Mul(invPivot)
		}

		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := aug[row][col]
			if factor.IsZero() {
				continue
			}
			for k := 0; k < 2*n; k++ {
				aug[row][k] = aug[row][k].Add(aug[col][k].Mul(factor))
			}
		}
	}

	inv := make([][]field.Element, n)
	for i := 0; i < n; i++ {
		inv[i] = make([]field.Element, n)
		copy(inv[i], aug[i][n:])
	}
	return inv, nil
}
