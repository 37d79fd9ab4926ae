// Package domain implements evaluation-domain construction and
// barycentric extrapolation (spec §4.D): the points a sumcheck round's
// finite evaluation indices are defined over, their barycentric
// weights, and the inverse-Vandermonde machinery used to convert
// pointwise evaluations back to monomial coefficients.
package domain

import (
	"fmt"

	"github.com/vybium/towerproof/internal/towerproof/field"
)

// EvaluationDomain is a set of distinct points at a fixed tower level,
// together with their precomputed barycentric weights.
type EvaluationDomain struct {
	level   int
	points  []field.Element
	weights []field.Element
}

// FromPoints builds an EvaluationDomain from an explicit point set,
// failing with ErrDuplicateDomainPoint if any two points coincide.
func FromPoints(level int, points []field.Element) (*EvaluationDomain, error) {
	for i, p := range points {
		if p.Level() != level {
			return nil, fmt.Errorf("domain: point %d at level %d, expected %d", i, p.Level(), level)
		}
	}
	weights, err := computeBarycentricWeights(level, points)
	if err != nil {
		return nil, err
	}
	cp := make([]field.Element, len(points))
	copy(cp, points)
	return &EvaluationDomain{level: level, points: cp, weights: weights}, nil
}

// MakeEvaluationPoints returns the first n forward successors of zero
// in the tower's additive order: 0, 1, 2, ... represented as field
// elements, the default evaluation-domain point set (spec §4.D).
// Fails with ErrDomainSizeTooLarge if the field does not have n
// distinct elements.
func MakeEvaluationPoints(level, n int) ([]field.Element, error) {
	max := 1 << uint(field.BitWidth(level))
	// BitWidth can already exceed the platform int width for level>=6;
	// guard the shift rather than let it silently wrap.
	if field.BitWidth(level) >= 31 {
		max = 1 << 30 // field is astronomically larger than any real n
	}
	if n > max {
		return nil, fmt.Errorf("domain: make_evaluation_points: %w (want %d, field has %d elements)", ErrDomainSizeTooLarge, n, max)
	}
	out := make([]field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = field.FromUint64(level, uint64(i))
	}
	return out, nil
}

// New builds an EvaluationDomain of size n using MakeEvaluationPoints.
func New(level, n int) (*EvaluationDomain, error) {
	points, err := MakeEvaluationPoints(level, n)
	if err != nil {
		return nil, err
	}
	return FromPoints(level, points)
}

// Size returns the number of points in the domain.
func (d *EvaluationDomain) Size() int {
	return len(d.points)
}

// Points returns the domain's points (not a copy; callers must not mutate).
func (d *EvaluationDomain) Points() []field.Element {
	return d.points
}

func computeBarycentricWeights(level int, points []field.Element) ([]field.Element, error) {
	n := len(points)
	weights := make([]field.Element, n)
	for i := 0; i < n; i++ {
		prod := field.One(level)
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			diff := points[i].Add(points[j])
			if diff.IsZero() {
				return nil, fmt.Errorf("domain: %w (points %d and %d coincide)", ErrDuplicateDomainPoint, i, j)
			}
			prod = prod.Mul(diff)
		}
		weights[i] = prod.InvertOrZero()
	}
	return weights, nil
}

// Extrapolate evaluates the unique degree-<n polynomial through
// (points[i], values[i]) at x, using the second-form barycentric
// accumulation: a running product of (x - points[i]) and a running
// evaluation that folds in each term before multiplying the product
// forward, avoiding a separate weight-sum division pass.
func (d *EvaluationDomain) Extrapolate(values []field.Element, x field.Element) (field.Element, error) {
	if len(values) != len(d.points) {
		return field.Element{}, fmt.Errorf("domain: extrapolate: %d values for a %d-point domain", len(values), len(d.points))
	}
	eval := field.Zero(d.level)
	termsPartialProd := field.One(d.level)
	for i := range d.points {
		term := x.Add(d.points[i])
		eval = eval.Mul(term).Add(values[i].Mul(d.weights[i]).Mul(termsPartialProd))
		termsPartialProd = termsPartialProd.Mul(term)
	}
	return eval, nil
}

// ExtrapolateLine evaluates the unique line through (0, x0) and (1, x1)
// at z: x0 + z*(x1-x0). This is the degenerate two-point case used
// directly by the sumcheck engine's linear-interpolation step for
// eval_point_index >= 3 when the domain point is at a subfield level.
func ExtrapolateLine(x0, x1, z field.Element) field.Element {
	return x0.Add(x1.Add(x0).Mul(z))
}

// EvaluateUnivariate evaluates a polynomial given in monomial
// coefficient order (coeffs[0] is the constant term) at x via Horner's
// method.
func EvaluateUnivariate(coeffs []field.Element, x field.Element) field.Element {
	if len(coeffs) == 0 {
		return field.Zero(x.Level())
	}
	acc := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		acc = acc.Mul(x).Add(coeffs[i])
	}
	return acc
}
