package pcs

import (
	"fmt"

	"github.com/vybium/towerproof/internal/towerproof/domain"
	"github.com/vybium/towerproof/internal/towerproof/field"
)

// CheckLowDegree is a toy line-check standing in for a full FRI round
// trip: it interpolates codeword against d's points into monomial
// coefficients and accepts iff every coefficient at or beyond the
// rate-bounded degree is zero, mirroring the teacher's
// BinaryAdditiveRSCode.IsInCode degree test without the recursive
// folding protocol a real FRI implementation would run.
//
// logInvRate is the code's log2(1/rate): a rate-1/2^logInvRate code
// over a domain of size N admits degree < N>>logInvRate polynomials.
func CheckLowDegree(d *domain.EvaluationDomain, codeword []field.Element, logInvRate int) (bool, error) {
	if len(codeword) != d.Size() {
		return false, fmt.Errorf("pcs: codeword length %d does not match domain size %d", len(codeword), d.Size())
	}
	id, err := domain.NewInterpolationDomain(d)
	if err != nil {
		return false, err
	}
	coeffs, err := id.Interpolate(codeword)
	if err != nil {
		return false, err
	}
	maxDegree := len(codeword) >> uint(logInvRate)
	for i := maxDegree; i < len(coeffs); i++ {
		if !coeffs[i].IsZero() {
			return false, nil
		}
	}
	return true, nil
}
