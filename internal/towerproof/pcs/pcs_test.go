package pcs

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vybium/towerproof/internal/towerproof/domain"
	"github.com/vybium/towerproof/internal/towerproof/field"
)

func TestMerkleOpeningRoundTrip(t *testing.T) {
	level := 3
	rows := [][]byte{
		EncodeRow([]field.Element{field.FromUint64(level, 1)}),
		EncodeRow([]field.Element{field.FromUint64(level, 2)}),
		EncodeRow([]field.Element{field.FromUint64(level, 3)}),
		EncodeRow([]field.Element{field.FromUint64(level, 4)}),
	}
	tree, err := NewMerkleTree(rows)
	require.NoError(t, err)

	for i, row := range rows {
		proof, err := tree.Open(i)
		require.NoError(t, err)
		require.True(t, VerifyOpening(tree.Root(), row, proof))
	}
}

func TestMerkleOpeningRejectsTamperedLeaf(t *testing.T) {
	level := 3
	rows := [][]byte{
		EncodeRow([]field.Element{field.FromUint64(level, 1)}),
		EncodeRow([]field.Element{field.FromUint64(level, 2)}),
	}
	tree, err := NewMerkleTree(rows)
	require.NoError(t, err)

	proof, err := tree.Open(0)
	require.NoError(t, err)
	require.False(t, VerifyOpening(tree.Root(), rows[1], proof))
}

func TestCheckLowDegreeAcceptsLowDegreeCodeword(t *testing.T) {
	level := 3
	d, err := domain.New(level, 4)
	require.NoError(t, err)
	// f(x) = 1 + x, degree 1, well within a rate-1/2 (logInvRate=1) bound of 2.
	coeffs := []field.Element{field.FromUint64(level, 1), field.FromUint64(level, 1), field.Zero(level), field.Zero(level)}
	codeword := make([]field.Element, d.Size())
	for i, p := range d.Points() {
		codeword[i] = domain.EvaluateUnivariate(coeffs, p)
	}
	ok, err := CheckLowDegree(d, codeword, 1)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestCheckLowDegreeRejectsHighDegreeCodeword(t *testing.T) {
	level := 3
	d, err := domain.New(level, 4)
	require.NoError(t, err)
	coeffs := []field.Element{field.FromUint64(level, 1), field.Zero(level), field.Zero(level), field.FromUint64(level, 1)}
	codeword := make([]field.Element, d.Size())
	for i, p := range d.Points() {
		codeword[i] = domain.EvaluateUnivariate(coeffs, p)
	}
	ok, err := CheckLowDegree(d, codeword, 1)
	require.NoError(t, err)
	require.False(t, ok)
}
