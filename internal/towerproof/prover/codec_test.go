package prover

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProofMarshalRoundTrip(t *testing.T) {
	cs, ws := buildComputedColumnScenario(t)
	p, err := Prove(cs, ws, testConfig())
	require.NoError(t, err)

	data, err := p.MarshalBinary()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	var p2 Proof
	require.NoError(t, p2.UnmarshalBinary(data))

	require.Equal(t, p.LogSize, p2.LogSize)
	require.Equal(t, p.CommittedIDs, p2.CommittedIDs)
	require.Equal(t, p.Root, p2.Root)
	require.Equal(t, p.QueryIndices, p2.QueryIndices)
	require.Equal(t, p.ExtendedDomainSize, p2.ExtendedDomainSize)
	require.Len(t, p2.OpenedRows, len(p.OpenedRows))
	for i := range p.OpenedRows {
		for j := range p.OpenedRows[i] {
			require.True(t, p.OpenedRows[i][j].Equal(p2.OpenedRows[i][j]))
		}
	}
	for i := range p.ExtendedCodewords {
		for j := range p.ExtendedCodewords[i] {
			require.True(t, p.ExtendedCodewords[i][j].Equal(p2.ExtendedCodewords[i][j]))
		}
	}
}
