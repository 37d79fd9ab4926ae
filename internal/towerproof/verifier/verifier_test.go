package verifier

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vybium/towerproof/internal/towerproof/builder"
	"github.com/vybium/towerproof/internal/towerproof/config"
	"github.com/vybium/towerproof/internal/towerproof/field"
	"github.com/vybium/towerproof/internal/towerproof/prover"
	"github.com/vybium/towerproof/internal/towerproof/witness"
)

const testLevel = 3

// computedCheck mirrors prover's test fixture: computed == (c1+c2)*c1*10 + 1.
type computedCheck struct{}

func (computedCheck) NVars() int           { return 3 }
func (computedCheck) Degree() int          { return 2 }
func (computedCheck) BinaryTowerLevel() int { return testLevel }
func (computedCheck) Evaluate(query []field.Element) (field.Element, error) {
	ten := field.FromUint64(testLevel, 10)
	one := field.One(testLevel)
	want := query[1].Add(query[2]).Mul(query[1]).Mul(ten).Add(one)
	return query[0].Add(want), nil
}

func buildComputedColumnScenario(t *testing.T) (*builder.ConstraintSystem, *witness.Index) {
	t.Helper()
	const rows = 8
	b := builder.New()
	c1, err := b.AddCommitted("committed_1", 3, testLevel)
	require.NoError(t, err)
	c2, err := b.AddCommitted("committed_2", 3, testLevel)
	require.NoError(t, err)
	computed, err := b.AddCommitted("computed", 3, testLevel)
	require.NoError(t, err)
	require.NoError(t, b.AssertZero("computed_check", []builder.OracleID{computed, c1, c2}, computedCheck{}))
	cs := b.Compile()

	c1Data := make([]field.Element, rows)
	c2Data := make([]field.Element, rows)
	computedData := make([]field.Element, rows)
	ten := field.FromUint64(testLevel, 10)
	one := field.One(testLevel)
	for i := 0; i < rows; i++ {
		c1Data[i] = field.FromUint64(testLevel, uint64(i))
		c2Data[i] = field.FromUint64(testLevel, uint64(i+10))
		computedData[i] = c1Data[i].Add(c2Data[i]).Mul(c1Data[i]).Mul(ten).Add(one)
	}

	ws := witness.New()
	require.NoError(t, ws.SetOwned([]witness.Entry{
		{OracleID: int(c1), Level: testLevel, Data: c1Data},
		{OracleID: int(c2), Level: testLevel, Data: c2Data},
		{OracleID: int(computed), Level: testLevel, Data: computedData},
	}))
	return cs, ws
}

func testConfig() *config.Config {
	return config.DefaultConfig().WithSecurityBits(30).WithLogInvRate(1)
}

// TestProveVerifyRoundTrip is spec.md's property 12 direct path: an
// honestly generated proof of the computed-column scenario verifies.
func TestProveVerifyRoundTrip(t *testing.T) {
	cs, ws := buildComputedColumnScenario(t)
	p, err := prover.Prove(cs, ws, testConfig())
	require.NoError(t, err)
	require.NoError(t, Verify(cs, p, testConfig()))
}

func TestVerifyRejectsTamperedRoot(t *testing.T) {
	cs, ws := buildComputedColumnScenario(t)
	p, err := prover.Prove(cs, ws, testConfig())
	require.NoError(t, err)
	p.Root[0] ^= 0xff
	require.Error(t, Verify(cs, p, testConfig()))
}

func TestVerifyRejectsTamperedOpenedRow(t *testing.T) {
	cs, ws := buildComputedColumnScenario(t)
	p, err := prover.Prove(cs, ws, testConfig())
	require.NoError(t, err)
	p.OpenedRows[0][0] = p.OpenedRows[0][0].Add(field.One(testLevel))
	require.Error(t, Verify(cs, p, testConfig()))
}

func TestVerifyRejectsTamperedMerkleProof(t *testing.T) {
	cs, ws := buildComputedColumnScenario(t)
	p, err := prover.Prove(cs, ws, testConfig())
	require.NoError(t, err)
	require.NotEmpty(t, p.OpenedProofs[0])
	p.OpenedProofs[0][0].Hash[0] ^= 0xff
	require.Error(t, Verify(cs, p, testConfig()))
}

func TestVerifyRejectsTamperedQueryIndices(t *testing.T) {
	cs, ws := buildComputedColumnScenario(t)
	p, err := prover.Prove(cs, ws, testConfig())
	require.NoError(t, err)
	p.QueryIndices[0] = (p.QueryIndices[0] + 1) % (1 << uint(p.LogSize))
	require.Error(t, Verify(cs, p, testConfig()))
}

func TestVerifyRejectsTamperedExtendedCodeword(t *testing.T) {
	cs, ws := buildComputedColumnScenario(t)
	p, err := prover.Prove(cs, ws, testConfig())
	require.NoError(t, err)
	p.ExtendedCodewords[0][len(p.ExtendedCodewords[0])-1] = p.ExtendedCodewords[0][len(p.ExtendedCodewords[0])-1].Add(field.One(testLevel))
	require.Error(t, Verify(cs, p, testConfig()))
}
