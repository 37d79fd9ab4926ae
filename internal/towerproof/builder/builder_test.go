package builder

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vybium/towerproof/internal/towerproof/field"
)

type fakeComposition struct {
	nVars, degree, level int
}

func (f fakeComposition) NVars() int            { return f.nVars }
func (f fakeComposition) Degree() int           { return f.degree }
func (f fakeComposition) BinaryTowerLevel() int  { return f.level }

func TestAddCommittedMultipleAssignsSequentialIDs(t *testing.T) {
	b := New()
	ids, err := b.AddCommittedMultiple("col", 3, 3, 4)
	require.NoError(t, err)
	require.Equal(t, []OracleID{0, 1, 2, 3}, ids)
}

func TestAddLinearCombinationLogSizeMismatch(t *testing.T) {
	b := New()
	a, err := b.AddCommitted("a", 3, 3)
	require.NoError(t, err)
	_, err = b.AddLinearCombination("lc", 4, 3, []LinearTerm{{Oracle: a, Coeff: field.One(3)}}, field.Zero(3))
	require.Error(t, err)
	var lsErr *LogSizeMismatchError
	require.ErrorAs(t, err, &lsErr)
}

func TestAddLinearCombinationTowerLevelMismatch(t *testing.T) {
	b := New()
	a, err := b.AddCommitted("a", 3, 3)
	require.NoError(t, err)
	_, err = b.AddLinearCombination("lc", 3, 4, []LinearTerm{{Oracle: a, Coeff: field.One(4)}}, field.Zero(4))
	require.Error(t, err)
	var tlErr *TowerLevelMismatchError
	require.ErrorAs(t, err, &tlErr)
}

func TestAssertZeroArityMismatch(t *testing.T) {
	b := New()
	a, err := b.AddCommitted("a", 3, 3)
	require.NoError(t, err)
	err = b.AssertZero("c", []OracleID{a}, fakeComposition{nVars: 2})
	require.Error(t, err)
	var amErr *ArityMismatchError
	require.ErrorAs(t, err, &amErr)
}

func TestCompileSnapshotsTopology(t *testing.T) {
	b := New()
	a, err := b.AddCommitted("a", 3, 3)
	require.NoError(t, err)
	c, err := b.AddCommitted("b", 3, 3)
	require.NoError(t, err)
	err = b.AssertZero("eq", []OracleID{a, c}, fakeComposition{nVars: 2})
	require.NoError(t, err)

	cs := b.Compile()
	require.Len(t, cs.Oracles, 2)
	require.Len(t, cs.Constraints, 1)

	// Mutating the builder further must not affect the already-compiled snapshot.
	_, err = b.AddCommitted("c", 3, 3)
	require.NoError(t, err)
	require.Len(t, cs.Oracles, 2)
}

func TestAssertZeroStampsMaxOfLevelsOnConstraint(t *testing.T) {
	b := New()
	a, err := b.AddCommitted("a", 3, 1)
	require.NoError(t, err)
	c, err := b.AddCommitted("b", 3, 5)
	require.NoError(t, err)
	err = b.AssertZero("eq", []OracleID{a, c}, fakeComposition{nVars: 2, level: 3})
	require.NoError(t, err)

	cs := b.Compile()
	require.Equal(t, 5, cs.Constraints[0].Level)
}

func TestAssertZeroRejectsLogSizeMismatch(t *testing.T) {
	b := New()
	a, err := b.AddCommitted("a", 3, 3)
	require.NoError(t, err)
	c, err := b.AddCommitted("b", 4, 3)
	require.NoError(t, err)
	err = b.AssertZero("eq", []OracleID{a, c}, fakeComposition{nVars: 2})
	require.Error(t, err)
}

func TestNamespacePrefixesNames(t *testing.T) {
	b := New()
	b.PushNamespace("round0")
	id, err := b.AddCommitted("x", 3, 3)
	require.NoError(t, err)
	o, err := b.Oracle(id)
	require.NoError(t, err)
	require.Equal(t, "round0/x", o.Name)
	require.NoError(t, b.PopNamespace())
	require.Error(t, b.PopNamespace())
}

func TestCompositePolyOracleTowerLevelAllLevel1(t *testing.T) {
	inner := []Oracle{{Level: 1, LogSize: 3}, {Level: 1, LogSize: 3}}
	c, err := NewCompositePolyOracle(inner, fakeComposition{nVars: 2, level: 3})
	require.NoError(t, err)
	require.Equal(t, 3, c.BinaryTowerLevel())
}

func TestCompositePolyOracleTowerLevelMixed(t *testing.T) {
	inner := []Oracle{{Level: 1, LogSize: 3}, {Level: 3, LogSize: 3}, {Level: 5, LogSize: 3}}
	c, err := NewCompositePolyOracle(inner, fakeComposition{nVars: 3, level: 3})
	require.NoError(t, err)
	require.Equal(t, 5, c.BinaryTowerLevel())
}

func TestCompositePolyOracleRejectsLogSizeMismatch(t *testing.T) {
	inner := []Oracle{{Level: 1, LogSize: 3}, {Level: 1, LogSize: 4}}
	_, err := NewCompositePolyOracle(inner, fakeComposition{nVars: 2, level: 1})
	require.Error(t, err)
}

func TestCompositePolyOracleRejectsArityMismatch(t *testing.T) {
	inner := []Oracle{{Level: 1, LogSize: 3}}
	_, err := NewCompositePolyOracle(inner, fakeComposition{nVars: 2, level: 1})
	require.Error(t, err)
}
