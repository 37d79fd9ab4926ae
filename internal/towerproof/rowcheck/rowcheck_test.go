package rowcheck

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vybium/towerproof/internal/towerproof/builder"
	"github.com/vybium/towerproof/internal/towerproof/field"
)

const level = 3

// sumCheck asserts query[0] + query[1] == query[2] (characteristic 2,
// so + also plays the role of -), the minimal composition needed to
// exercise linear-combination resolution end to end.
type sumCheck struct{}

func (sumCheck) NVars() int          { return 3 }
func (sumCheck) Degree() int         { return 1 }
func (sumCheck) BinaryTowerLevel() int { return level }
func (sumCheck) Evaluate(query []field.Element) (field.Element, error) {
	return query[0].Add(query[1]).Add(query[2]), nil
}

// fixedValueCheck asserts query[0] == want.
type fixedValueCheck struct{ want field.Element }

func (fixedValueCheck) NVars() int          { return 1 }
func (fixedValueCheck) Degree() int         { return 1 }
func (fixedValueCheck) BinaryTowerLevel() int { return level }
func (f fixedValueCheck) Evaluate(query []field.Element) (field.Element, error) {
	return query[0].Add(f.want), nil
}

func buildSumSystem(t *testing.T) (*builder.ConstraintSystem, builder.OracleID, builder.OracleID) {
	t.Helper()
	b := builder.New()
	a, err := b.AddCommitted("a", 2, level)
	require.NoError(t, err)
	c, err := b.AddCommitted("c", 2, level)
	require.NoError(t, err)
	sum, err := b.AddLinearCombination("sum", 2, level, []builder.LinearTerm{
		{Oracle: a, Coeff: field.One(level)},
		{Oracle: c, Coeff: field.One(level)},
	}, field.Zero(level))
	require.NoError(t, err)
	require.NoError(t, b.AssertZero("a_plus_c_minus_sum", []builder.OracleID{a, c, sum}, sumCheck{}))
	return b.Compile(), a, c
}

func TestCheckRowAcceptsConsistentRow(t *testing.T) {
	cs, a, c := buildSumSystem(t)
	values := map[builder.OracleID]field.Element{
		a: field.FromUint64(level, 3),
		c: field.FromUint64(level, 5),
	}
	lookup := func(id builder.OracleID) (field.Element, error) { return values[id], nil }
	require.NoError(t, CheckRow(cs, lookup))
}

func TestCheckRowRejectsViolatedConstraint(t *testing.T) {
	b := builder.New()
	a, err := b.AddCommitted("a", 2, level)
	require.NoError(t, err)
	require.NoError(t, b.AssertZero("a_is_seven", []builder.OracleID{a}, fixedValueCheck{want: field.FromUint64(level, 7)}))
	cs := b.Compile()

	lookup := func(id builder.OracleID) (field.Element, error) { return field.FromUint64(level, 9), nil }
	err = CheckRow(cs, lookup)
	require.Error(t, err)
	var violation *ConstraintViolationError
	require.ErrorAs(t, err, &violation)
}

func TestCommittedOracleIDsExcludesDerived(t *testing.T) {
	cs, a, c := buildSumSystem(t)
	ids := CommittedOracleIDs(cs)
	require.ElementsMatch(t, []builder.OracleID{a, c}, ids)
}
