package composition

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vybium/towerproof/internal/towerproof/field"
)

// trivialPoly implements Poly directly as a small linear expression,
// for exercising IndexComposition's remap without pulling in MixColumn.
type trivialPoly struct {
	expr Expr
}

func (t trivialPoly) NVars() int            { return 2 }
func (t trivialPoly) Degree() int           { return 2 }
func (t trivialPoly) BinaryTowerLevel() int { return 3 }
func (t trivialPoly) Evaluate(query []field.Element) (field.Element, error) {
	if len(query) != 2 {
		return field.Element{}, &IncorrectQuerySizeError{Expected: 2, Got: len(query)}
	}
	return EvaluateExpr(t.expr, query), nil
}
func (t trivialPoly) Expression() Expr { return t.expr }

func TestEvaluateWrongArityReturnsIncorrectQuerySize(t *testing.T) {
	m := NewMixColumn()
	_, err := m.Evaluate([]field.Element{field.NewAES(1)})
	require.Error(t, err)
	var qerr *IncorrectQuerySizeError
	require.ErrorAs(t, err, &qerr)
	require.Equal(t, 9, qerr.Expected)
}

func TestIndexCompositionRemap(t *testing.T) {
	// Var(0)*(Var(1)+1)
	inner := trivialPoly{expr: Mul{Left: Var{Index: 0}, Right: Add{Left: Var{Index: 1}, Right: Const{Value: field.One(3)}}}}
	ic, err := NewIndexComposition(3, []int{1, 2}, inner)
	require.NoError(t, err)

	// expected: Var(1)*(Var(2)+1)
	want := Mul{Left: Var{Index: 1}, Right: Add{Left: Var{Index: 2}, Right: Const{Value: field.One(3)}}}
	require.True(t, ic.Expression().Equal(want))
}

func TestIndexCompositionOutOfBounds(t *testing.T) {
	inner := trivialPoly{expr: Var{Index: 0}}
	_, err := NewIndexComposition(2, []int{0, 5}, inner)
	require.Error(t, err)
}

func TestFromSubsetNotFound(t *testing.T) {
	inner := trivialPoly{expr: Var{Index: 0}}
	_, err := FromSubset([]int{10, 11}, []int{10, 99}, inner)
	require.Error(t, err)
}

func TestMixColumnZeroRow(t *testing.T) {
	m := NewMixColumn()
	query := make([]field.Element, 9)
	for i := range query {
		query[i] = field.NewAES(0)
	}
	got, err := m.Evaluate(query)
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestMixColumnFirstCirculantColumn(t *testing.T) {
	m := NewMixColumn()
	query := make([]field.Element, 9)
	for i := range query {
		query[i] = field.NewAES(0)
	}
	query[1] = field.NewAES(1)
	// output must equal MixBytesRow[0] = 0x02 for this to be a zero constraint
	query[0] = field.NewAES(0x02)
	got, err := m.Evaluate(query)
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestMixColumnNonzeroWhenWrong(t *testing.T) {
	m := NewMixColumn()
	query := make([]field.Element, 9)
	for i := range query {
		query[i] = field.NewAES(0)
	}
	query[1] = field.NewAES(1)
	query[0] = field.NewAES(0x03) // wrong output
	got, err := m.Evaluate(query)
	require.NoError(t, err)
	require.False(t, got.IsZero())
}

func sboxRef(x byte) byte {
	if x == 0 {
		return 0
	}
	inv := field.NewAES(x).InvertOrZero()
	return sboxAffine(inv.Byte())
}

// sboxAffine mirrors the S-box's affine transform for the spot check;
// the canonical table itself lives in the groestl package.
func sboxAffine(invByte byte) byte {
	b := invByte
	result := b
	for i := 1; i < 5; i++ {
		b = (b << 1) | (b >> 7)
		result ^= b
	}
	return result ^ 0x63
}

func TestSBoxConstraintZeroForValidInverse(t *testing.T) {
	s := NewSBoxConstraint()
	x := field.NewAES(0x53)
	inv := x.InvertOrZero()
	got, err := s.Evaluate([]field.Element{x, inv})
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestSBoxConstraintZeroForZeroInput(t *testing.T) {
	s := NewSBoxConstraint()
	x := field.NewAES(0)
	inv := field.NewAES(0)
	got, err := s.Evaluate([]field.Element{x, inv})
	require.NoError(t, err)
	require.True(t, got.IsZero())
}

func TestSBoxConstraintNonzeroForWrongInverse(t *testing.T) {
	s := NewSBoxConstraint()
	x := field.NewAES(0x53)
	wrongInv := field.NewAES(0x02) // not x^-1
	got, err := s.Evaluate([]field.Element{x, wrongInv})
	require.NoError(t, err)
	require.False(t, got.IsZero())
}
