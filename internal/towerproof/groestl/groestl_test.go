package groestl

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vybium/towerproof/internal/towerproof/builder"
	"github.com/vybium/towerproof/internal/towerproof/field"
	"github.com/vybium/towerproof/internal/towerproof/witness"
)

func TestPermuteIsDeterministicAndChangesState(t *testing.T) {
	var s State
	for i := range s {
		s[i] = byte(i)
	}
	out1 := Permute(s)
	out2 := Permute(s)
	require.Equal(t, out1, out2)
	require.NotEqual(t, s, out1)
}

func TestSBoxTableMatchesAffineOfInverse(t *testing.T) {
	for x := 0; x < 256; x++ {
		inv := aesByte(byte(x)).InvertOrZero()
		bits := inv.Byte()
		var acc byte
		for b := 0; b < 8; b++ {
			if (bits>>uint(b))&1 == 1 {
				acc ^= sBoxMatrix[b]
			}
		}
		acc ^= sBoxVec
		require.Equalf(t, sBoxTable[x], acc, "byte %d", x)
	}
}

// evalComposition is the widened interface the test needs to invoke a
// constraint's composition; builder.CompositionLike deliberately omits
// Evaluate to stay decoupled from the composition package.
type evalComposition interface {
	Evaluate(query []field.Element) (field.Element, error)
}

func TestBuiltCircuitIsSatisfiedByGeneratedWitness(t *testing.T) {
	b := builder.New()
	oracles, err := BuildPermutation(b, 0)
	require.NoError(t, err)

	var in State
	for i := range in {
		in[i] = byte(37*i + 11)
	}

	entries, err := GenerateWitness(oracles, []State{in})
	require.NoError(t, err)

	idx := witness.New()
	require.NoError(t, idx.SetOwned(entries))

	cs := b.Compile()

	var resolve func(id builder.OracleID) field.Element
	resolve = func(id builder.OracleID) field.Element {
		o := cs.Oracles[id]
		switch o.Kind {
		case builder.KindCommitted:
			data, err := idx.Get(int(id), o.Level)
			require.NoError(t, err)
			return data[0]
		case builder.KindTransparent:
			return o.TransparentValue
		case builder.KindLinearCombination:
			acc := o.Offset
			for _, term := range o.Terms {
				acc = acc.Add(resolve(term.Oracle).Mul(term.Coeff))
			}
			return acc
		default:
			t.Fatalf("unexpected oracle kind %v in groestl circuit", o.Kind)
			return field.Element{}
		}
	}

	for _, c := range cs.Constraints {
		comp, ok := c.Composition.(evalComposition)
		require.True(t, ok, "constraint %s composition must expose Evaluate", c.Name)
		query := make([]field.Element, len(c.OracleIDs))
		for i, id := range c.OracleIDs {
			query[i] = resolve(id)
		}
		v, err := comp.Evaluate(query)
		require.NoError(t, err)
		require.Truef(t, v.IsZero(), "constraint %s did not vanish: %s", c.Name, v)
	}

	want := Permute(in)
	for i := 0; i < StateSize; i++ {
		require.Equal(t, want[i], resolve(oracles.Output[i]).Byte(), "output byte %d", i)
	}
}
