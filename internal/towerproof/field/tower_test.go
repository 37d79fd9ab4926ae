package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddIsXor(t *testing.T) {
	a := FromUint64(3, 0xAB)
	b := FromUint64(3, 0x10)
	require.Equal(t, FromUint64(3, 0xAB^0x10), a.Add(b))
}

func TestAddSelfIsZero(t *testing.T) {
	a := FromUint64(4, 0xBEEF)
	require.True(t, a.Add(a).IsZero())
}

func TestMulZeroAndOne(t *testing.T) {
	for level := 0; level <= 4; level++ {
		a := FromUint64(level, uint64(1<<uint(BitWidth(level)-1))-1)
		require.True(t, a.Mul(Zero(level)).IsZero())
		require.True(t, a.Mul(One(level)).Equal(a))
	}
}

func TestMulCommutative(t *testing.T) {
	a := FromUint64(4, 0x1234)
	b := FromUint64(4, 0x5678)
	require.True(t, a.Mul(b).Equal(b.Mul(a)))
}

func TestMulDistributesOverAdd(t *testing.T) {
	a := FromUint64(4, 0x1234)
	b := FromUint64(4, 0x5678)
	c := FromUint64(4, 0x9abc)
	lhs := a.Mul(b.Add(c))
	rhs := a.Mul(b).Add(a.Mul(c))
	require.True(t, lhs.Equal(rhs))
}

func TestInvertOrZeroRoundTrip(t *testing.T) {
	for level := 0; level <= 5; level++ {
		a := FromUint64(level, 7)
		if a.IsZero() {
			continue
		}
		inv := a.InvertOrZero()
		require.True(t, a.Mul(inv).IsOne(), "level %d: a*inv should be 1", level)
	}
}

func TestInvertOrZeroOfZeroIsZero(t *testing.T) {
	require.True(t, Zero(5).InvertOrZero().IsZero())
}

func TestAESMulKnownVectors(t *testing.T) {
	// 0x53 * 0xCA = 0x01 is the textbook Rijndael MixColumns example.
	a := NewAES(0x53)
	b := NewAES(0xCA)
	require.Equal(t, byte(0x01), a.Mul(b).Byte())
}

func TestMulPrimitiveRejectsTooHighIndex(t *testing.T) {
	a := FromUint64(2, 3)
	_, err := a.MulPrimitive(2)
	require.Error(t, err)
}

func TestMulPrimitiveMatchesDirectMultiply(t *testing.T) {
	a := FromUint64(3, 0x42)
	got, err := a.MulPrimitive(1)
	require.NoError(t, err)
	primitive := New(3, new(big.Int).Lsh(big.NewInt(1), 2))
	require.True(t, got.Equal(a.Mul(primitive)))
}

func TestBitsDecomposition(t *testing.T) {
	a := FromUint64(3, 0b1011)
	bits := a.Bits()
	require.Len(t, bits, 8)
	require.True(t, bits[0].IsOne())
	require.True(t, bits[1].IsOne())
	require.True(t, bits[2].IsZero())
	require.True(t, bits[3].IsOne())
	for i := 4; i < 8; i++ {
		require.True(t, bits[i].IsZero())
	}
}

func TestAddPanicsOnLevelMismatch(t *testing.T) {
	require.Panics(t, func() {
		FromUint64(2, 1).Add(FromUint64(3, 1))
	})
}
