package witness

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vybium/towerproof/internal/towerproof/field"
)

func TestSetOwnedAndGet(t *testing.T) {
	idx := New()
	data := []field.Element{field.FromUint64(3, 1), field.FromUint64(3, 2), field.FromUint64(3, 3), field.FromUint64(3, 4)}
	err := idx.SetOwned([]Entry{{OracleID: 0, Level: 3, Data: data}})
	require.NoError(t, err)

	got, err := idx.Get(0, 3)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestSetOwnedRejectsDuplicateWithinBatch(t *testing.T) {
	idx := New()
	data := []field.Element{field.FromUint64(3, 1)}
	data = append(data, data...)
	err := idx.SetOwned([]Entry{{OracleID: 0, Level: 3, Data: data}, {OracleID: 0, Level: 3, Data: data}})
	require.Error(t, err)
}

func TestSetOwnedRejectsReinstall(t *testing.T) {
	idx := New()
	data := []field.Element{field.FromUint64(3, 1), field.FromUint64(3, 1)}
	require.NoError(t, idx.SetOwned([]Entry{{OracleID: 0, Level: 3, Data: data}}))
	err := idx.SetOwned([]Entry{{OracleID: 0, Level: 3, Data: data}})
	require.Error(t, err)
}

func TestSetOwnedRejectsNonPowerOfTwo(t *testing.T) {
	idx := New()
	data := []field.Element{field.FromUint64(3, 1), field.FromUint64(3, 2), field.FromUint64(3, 3)}
	err := idx.SetOwned([]Entry{{OracleID: 0, Level: 3, Data: data}})
	require.Error(t, err)
}

func TestGetTowerLevelMismatch(t *testing.T) {
	idx := New()
	data := []field.Element{field.FromUint64(3, 1), field.FromUint64(3, 2)}
	require.NoError(t, idx.SetOwned([]Entry{{OracleID: 0, Level: 3, Data: data}}))
	_, err := idx.Get(0, 4)
	require.Error(t, err)
}

func TestGetUnknownOracle(t *testing.T) {
	idx := New()
	_, err := idx.Get(5, 3)
	require.Error(t, err)
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	idx := New()
	data0 := []field.Element{field.FromUint64(3, 0xAB), field.FromUint64(3, 0xCD)}
	data1 := []field.Element{field.FromUint64(5, 123456789), field.FromUint64(5, 42)}
	require.NoError(t, idx.SetOwned([]Entry{
		{OracleID: 0, Level: 3, Data: data0},
		{OracleID: 1, Level: 5, Data: data1},
	}))

	bytes, err := idx.MarshalBinary()
	require.NoError(t, err)

	restored := New()
	require.NoError(t, restored.UnmarshalBinary(bytes))

	got0, err := restored.Get(0, 3)
	require.NoError(t, err)
	require.Equal(t, data0, got0)

	got1, err := restored.Get(1, 5)
	require.NoError(t, err)
	require.Equal(t, data1, got1)
}
