package transcript

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vybium/towerproof/internal/towerproof/field"
)

func TestSameAppendsYieldSameChallenge(t *testing.T) {
	t1 := New("test")
	t1.Append("msg", []byte("hello"))
	c1 := t1.SampleChallenge(5)

	t2 := New("test")
	t2.Append("msg", []byte("hello"))
	c2 := t2.SampleChallenge(5)

	require.True(t, c1.Equal(c2))
}

func TestDifferentDomainsDiverge(t *testing.T) {
	t1 := New("protocol-a")
	t2 := New("protocol-b")
	require.NotEqual(t, t1.State(), t2.State())
}

func TestConsecutiveChallengesDiffer(t *testing.T) {
	tr := New("test")
	c1 := tr.SampleChallenge(5)
	c2 := tr.SampleChallenge(5)
	require.False(t, c1.Equal(c2))
}

func TestAppendElementsChangesState(t *testing.T) {
	tr := New("test")
	before := tr.State()
	tr.AppendElements("row", []field.Element{field.FromUint64(3, 7)})
	require.NotEqual(t, before, tr.State())
}
