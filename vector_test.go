package spork

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorConjAndGet(t *testing.T) {
	v := NewVector()
	for i := 0; i < 100; i++ {
		v = v.Conj(i)
	}
	require.Equal(t, 100, v.Len())
	for i := 0; i < 100; i++ {
		x, err := v.Get(i)
		require.NoError(t, err)
		require.Equal(t, i, x)
	}
}

func TestVectorGetOutOfRange(t *testing.T) {
	v := NewVector(1, 2, 3)
	_, err := v.Get(3)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = v.Get(-1)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestVectorPersistenceAcrossConj(t *testing.T) {
	v1 := NewVector(1, 2, 3)
	v2 := v1.Conj(4)

	require.Equal(t, 3, v1.Len())
	require.Equal(t, 4, v2.Len())
	x, err := v1.Get(2)
	require.NoError(t, err)
	require.Equal(t, 3, x)
}

func TestVectorAssoc(t *testing.T) {
	v := NewVector(1, 2, 3)
	v2, err := v.Assoc(1, 99)
	require.NoError(t, err)

	x, err := v.Get(1)
	require.NoError(t, err)
	require.Equal(t, 2, x)

	x, err = v2.Get(1)
	require.NoError(t, err)
	require.Equal(t, 99, x)
}

func TestVectorAssocAtLenAppends(t *testing.T) {
	v := NewVector(1, 2, 3)
	v2, err := v.Assoc(3, 4)
	require.NoError(t, err)
	require.Equal(t, 4, v2.Len())
}

func TestVectorAssocOutOfRange(t *testing.T) {
	v := NewVector(1, 2, 3)
	_, err := v.Assoc(10, 0)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestVectorPop(t *testing.T) {
	v := NewVector(1, 2, 3)
	v2, err := v.Pop()
	require.NoError(t, err)
	require.Equal(t, 2, v2.Len())
	require.Equal(t, 3, v.Len())

	x, err := v2.Get(1)
	require.NoError(t, err)
	require.Equal(t, 2, x)
}

func TestVectorPopEmpty(t *testing.T) {
	v := NewVector()
	_, err := v.Pop()
	require.ErrorIs(t, err, ErrEmpty)
}

func TestVectorIterateAndToSlice(t *testing.T) {
	v := NewVector(1, 2, 3, 4, 5)
	require.Equal(t, []any{1, 2, 3, 4, 5}, v.ToSlice())
}

func TestVectorEqualAndHash(t *testing.T) {
	a := NewVector(1, 2, 3)
	b := NewVector(1, 2, 3)
	c := NewVector(1, 2, 4)

	eq, err := a.Equal(b)
	require.NoError(t, err)
	require.True(t, eq)

	eq, err = a.Equal(c)
	require.NoError(t, err)
	require.False(t, eq)

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	require.Equal(t, ha, hb)
}

func TestVectorTransientRoundTrip(t *testing.T) {
	v := NewVector(1, 2, 3)
	tr := v.ToTransient()

	_, err := tr.ConjMut(4)
	require.NoError(t, err)
	_, err = tr.AssocMut(0, 100)
	require.NoError(t, err)

	built, err := tr.Persistent()
	require.NoError(t, err)
	require.Equal(t, 4, built.Len())
	x, err := built.Get(0)
	require.NoError(t, err)
	require.Equal(t, 100, x)

	// v is untouched by the transient's mutations.
	require.Equal(t, 3, v.Len())
	orig, err := v.Get(0)
	require.NoError(t, err)
	require.Equal(t, 1, orig)

	_, err = tr.ConjMut(5)
	require.ErrorIs(t, err, ErrUseAfterFreeze)
}
