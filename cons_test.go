package spork

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsPrependAndLen(t *testing.T) {
	var c *Cons
	require.Equal(t, 0, c.Len())

	c = c.Prepend(3)
	c = c.Prepend(2)
	c = c.Prepend(1)
	require.Equal(t, 3, c.Len())
	require.Equal(t, []any{1, 2, 3}, c.ToSlice())
}

func TestConsPrependLeavesSourceUnchanged(t *testing.T) {
	base := NewCons(2, nil)
	grown := base.Prepend(1)

	require.Equal(t, 1, base.Len())
	require.Equal(t, 2, grown.Len())
	first, ok := base.First()
	require.True(t, ok)
	require.Equal(t, 2, first)
}

func TestConsEqual(t *testing.T) {
	a := NewCons(1, NewCons(2, NewCons(3, nil)))
	b := NewCons(1, NewCons(2, NewCons(3, nil)))
	c := NewCons(1, NewCons(2, nil))

	eq, err := a.Equal(b)
	require.NoError(t, err)
	require.True(t, eq)

	eq, err = a.Equal(c)
	require.NoError(t, err)
	require.False(t, eq)
}

func TestConsHashMemoizedAndOrderSensitive(t *testing.T) {
	a := NewCons(1, NewCons(2, nil))
	b := NewCons(2, NewCons(1, nil))

	ha, err := a.Hash()
	require.NoError(t, err)
	ha2, err := a.Hash()
	require.NoError(t, err)
	require.Equal(t, ha, ha2)

	hb, err := b.Hash()
	require.NoError(t, err)
	require.NotEqual(t, ha, hb)
}

func TestConsIterateIsSinglePass(t *testing.T) {
	c := NewCons(1, NewCons(2, NewCons(3, nil)))
	it := c.Iterate()

	var got []any
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, []any{1, 2, 3}, got)

	_, ok := it.Next()
	require.False(t, ok)
}
