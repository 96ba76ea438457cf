package spork

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashMapAssocGetContains(t *testing.T) {
	m, err := NewHashMap("a", 1, "b", 2)
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	v, err := m.Get("a", nil)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	ok, err := m.Contains("b")
	require.NoError(t, err)
	require.True(t, ok)

	v, err = m.Get("missing", "default")
	require.NoError(t, err)
	require.Equal(t, "default", v)
}

func TestHashMapOddArityIsArityError(t *testing.T) {
	_, err := NewHashMap("a", 1, "b")
	require.ErrorIs(t, err, ErrArityError)
}

func TestHashMapMustGetMissingKey(t *testing.T) {
	m, err := NewHashMap("a", 1)
	require.NoError(t, err)
	_, err = m.MustGet("z")
	require.ErrorIs(t, err, ErrKeyMissing)
}

func TestHashMapAssocIsPersistent(t *testing.T) {
	m1, err := NewHashMap("a", 1)
	require.NoError(t, err)
	m2, err := m1.Assoc("b", 2)
	require.NoError(t, err)

	require.Equal(t, 1, m1.Len())
	require.Equal(t, 2, m2.Len())
	ok, err := m1.Contains("b")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashMapDissoc(t *testing.T) {
	m, err := NewHashMap("a", 1, "b", 2)
	require.NoError(t, err)
	m2, err := m.Dissoc("a")
	require.NoError(t, err)
	require.Equal(t, 1, m2.Len())
	ok, err := m2.Contains("a")
	require.NoError(t, err)
	require.False(t, ok)

	m3, err := m2.Dissoc("nope")
	require.NoError(t, err)
	require.Same(t, m2, m3)
}

func TestHashMapDissocToEmptyReturnsCanonicalEmpty(t *testing.T) {
	m, err := NewHashMap("a", 1)
	require.NoError(t, err)
	m2, err := m.Dissoc("a")
	require.NoError(t, err)
	require.Same(t, emptyHashMap, m2)
}

func TestHashMapEqualIgnoresOrder(t *testing.T) {
	a, err := NewHashMap("a", 1, "b", 2)
	require.NoError(t, err)
	b, err := NewHashMap("b", 2, "a", 1)
	require.NoError(t, err)
	c, err := NewHashMap("a", 1, "b", 3)
	require.NoError(t, err)

	eq, err := a.Equal(b)
	require.NoError(t, err)
	require.True(t, eq)

	eq, err = a.Equal(c)
	require.NoError(t, err)
	require.False(t, eq)
}

func TestHashMapHashIndependentOfInsertionOrder(t *testing.T) {
	a, err := NewHashMap("a", 1, "b", 2, "c", 3)
	require.NoError(t, err)
	b, err := NewHashMap("c", 3, "b", 2, "a", 1)
	require.NoError(t, err)

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	require.Equal(t, ha, hb)
}

func TestHashMapMergeRightOperandWins(t *testing.T) {
	m, err := NewHashMap("a", 1, "b", 2)
	require.NoError(t, err)
	merged, err := m.Merge(map[any]any{"b": 20, "c": 3})
	require.NoError(t, err)

	require.Equal(t, 3, merged.Len())
	v, err := merged.Get("b", nil)
	require.NoError(t, err)
	require.Equal(t, 20, v)

	// m itself is untouched.
	v, err = m.Get("b", nil)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestHashMapIterateItemsKeysValues(t *testing.T) {
	m, err := NewHashMap("a", 1, "b", 2, "c", 3)
	require.NoError(t, err)

	seen := map[any]any{}
	it := m.IterateItems()
	for {
		k, v, ok := it.NextItem()
		if !ok {
			break
		}
		seen[k] = v
	}
	require.Equal(t, map[any]any{"a": 1, "b": 2, "c": 3}, seen)

	var keys []any
	ki := m.IterateKeys()
	for {
		k, ok := ki.Next()
		if !ok {
			break
		}
		keys = append(keys, k)
	}
	require.ElementsMatch(t, []any{"a", "b", "c"}, keys)
}

func TestHashMapTransientRoundTrip(t *testing.T) {
	m, err := NewHashMap("a", 1)
	require.NoError(t, err)
	tr := m.ToTransient()

	_, err = tr.AssocMut("b", 2)
	require.NoError(t, err)
	_, err = tr.DissocMut("a")
	require.NoError(t, err)

	built, err := tr.Persistent()
	require.NoError(t, err)
	require.Equal(t, 1, built.Len())
	v, err := built.Get("b", nil)
	require.NoError(t, err)
	require.Equal(t, 2, v)

	// m itself is untouched by transient mutation.
	require.Equal(t, 1, m.Len())

	_, err = tr.AssocMut("c", 3)
	require.ErrorIs(t, err, ErrUseAfterFreeze)
}

func TestHashMapManyEntriesSurviveHAMTPromotion(t *testing.T) {
	kvs := make([]any, 0, 64)
	for i := 0; i < 32; i++ {
		kvs = append(kvs, i, i*i)
	}
	m, err := NewHashMap(kvs...)
	require.NoError(t, err)
	require.Equal(t, 32, m.Len())
	for i := 0; i < 32; i++ {
		v, err := m.Get(i, nil)
		require.NoError(t, err)
		require.Equal(t, i*i, v)
	}
}
