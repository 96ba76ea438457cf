package spork

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// collidingKey is a test-only key type whose hash ignores its payload,
// forcing every instance into the same HAMT slot chain regardless of
// shift level, so we can exercise the hash-collision node variant
// deterministically (spec §8 scenario 3).
type collidingKey struct {
	id int
}

func (k collidingKey) SporkHash() (uint64, error) {
	return 42, nil
}

func (k collidingKey) SporkEqual(other any) (bool, error) {
	ok, isKey := other.(collidingKey)
	if !isKey {
		return false, nil
	}
	return k.id == ok.id, nil
}

func TestHAMTBitmapNodeInsertAndFind(t *testing.T) {
	var n hamtNode = emptyBitmapNode
	var err error
	for i := 0; i < 10; i++ {
		n, _, err = n.assoc(0, uint64(i), i, i*10, nil)
		require.NoError(t, err)
	}
	for i := 0; i < 10; i++ {
		v, ok, err := n.find(0, uint64(i), i)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, i*10, v)
	}
	bm, ok := n.(*bitmapNode)
	require.True(t, ok)
	require.Len(t, bm.slots, 10)
}

func TestHAMTPromotesToArrayAndDemotesBack(t *testing.T) {
	var n hamtNode = emptyBitmapNode
	var err error
	// 17 entries, each hashed to land in a distinct slot 0..16 at shift 0.
	// The keys hash to i themselves, since promotion rehashes stored keys.
	keys := make([]distinctSlotKey, 17)
	for i := range keys {
		keys[i] = distinctSlotKey{id: fmt.Sprint(i), slot: uint32(i)}
	}
	for i := 0; i < 17; i++ {
		n, _, err = n.assoc(0, uint64(i), keys[i], i, nil)
		require.NoError(t, err)
	}
	_, isArray := n.(*arrayNode)
	require.True(t, isArray, "root should have promoted to an array node")

	for i := 0; i < 10; i++ {
		n, _, err = n.dissoc(0, uint64(i), keys[i], nil)
		require.NoError(t, err)
	}
	_, isBitmap := n.(*bitmapNode)
	require.True(t, isBitmap, "root should have demoted back to bitmap-indexed once child_count <= 8")

	for i := 10; i < 17; i++ {
		v, ok, err := n.find(0, uint64(i), keys[i])
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	for i := 0; i < 10; i++ {
		_, ok, err := n.find(0, uint64(i), keys[i])
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestHAMTCollisionNode(t *testing.T) {
	k1 := collidingKey{id: 1}
	k2 := collidingKey{id: 2}
	h, err := hashValue(k1)
	require.NoError(t, err)

	var n hamtNode = emptyBitmapNode
	n, added, err := n.assoc(0, h, k1, "v1", nil)
	require.NoError(t, err)
	require.True(t, added)
	n, added, err = n.assoc(0, h, k2, "v2", nil)
	require.NoError(t, err)
	require.True(t, added)

	// Both entries hash-collide, so somewhere in the tree is a collisionNode.
	var found bool
	var walk func(hamtNode)
	walk = func(x hamtNode) {
		switch v := x.(type) {
		case *collisionNode:
			found = true
		case *bitmapNode:
			for _, s := range v.slots {
				if s.child != nil {
					walk(s.child)
				}
			}
		case *arrayNode:
			for _, c := range v.children {
				if c != nil {
					walk(c)
				}
			}
		}
	}
	walk(n)
	require.True(t, found, "expected a collisionNode somewhere in the tree")

	v1, ok, err := n.find(0, h, k1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v1", v1)

	n, removed, err := n.dissoc(0, h, k1, nil)
	require.NoError(t, err)
	require.True(t, removed)

	v2, ok, err := n.find(0, h, k2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v2", v2)

	_, ok, err = n.find(0, h, k1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHAMTCreateNodeHelper(t *testing.T) {
	node, err := createNode(0, "a", 1, mustHash(t, "b"), "b", 2, nil)
	require.NoError(t, err)

	ha, _ := hashValue("a")
	v, ok, err := node.find(0, ha, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func mustHash(t *testing.T, v any) uint64 {
	t.Helper()
	h, err := hashValue(v)
	require.NoError(t, err)
	return h
}

func TestHAMTAssocNoOpReturnsSameNode(t *testing.T) {
	var n hamtNode = emptyBitmapNode
	n, _, err := n.assoc(0, 1, "a", "v", nil)
	require.NoError(t, err)

	n2, added, err := n.assoc(0, 1, "a", "v", nil)
	require.NoError(t, err)
	require.False(t, added)
	require.Equal(t, fmt.Sprintf("%p", n), fmt.Sprintf("%p", n2))
}
