package spork

import (
	"fmt"
	"sync"
)

// HashMap is a persistent hash-array-mapped trie over arbitrary hashable
// keys (spec §4.4–§4.4.5). A nil root denotes the empty map.
type HashMap struct {
	count int
	root  hamtNode // nil for the empty map

	hashOnce sync.Once
	hashVal  uint64
	hashErr  error
}

// canonical empty HashMap, returned by NewHashMap() and by any operation
// that reduces a HashMap to empty.
var emptyHashMap = &HashMap{}

// NewHashMap builds a HashMap from flattened key/value pairs. An odd
// number of arguments fails with ErrArityError.
func NewHashMap(kvs ...any) (*HashMap, error) {
	if len(kvs)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d arguments", ErrArityError, len(kvs))
	}
	m := emptyHashMap
	for i := 0; i < len(kvs); i += 2 {
		var err error
		m, err = m.Assoc(kvs[i], kvs[i+1])
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Len returns the number of entries in m.
func (m *HashMap) Len() int {
	if m == nil {
		return 0
	}
	return m.count
}

// Get returns the value for k, or def if k isn't present.
func (m *HashMap) Get(k, def any) (any, error) {
	if m == nil || m.root == nil {
		return def, nil
	}
	h, err := hashValue(k)
	if err != nil {
		return nil, err
	}
	v, ok, err := m.root.find(0, h, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// MustGet returns the value for k, or ErrKeyMissing if k isn't present
// (spec §7: "indexed map lookup (subscript form) with no default").
func (m *HashMap) MustGet(k any) (any, error) {
	if m == nil || m.root == nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyMissing, k)
	}
	h, err := hashValue(k)
	if err != nil {
		return nil, err
	}
	v, ok, err := m.root.find(0, h, k)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrKeyMissing, k)
	}
	return v, nil
}

// Contains reports whether k is present in m.
func (m *HashMap) Contains(k any) (bool, error) {
	if m == nil || m.root == nil {
		return false, nil
	}
	h, err := hashValue(k)
	if err != nil {
		return false, err
	}
	_, ok, err := m.root.find(0, h, k)
	return ok, err
}

// Assoc returns a new HashMap with k mapped to v. Count is incremented by
// one iff k was not already present.
func (m *HashMap) Assoc(k, v any) (*HashMap, error) {
	if m == nil {
		m = emptyHashMap
	}
	h, err := hashValue(k)
	if err != nil {
		return nil, err
	}
	var root hamtNode = m.root
	if root == nil {
		root = emptyBitmapNode
	}
	newRoot, added, err := root.assoc(0, h, k, v, nil)
	if err != nil {
		return nil, err
	}
	if !added && newRoot == m.root {
		return m, nil
	}
	count := m.count
	if added {
		count++
	}
	return &HashMap{count: count, root: newRoot}, nil
}

// Dissoc returns a new HashMap with k removed, or m itself if k wasn't
// present.
func (m *HashMap) Dissoc(k any) (*HashMap, error) {
	if m == nil || m.root == nil {
		return emptyHashMap, nil
	}
	h, err := hashValue(k)
	if err != nil {
		return nil, err
	}
	newRoot, removed, err := m.root.dissoc(0, h, k, nil)
	if err != nil {
		return nil, err
	}
	if !removed {
		return m, nil
	}
	if newRoot == nil || m.count-1 == 0 {
		return emptyHashMap, nil
	}
	return &HashMap{count: m.count - 1, root: newRoot}, nil
}

// Range calls fn for every (key, value) entry in m, in an arbitrary but
// deterministic DFS order, stopping early if fn returns false. This is the
// core single-mode iteration primitive (spec §4.4.5).
func (m *HashMap) Range(fn func(k, v any) bool) {
	if m == nil || m.root == nil {
		return
	}
	m.root.forEach(fn)
}

// HashMapIterator is a pull-style, forward-only, single-pass iterator
// built by buffering Range's results lazily on first Next call.
type HashMapIterator struct {
	m    *HashMap
	keys []any
	vals []any
	i    int
	mode int // 0=items, 1=keys, 2=values
	buf  bool
}

func (m *HashMap) newIterator(mode int) *HashMapIterator {
	return &HashMapIterator{m: m, mode: mode}
}

func (it *HashMapIterator) ensureBuffered() {
	if it.buf {
		return
	}
	it.buf = true
	it.m.Range(func(k, v any) bool {
		it.keys = append(it.keys, k)
		it.vals = append(it.vals, v)
		return true
	})
}

// IterateItems returns an iterator over (key, value) pairs.
func (m *HashMap) IterateItems() *HashMapIterator { return m.newIterator(0) }

// IterateKeys returns an iterator over keys.
func (m *HashMap) IterateKeys() *HashMapIterator { return m.newIterator(1) }

// IterateValues returns an iterator over values.
func (m *HashMap) IterateValues() *HashMapIterator { return m.newIterator(2) }

// NextItem returns the next (key, value) pair and true, or (nil, nil,
// false) once exhausted.
func (it *HashMapIterator) NextItem() (any, any, bool) {
	it.ensureBuffered()
	if it.i >= len(it.keys) {
		return nil, nil, false
	}
	k, v := it.keys[it.i], it.vals[it.i]
	it.i++
	return k, v, true
}

// Next returns the next key or value (depending on which Iterate* call
// produced it) and true, or (nil, false) once exhausted.
func (it *HashMapIterator) Next() (any, bool) {
	k, v, ok := it.NextItem()
	if !ok {
		return nil, false
	}
	if it.mode == 1 {
		return k, true
	}
	return v, true
}

// Equal reports whether m and other have the same entries, independent of
// iteration order.
func (m *HashMap) Equal(other *HashMap) (bool, error) {
	if m.Len() != other.Len() {
		return false, nil
	}
	var mismatch bool
	var outErr error
	m.Range(func(k, v any) bool {
		ov, err := other.Get(k, nil)
		if err != nil {
			outErr = err
			return false
		}
		ok, err := other.Contains(k)
		if err != nil {
			outErr = err
			return false
		}
		if !ok {
			mismatch = true
			return false
		}
		eq, err := valuesEqual(v, ov)
		if err != nil {
			outErr = err
			return false
		}
		if !eq {
			mismatch = true
			return false
		}
		return true
	})
	if outErr != nil {
		return false, outErr
	}
	return !mismatch, nil
}

// Hash returns h = XOR over entries of (hash(k) XOR hash(v)), independent
// of iteration order (spec §4.4.5).
func (m *HashMap) Hash() (uint64, error) {
	if m == nil || m.count == 0 {
		return 0, nil
	}
	m.hashOnce.Do(func() {
		var h uint64
		m.Range(func(k, v any) bool {
			kh, err := hashValue(k)
			if err != nil {
				m.hashErr = err
				return false
			}
			vh, err := hashValue(v)
			if err != nil {
				m.hashErr = err
				return false
			}
			h ^= kh ^ vh
			return true
		})
		m.hashVal = h
	})
	return m.hashVal, m.hashErr
}

// Merge returns a new HashMap with every entry of kvs inserted into m; on
// key conflict the incoming entry wins (spec §4.4.5). kvs may be any
// key-value iterable, here a map[any]any for Go's concrete surface.
func (m *HashMap) Merge(kvs map[any]any) (*HashMap, error) {
	t := m.ToTransient()
	for k, v := range kvs {
		if _, err := t.AssocMut(k, v); err != nil {
			return nil, err
		}
	}
	return t.Persistent()
}

// ToTransient returns a mutable builder sharing m's current root.
func (m *HashMap) ToTransient() *MapTransient {
	if m == nil {
		m = emptyHashMap
	}
	return &MapTransient{count: m.count, root: m.root, edit: newEditToken()}
}
