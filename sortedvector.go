package spork

import (
	"fmt"
	"sync"
)

// SortedVector is a persistent ordered sequence backed by a size-annotated
// left-leaning red-black tree (spec §4.5), optionally keyed by a key
// function and optionally reversed.
type SortedVector struct {
	root    *sortedNode
	count   int
	keyFn   func(any) (any, error)
	reverse bool

	hashOnce sync.Once
	hashVal  uint64
	hashErr  error
}

// SortedVectorOption configures a SortedVector at construction time.
type SortedVectorOption func(*SortedVector)

// WithKeyFunc supplies the function used to derive each element's sort
// key. If omitted, the element itself is the key.
func WithKeyFunc(fn func(any) (any, error)) SortedVectorOption {
	return func(sv *SortedVector) { sv.keyFn = fn }
}

// WithReverse sets whether iteration order is non-increasing instead of
// non-decreasing.
func WithReverse(reverse bool) SortedVectorOption {
	return func(sv *SortedVector) { sv.reverse = reverse }
}

func newEmptySortedVector(opts ...SortedVectorOption) *SortedVector {
	sv := &SortedVector{}
	for _, opt := range opts {
		opt(sv)
	}
	return sv
}

// NewSortedVector builds a SortedVector from values, under the given
// options.
func NewSortedVector(values []any, opts ...SortedVectorOption) (*SortedVector, error) {
	sv := newEmptySortedVector(opts...)
	for _, v := range values {
		var err error
		sv, err = sv.Conj(v)
		if err != nil {
			return nil, err
		}
	}
	return sv, nil
}

// Len returns the number of elements in sv.
func (sv *SortedVector) Len() int {
	if sv == nil {
		return 0
	}
	return sv.count
}

func (sv *SortedVector) keyOf(value any) (any, error) {
	if sv == nil || sv.keyFn == nil {
		return value, nil
	}
	key, err := sv.keyFn(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrComparison, err)
	}
	return key, nil
}

// cmp compares two sort keys, negating the result when sv.reverse is set.
func (sv *SortedVector) cmp(a, b any) (int, error) {
	c, err := defaultCompare(a, b)
	if err != nil {
		return 0, err
	}
	if sv != nil && sv.reverse {
		return -c, nil
	}
	return c, nil
}

// Conj returns a new SortedVector with value inserted in sort order.
func (sv *SortedVector) Conj(value any) (*SortedVector, error) {
	if sv == nil {
		sv = newEmptySortedVector()
	}
	key, err := sv.keyOf(value)
	if err != nil {
		return nil, err
	}
	newRoot, err := insertNode(sv.root, value, key, sv.cmp, nil)
	if err != nil {
		return nil, err
	}
	newRoot = newRoot.editableNode(nil)
	newRoot.red = false
	return &SortedVector{root: newRoot, count: sv.count + 1, keyFn: sv.keyFn, reverse: sv.reverse}, nil
}

// Disj returns a new SortedVector with the entry matching value's key and
// value removed, or sv itself if no such entry exists.
func (sv *SortedVector) Disj(value any) (*SortedVector, error) {
	if sv == nil || sv.root == nil {
		return newEmptySortedVector(), nil
	}
	key, err := sv.keyOf(value)
	if err != nil {
		return nil, err
	}
	present, err := containsKeyValue(sv.root, key, value, sv.cmp)
	if err != nil {
		return nil, err
	}
	if !present {
		return sv, nil
	}
	newRoot, removed, err := deleteNode(sv.root, key, value, sv.cmp, nil)
	if err != nil {
		return nil, err
	}
	if !removed {
		return sv, nil
	}
	if newRoot != nil {
		newRoot = newRoot.editableNode(nil)
		newRoot.red = false
	}
	return &SortedVector{root: newRoot, count: sv.count - 1, keyFn: sv.keyFn, reverse: sv.reverse}, nil
}

// Nth returns the i-th element in sorted order, or ErrOutOfRange.
func (sv *SortedVector) Nth(i int) (any, error) {
	if sv == nil || i < 0 || i >= sv.count {
		return nil, fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, i, sv.Len())
	}
	n := nthNode(sv.root, i)
	return n.value, nil
}

// Rank returns the number of entries whose sort key is strictly less than
// value's key, under sv's ordering.
func (sv *SortedVector) Rank(value any) (int, error) {
	if sv == nil {
		return 0, nil
	}
	key, err := sv.keyOf(value)
	if err != nil {
		return 0, err
	}
	rank := 0
	n := sv.root
	for n != nil {
		c, err := sv.cmp(key, n.key)
		if err != nil {
			return 0, err
		}
		switch {
		case c <= 0:
			// Rotations can leave equal keys in the left subtree, so an
			// equal key keeps descending left rather than counting it.
			n = n.left
		default:
			rank += sortedSize(n.left) + 1
			n = n.right
		}
	}
	return rank, nil
}

// IndexOf returns the leftmost index of an entry matching value's key and
// value, or -1 if none exists.
func (sv *SortedVector) IndexOf(value any) (int, error) {
	if sv == nil {
		return -1, nil
	}
	key, err := sv.keyOf(value)
	if err != nil {
		return -1, err
	}
	idx, found := 0, -1
	n := sv.root
	for n != nil {
		c, err := sv.cmp(key, n.key)
		if err != nil {
			return -1, err
		}
		if c < 0 {
			n = n.left
			continue
		}
		if c == 0 {
			eq, err := valuesEqual(value, n.value)
			if err != nil {
				return -1, err
			}
			if eq {
				// Record this match and keep looking left for an earlier one.
				found = idx + sortedSize(n.left)
				n = n.left
				continue
			}
		}
		idx += sortedSize(n.left) + 1
		n = n.right
	}
	return found, nil
}

// First returns the smallest element under sv's ordering, or ErrEmpty.
func (sv *SortedVector) First() (any, error) {
	if sv == nil || sv.root == nil {
		return nil, ErrEmpty
	}
	n := sv.root
	for n.left != nil {
		n = n.left
	}
	return n.value, nil
}

// Last returns the largest element under sv's ordering, or ErrEmpty.
func (sv *SortedVector) Last() (any, error) {
	if sv == nil || sv.root == nil {
		return nil, ErrEmpty
	}
	n := sv.root
	for n.right != nil {
		n = n.right
	}
	return n.value, nil
}

// Range calls fn for every element in sorted order, stopping early if fn
// returns false.
func (sv *SortedVector) Range(fn func(value any) bool) {
	if sv == nil {
		return
	}
	var walk func(*sortedNode) bool
	walk = func(n *sortedNode) bool {
		if n == nil {
			return true
		}
		if !walk(n.left) {
			return false
		}
		if !fn(n.value) {
			return false
		}
		return walk(n.right)
	}
	walk(sv.root)
}

// SortedVectorIterator yields sv's elements in order via an explicit
// traversal stack whose left-spine is pushed on construction and after
// each yield (spec §4.5).
type SortedVectorIterator struct {
	stack []*sortedNode
}

func (it *SortedVectorIterator) pushLeft(n *sortedNode) {
	for n != nil {
		it.stack = append(it.stack, n)
		n = n.left
	}
}

// Iterate returns a fresh, forward-only iterator over sv.
func (sv *SortedVector) Iterate() *SortedVectorIterator {
	it := &SortedVectorIterator{}
	if sv != nil {
		it.pushLeft(sv.root)
	}
	return it
}

// Next returns the next element and true, or (nil, false) once exhausted.
func (it *SortedVectorIterator) Next() (any, bool) {
	if len(it.stack) == 0 {
		return nil, false
	}
	n := it.stack[len(it.stack)-1]
	it.stack = it.stack[:len(it.stack)-1]
	it.pushLeft(n.right)
	return n.value, true
}

// ToSlice drains sv into a new []any, leaving sv unchanged.
func (sv *SortedVector) ToSlice() []any {
	out := make([]any, 0, sv.Len())
	it := sv.Iterate()
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// Hash returns the ordered sequence hash of sv's elements, memoized on
// first call, using the same 31x combiner as Cons and Vector.
func (sv *SortedVector) Hash() (uint64, error) {
	if sv == nil || sv.count == 0 {
		return 0, nil
	}
	sv.hashOnce.Do(func() {
		var h uint64
		it := sv.Iterate()
		for {
			x, ok := it.Next()
			if !ok {
				break
			}
			eh, err := hashValue(x)
			if err != nil {
				sv.hashErr = err
				return
			}
			h = combine31(h, eh)
		}
		sv.hashVal = h
	})
	return sv.hashVal, sv.hashErr
}

// Equal reports whether sv and other yield the same elements in the same
// order.
func (sv *SortedVector) Equal(other *SortedVector) (bool, error) {
	if sv.Len() != other.Len() {
		return false, nil
	}
	ai, bi := sv.Iterate(), other.Iterate()
	for {
		av, aok := ai.Next()
		bv, bok := bi.Next()
		if !aok && !bok {
			return true, nil
		}
		eq, err := valuesEqual(av, bv)
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
	}
}

// ToTransient returns a mutable builder sharing sv's current root.
func (sv *SortedVector) ToTransient() *SortedVectorTransient {
	if sv == nil {
		sv = newEmptySortedVector()
	}
	return &SortedVectorTransient{
		root:    sv.root,
		count:   sv.count,
		keyFn:   sv.keyFn,
		reverse: sv.reverse,
		edit:    newEditToken(),
	}
}
