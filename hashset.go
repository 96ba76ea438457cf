package spork

import "sync"

// setMember is the fixed unit value stored at every HAMT leaf slot in a
// HashSet, matching spec §4.4.6 ("structurally identical to HashMap with
// a fixed unit value").
type setMember struct{}

// HashSet is a persistent set built on the same HAMT structure as
// HashMap, with the value slot unused (spec §4.4.6).
type HashSet struct {
	count int
	root  hamtNode

	hashOnce sync.Once
	hashVal  uint64
	hashErr  error
}

// canonical empty HashSet.
var emptyHashSet = &HashSet{}

// NewHashSet builds a HashSet from the given elements.
func NewHashSet(elements ...any) (*HashSet, error) {
	s := emptyHashSet
	for _, e := range elements {
		var err error
		s, err = s.Conj(e)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Len returns the number of elements in s.
func (s *HashSet) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Contains reports whether x is a member of s.
func (s *HashSet) Contains(x any) (bool, error) {
	if s == nil || s.root == nil {
		return false, nil
	}
	h, err := hashValue(x)
	if err != nil {
		return false, err
	}
	_, ok, err := s.root.find(0, h, x)
	return ok, err
}

// Conj returns a new HashSet with x added. s is left unchanged whether or
// not x was already present.
func (s *HashSet) Conj(x any) (*HashSet, error) {
	if s == nil {
		s = emptyHashSet
	}
	h, err := hashValue(x)
	if err != nil {
		return nil, err
	}
	var root hamtNode = s.root
	if root == nil {
		root = emptyBitmapNode
	}
	newRoot, added, err := root.assoc(0, h, x, setMember{}, nil)
	if err != nil {
		return nil, err
	}
	if !added && newRoot == s.root {
		return s, nil
	}
	count := s.count
	if added {
		count++
	}
	return &HashSet{count: count, root: newRoot}, nil
}

// Disj returns a new HashSet with x removed, or s itself if x wasn't
// present.
func (s *HashSet) Disj(x any) (*HashSet, error) {
	if s == nil || s.root == nil {
		return emptyHashSet, nil
	}
	h, err := hashValue(x)
	if err != nil {
		return nil, err
	}
	newRoot, removed, err := s.root.dissoc(0, h, x, nil)
	if err != nil {
		return nil, err
	}
	if !removed {
		return s, nil
	}
	if newRoot == nil || s.count-1 == 0 {
		return emptyHashSet, nil
	}
	return &HashSet{count: s.count - 1, root: newRoot}, nil
}

// Range calls fn for every element of s, in an arbitrary but deterministic
// DFS order, stopping early if fn returns false.
func (s *HashSet) Range(fn func(x any) bool) {
	if s == nil || s.root == nil {
		return
	}
	s.root.forEach(func(k, _ any) bool { return fn(k) })
}

// HashSetIterator is a pull-style, forward-only, single-pass iterator
// built by buffering Range's results lazily on first Next call.
type HashSetIterator struct {
	s    *HashSet
	elem []any
	i    int
	buf  bool
}

// Iterate returns a fresh iterator over s's elements.
func (s *HashSet) Iterate() *HashSetIterator {
	return &HashSetIterator{s: s}
}

// Next returns the next element and true, or (nil, false) once exhausted.
func (it *HashSetIterator) Next() (any, bool) {
	if !it.buf {
		it.buf = true
		it.s.Range(func(x any) bool {
			it.elem = append(it.elem, x)
			return true
		})
	}
	if it.i >= len(it.elem) {
		return nil, false
	}
	v := it.elem[it.i]
	it.i++
	return v, true
}

// ToSlice drains s into a new []any, leaving s unchanged.
func (s *HashSet) ToSlice() []any {
	out := make([]any, 0, s.Len())
	it := s.Iterate()
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// Hash returns the XOR of every element's hash (spec §4.4.6).
func (s *HashSet) Hash() (uint64, error) {
	if s == nil || s.count == 0 {
		return 0, nil
	}
	s.hashOnce.Do(func() {
		var h uint64
		s.Range(func(x any) bool {
			xh, err := hashValue(x)
			if err != nil {
				s.hashErr = err
				return false
			}
			h ^= xh
			return true
		})
		s.hashVal = h
	})
	return s.hashVal, s.hashErr
}

// Equal reports whether s and other have the same cardinality and the
// same members.
func (s *HashSet) Equal(other *HashSet) (bool, error) {
	if s.Len() != other.Len() {
		return false, nil
	}
	return s.IsSubsetOf(other)
}

// IsSubsetOf reports whether every element of s is a member of other.
func (s *HashSet) IsSubsetOf(other *HashSet) (bool, error) {
	if s.Len() > other.Len() {
		return false, nil
	}
	var mismatch bool
	var outErr error
	s.Range(func(x any) bool {
		ok, err := other.Contains(x)
		if err != nil {
			outErr = err
			return false
		}
		if !ok {
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

// IsSupersetOf reports whether every element of other is a member of s.
func (s *HashSet) IsSupersetOf(other *HashSet) (bool, error) {
	return other.IsSubsetOf(s)
}

// Union returns a new HashSet containing every element of s and other,
// built over a transient of the larger operand (spec §4.4.6).
func (s *HashSet) Union(other *HashSet) (*HashSet, error) {
	base, extra := s, other
	if extra.Len() > base.Len() {
		base, extra = extra, base
	}
	t := base.ToTransient()
	var outErr error
	extra.Range(func(x any) bool {
		if _, err := t.ConjMut(x); err != nil {
			outErr = err
			return false
		}
		return true
	})
	if outErr != nil {
		return nil, outErr
	}
	return t.Persistent()
}

// Intersection returns a new HashSet containing only elements present in
// both s and other, built over a transient seeded from the smaller
// operand and pruned of anything the larger operand doesn't also have
// (spec §4.4.6).
func (s *HashSet) Intersection(other *HashSet) (*HashSet, error) {
	small, big := s, other
	if big.Len() < small.Len() {
		small, big = big, small
	}
	t := small.ToTransient()
	var outErr error
	small.Range(func(x any) bool {
		ok, err := big.Contains(x)
		if err != nil {
			outErr = err
			return false
		}
		if !ok {
			if _, err := t.DisjMut(x); err != nil {
				outErr = err
				return false
			}
		}
		return true
	})
	if outErr != nil {
		return nil, outErr
	}
	return t.Persistent()
}

// Difference returns a new HashSet containing elements of s not present
// in other.
func (s *HashSet) Difference(other *HashSet) (*HashSet, error) {
	t := s.ToTransient()
	var outErr error
	s.Range(func(x any) bool {
		ok, err := other.Contains(x)
		if err != nil {
			outErr = err
			return false
		}
		if ok {
			if _, err := t.DisjMut(x); err != nil {
				outErr = err
				return false
			}
		}
		return true
	})
	if outErr != nil {
		return nil, outErr
	}
	return t.Persistent()
}

// SymmetricDifference returns a new HashSet containing elements present
// in exactly one of s and other.
func (s *HashSet) SymmetricDifference(other *HashSet) (*HashSet, error) {
	union, err := s.Union(other)
	if err != nil {
		return nil, err
	}
	inter, err := s.Intersection(other)
	if err != nil {
		return nil, err
	}
	return union.Difference(inter)
}

// ToTransient returns a mutable builder sharing s's current root.
func (s *HashSet) ToTransient() *SetTransient {
	if s == nil {
		s = emptyHashSet
	}
	return &SetTransient{count: s.count, root: s.root, edit: newEditToken()}
}
