package spork

import (
	"fmt"
	"sync"
)

// Vector is a persistent indexed sequence over a 32-way bit-partitioned
// trie with a tail buffer (spec §4.2). Every mutating operation returns a
// new Vector and leaves the receiver unchanged.
type Vector struct {
	count int
	shift uint // trie depth: a positive multiple of vecB
	root  *vectorNode
	tail  []any // length in [0, vecW]

	hashOnce sync.Once
	hashVal  uint64
	hashErr  error
}

var emptyVectorRoot = &vectorNode{}

// canonical empty Vector, returned by NewVector() and by any operation that
// reduces a Vector to empty.
var emptyVector = &Vector{shift: vecB, root: emptyVectorRoot}

// NewVector builds a Vector from the given elements, left to right.
func NewVector(elements ...any) *Vector {
	v := emptyVector
	for _, e := range elements {
		v = v.Conj(e)
	}
	return v
}

// Len returns the number of elements in v.
func (v *Vector) Len() int {
	if v == nil {
		return 0
	}
	return v.count
}

// tailoff is the count of elements held in the trie (as opposed to the
// tail buffer): ((count-1) >> vecB) << vecB once count >= vecW, else 0.
func (v *Vector) tailoff() int {
	if v.count < vecW {
		return 0
	}
	return ((v.count - 1) >> vecB) << vecB
}

// Get returns the element at index i, or an ErrOutOfRange error if
// i is outside [0, Len()).
func (v *Vector) Get(i int) (any, error) {
	if v == nil || i < 0 || i >= v.count {
		return nil, fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, i, v.Len())
	}
	return v.arrayFor(i)[i&vecM], nil
}

// arrayFor returns the 32-element leaf array (trie leaf or tail) that holds
// index i. The returned slice must not be mutated by callers.
func (v *Vector) arrayFor(i int) []any {
	if i >= v.tailoff() {
		return v.tail
	}
	node := v.root
	for level := v.shift; level > 0; level -= vecB {
		node = node.arr[(i>>level)&vecM].(*vectorNode)
	}
	return node.arr[:]
}

// Conj appends x, returning a new Vector.
func (v *Vector) Conj(x any) *Vector {
	if v == nil {
		v = emptyVector
	}
	if len(v.tail) < vecW {
		newTail := make([]any, len(v.tail)+1)
		copy(newTail, v.tail)
		newTail[len(v.tail)] = x
		return &Vector{count: v.count + 1, shift: v.shift, root: v.root, tail: newTail}
	}

	tailNode := &vectorNode{}
	copy(tailNode.arr[:], v.tail)

	var newRoot *vectorNode
	newShift := v.shift
	if (v.count >> vecB) > (1 << v.shift) {
		newRoot = &vectorNode{}
		newRoot.arr[0] = v.root
		newRoot.arr[1] = newPath(nil, v.shift, tailNode)
		newShift = v.shift + vecB
	} else {
		newRoot = v.pushTail(v.shift, v.root, tailNode)
	}
	return &Vector{count: v.count + 1, shift: newShift, root: newRoot, tail: []any{x}}
}

// pushTail splices tailNode into the trie rooted at node (at the given
// level), path-copying every node on the way down.
func (v *Vector) pushTail(level uint, node *vectorNode, tailNode *vectorNode) *vectorNode {
	subidx := ((v.count - 1) >> level) & vecM
	ret := &vectorNode{arr: node.arr}

	var nodeToInsert *vectorNode
	if level == vecB {
		nodeToInsert = tailNode
	} else {
		child, _ := node.arr[subidx].(*vectorNode)
		if child != nil {
			nodeToInsert = v.pushTail(level-vecB, child, tailNode)
		} else {
			nodeToInsert = newPath(nil, level-vecB, tailNode)
		}
	}
	ret.arr[subidx] = nodeToInsert
	return ret
}

// Assoc returns a new Vector with the element at index i replaced by x. If
// i == Len(), Assoc behaves like Conj. Any other out-of-range i returns
// ErrOutOfRange.
func (v *Vector) Assoc(i int, x any) (*Vector, error) {
	if v == nil {
		v = emptyVector
	}
	switch {
	case i == v.count:
		return v.Conj(x), nil
	case i < 0 || i > v.count:
		return nil, fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, i, v.count)
	case i >= v.tailoff():
		newTail := make([]any, len(v.tail))
		copy(newTail, v.tail)
		newTail[i&vecM] = x
		return &Vector{count: v.count, shift: v.shift, root: v.root, tail: newTail}, nil
	default:
		return &Vector{count: v.count, shift: v.shift, root: doAssoc(v.shift, v.root, i, x), tail: v.tail}, nil
	}
}

func doAssoc(level uint, node *vectorNode, i int, x any) *vectorNode {
	ret := &vectorNode{arr: node.arr}
	if level == 0 {
		ret.arr[i&vecM] = x
		return ret
	}
	subidx := (i >> level) & vecM
	ret.arr[subidx] = doAssoc(level-vecB, node.arr[subidx].(*vectorNode), i, x)
	return ret
}

// Pop returns a new Vector with the last element removed, or ErrEmpty if v
// is empty.
func (v *Vector) Pop() (*Vector, error) {
	if v.Len() == 0 {
		return nil, ErrEmpty
	}
	if v.count == 1 {
		return emptyVector, nil
	}
	if len(v.tail) > 1 {
		newTail := make([]any, len(v.tail)-1)
		copy(newTail, v.tail)
		return &Vector{count: v.count - 1, shift: v.shift, root: v.root, tail: newTail}, nil
	}

	newTailSrc := v.arrayFor(v.count - 2)
	newTail := make([]any, len(newTailSrc))
	copy(newTail, newTailSrc)

	newRoot := v.popTail(v.shift, v.root)
	newShift := v.shift
	if newRoot == nil {
		newRoot = &vectorNode{}
	}
	if newShift > vecB && newRoot.arr[1] == nil {
		newRoot, _ = newRoot.arr[0].(*vectorNode)
		newShift -= vecB
	}
	return &Vector{count: v.count - 1, shift: newShift, root: newRoot, tail: newTail}, nil
}

func (v *Vector) popTail(level uint, node *vectorNode) *vectorNode {
	subidx := ((v.count - 2) >> level) & vecM
	if level > vecB {
		child, _ := node.arr[subidx].(*vectorNode)
		newChild := v.popTail(level-vecB, child)
		if newChild == nil && subidx == 0 {
			return nil
		}
		ret := &vectorNode{arr: node.arr}
		ret.arr[subidx] = newChild
		return ret
	}
	if subidx == 0 {
		return nil
	}
	ret := &vectorNode{arr: node.arr}
	ret.arr[subidx] = nil
	return ret
}

// Hash returns the sequence hash of v's elements, memoized on first call.
func (v *Vector) Hash() (uint64, error) {
	if v == nil || v.count == 0 {
		return 0, nil
	}
	v.hashOnce.Do(func() {
		var h uint64
		it := v.Iterate()
		for {
			x, ok := it.Next()
			if !ok {
				break
			}
			eh, err := hashValue(x)
			if err != nil {
				v.hashErr = err
				return
			}
			h = combine31(h, eh)
		}
		v.hashVal = h
	})
	return v.hashVal, v.hashErr
}

// Equal reports whether v and other have the same length and pairwise-equal
// elements in order.
func (v *Vector) Equal(other *Vector) (bool, error) {
	if v.Len() != other.Len() {
		return false, nil
	}
	ai, bi := v.Iterate(), other.Iterate()
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

// VectorIterator yields v's elements in index order. It caches the most
// recently fetched leaf and reuses it while the index stays within the same
// 32-element chunk; crossing a chunk boundary triggers one fresh descent.
type VectorIterator struct {
	v       *Vector
	i       int
	chunk   []any
	chunkLo int
}

// Iterate returns a fresh, forward-only, non-restartable iterator over v.
func (v *Vector) Iterate() *VectorIterator {
	return &VectorIterator{v: v, chunkLo: -1}
}

// Next returns the next element and true, or (nil, false) once exhausted.
func (it *VectorIterator) Next() (any, bool) {
	if it.v == nil || it.i >= it.v.count {
		return nil, false
	}
	if it.chunkLo < 0 || it.i < it.chunkLo || it.i >= it.chunkLo+len(it.chunk) {
		it.chunk = it.v.arrayFor(it.i)
		it.chunkLo = it.i - (it.i & vecM)
	}
	val := it.chunk[it.i&vecM]
	it.i++
	return val, true
}

// ToSlice drains v into a new []any, leaving v unchanged.
func (v *Vector) ToSlice() []any {
	out := make([]any, 0, v.Len())
	it := v.Iterate()
	for {
		x, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, x)
	}
	return out
}

// ToTransient returns a mutable builder sharing v's current root; the tail
// (at most vecW elements) is copied, so conversion is O(1).
func (v *Vector) ToTransient() *VectorTransient {
	if v == nil {
		v = emptyVector
	}
	edit := newEditToken()
	return &VectorTransient{
		count: v.count,
		shift: v.shift,
		root:  v.root,
		tail:  append([]any(nil), v.tail...),
		edit:  edit,
	}
}
