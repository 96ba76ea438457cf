package spork

import (
	"fmt"
	"sync"

	"golang.org/x/exp/constraints"
)

// Number is the constraint satisfied by the two primitive vector element
// types this library specializes: 64-bit floats and 64-bit signed ints.
type Number interface {
	constraints.Float | constraints.Signed
}

// primVector is the shared trie/tail algebra behind FloatVector and
// IntVector (spec §4.3: "same trie/tail algebra" as the generic Vector,
// but leaves store unboxed primitives).
type primVector[T Number] struct {
	count int
	shift uint
	root  *primNode[T]
	tail  []T

	hashOnce sync.Once
	hashVal  uint64

	bufOnce sync.Once
	buf     []T
}

func emptyPrimVector[T Number]() *primVector[T] {
	return &primVector[T]{shift: vecB, root: &primNode[T]{}}
}

func (v *primVector[T]) Len() int {
	if v == nil {
		return 0
	}
	return v.count
}

func (v *primVector[T]) tailoff() int {
	if v.count < vecW {
		return 0
	}
	return ((v.count - 1) >> vecB) << vecB
}

func (v *primVector[T]) arrayFor(i int) []T {
	if i >= v.tailoff() {
		return v.tail
	}
	node := v.root
	for level := v.shift; level > 0; level -= vecB {
		node = node.children[(i>>level)&vecM]
	}
	return node.values[:]
}

func (v *primVector[T]) get(i int) (T, error) {
	var zero T
	if v == nil || i < 0 || i >= v.count {
		return zero, fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, i, v.Len())
	}
	return v.arrayFor(i)[i&vecM], nil
}

func (v *primVector[T]) conj(x T) *primVector[T] {
	if v == nil {
		v = emptyPrimVector[T]()
	}
	if len(v.tail) < vecW {
		newTail := make([]T, len(v.tail)+1)
		copy(newTail, v.tail)
		newTail[len(v.tail)] = x
		return &primVector[T]{count: v.count + 1, shift: v.shift, root: v.root, tail: newTail}
	}

	tailNode := &primNode[T]{}
	copy(tailNode.values[:], v.tail)

	var newRoot *primNode[T]
	newShift := v.shift
	if (v.count >> vecB) > (1 << v.shift) {
		newRoot = &primNode[T]{}
		newRoot.children[0] = v.root
		newRoot.children[1] = newPrimPath[T](nil, v.shift, tailNode)
		newShift = v.shift + vecB
	} else {
		newRoot = v.pushTail(v.shift, v.root, tailNode)
	}
	return &primVector[T]{count: v.count + 1, shift: newShift, root: newRoot, tail: []T{x}}
}

func (v *primVector[T]) pushTail(level uint, node *primNode[T], tailNode *primNode[T]) *primNode[T] {
	subidx := ((v.count - 1) >> level) & vecM
	ret := &primNode[T]{children: node.children, values: node.values}

	if level == vecB {
		ret.children[subidx] = tailNode
		return ret
	}
	child := node.children[subidx]
	if child != nil {
		ret.children[subidx] = v.pushTail(level-vecB, child, tailNode)
	} else {
		ret.children[subidx] = newPrimPath[T](nil, level-vecB, tailNode)
	}
	return ret
}

func (v *primVector[T]) assoc(i int, x T) (*primVector[T], error) {
	if v == nil {
		v = emptyPrimVector[T]()
	}
	switch {
	case i == v.count:
		return v.conj(x), nil
	case i < 0 || i > v.count:
		return nil, fmt.Errorf("%w: index %d, length %d", ErrOutOfRange, i, v.count)
	case i >= v.tailoff():
		newTail := make([]T, len(v.tail))
		copy(newTail, v.tail)
		newTail[i&vecM] = x
		return &primVector[T]{count: v.count, shift: v.shift, root: v.root, tail: newTail}, nil
	default:
		return &primVector[T]{count: v.count, shift: v.shift, root: doAssocPrim(v.shift, v.root, i, x), tail: v.tail}, nil
	}
}

func doAssocPrim[T Number](level uint, node *primNode[T], i int, x T) *primNode[T] {
	ret := &primNode[T]{children: node.children, values: node.values}
	if level == 0 {
		ret.values[i&vecM] = x
		return ret
	}
	subidx := (i >> level) & vecM
	ret.children[subidx] = doAssocPrim(level-vecB, node.children[subidx], i, x)
	return ret
}

func (v *primVector[T]) pop() (*primVector[T], error) {
	if v.Len() == 0 {
		return nil, ErrEmpty
	}
	empty := emptyPrimVector[T]()
	if v.count == 1 {
		return empty, nil
	}
	if len(v.tail) > 1 {
		newTail := make([]T, len(v.tail)-1)
		copy(newTail, v.tail)
		return &primVector[T]{count: v.count - 1, shift: v.shift, root: v.root, tail: newTail}, nil
	}

	newTailSrc := v.arrayFor(v.count - 2)
	newTail := make([]T, len(newTailSrc))
	copy(newTail, newTailSrc)

	newRoot := v.popTail(v.shift, v.root)
	newShift := v.shift
	if newRoot == nil {
		newRoot = &primNode[T]{}
	}
	if newShift > vecB && newRoot.children[1] == nil {
		newRoot = newRoot.children[0]
		newShift -= vecB
	}
	return &primVector[T]{count: v.count - 1, shift: newShift, root: newRoot, tail: newTail}, nil
}

func (v *primVector[T]) popTail(level uint, node *primNode[T]) *primNode[T] {
	subidx := ((v.count - 2) >> level) & vecM
	if level > vecB {
		newChild := v.popTail(level-vecB, node.children[subidx])
		if newChild == nil && subidx == 0 {
			return nil
		}
		ret := &primNode[T]{children: node.children, values: node.values}
		ret.children[subidx] = newChild
		return ret
	}
	if subidx == 0 {
		return nil
	}
	ret := &primNode[T]{children: node.children, values: node.values}
	ret.children[subidx] = nil
	return ret
}

func (v *primVector[T]) hash() uint64 {
	v.hashOnce.Do(func() {
		var h uint64
		it := v.iterate()
		for {
			x, ok := it.next()
			if !ok {
				break
			}
			h = combine31(h, hashNumber(x))
		}
		v.hashVal = h
	})
	return v.hashVal
}

func hashNumber[T Number](x T) uint64 {
	return hashFloat64(float64(x))
}

func (v *primVector[T]) equal(other *primVector[T]) bool {
	if v.Len() != other.Len() {
		return false
	}
	ai, bi := v.iterate(), other.iterate()
	for {
		av, aok := ai.next()
		bv, bok := bi.next()
		if !aok && !bok {
			return true
		}
		if av != bv {
			return false
		}
	}
}

// buffer lazily materializes and retains a contiguous []T snapshot of v,
// per spec §4.3: allocated on first request, held for the vector's
// lifetime, and returned as-is on subsequent requests. Callers must treat
// the returned slice as read-only.
func (v *primVector[T]) buffer() []T {
	v.bufOnce.Do(func() {
		buf := make([]T, v.count)
		i := 0
		it := v.iterate()
		for {
			x, ok := it.next()
			if !ok {
				break
			}
			buf[i] = x
			i++
		}
		v.buf = buf
	})
	return v.buf
}

type primVectorIterator[T Number] struct {
	v       *primVector[T]
	i       int
	chunk   []T
	chunkLo int
}

func (v *primVector[T]) iterate() *primVectorIterator[T] {
	return &primVectorIterator[T]{v: v, chunkLo: -1}
}

func (it *primVectorIterator[T]) next() (T, bool) {
	var zero T
	if it.v == nil || it.i >= it.v.count {
		return zero, false
	}
	if it.chunkLo < 0 || it.i < it.chunkLo || it.i >= it.chunkLo+len(it.chunk) {
		it.chunk = it.v.arrayFor(it.i)
		it.chunkLo = it.i - (it.i & vecM)
	}
	val := it.chunk[it.i&vecM]
	it.i++
	return val, true
}

func (v *primVector[T]) toSlice() []T {
	out := make([]T, 0, v.Len())
	it := v.iterate()
	for {
		x, ok := it.next()
		if !ok {
			break
		}
		out = append(out, x)
	}
	return out
}
