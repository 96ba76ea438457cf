package spork

// IntVector is the int64 specialization of the primitive vector family:
// same trie/tail algebra as Vector, but leaves store unboxed int64s and a
// contiguous buffer can be exported (spec §4.3).
type IntVector struct {
	v *primVector[int64]
}

var emptyIntVector = &IntVector{v: emptyPrimVector[int64]()}

// prim returns iv's underlying primVector, tolerating a nil receiver.
func (iv *IntVector) prim() *primVector[int64] {
	if iv == nil {
		return emptyPrimVector[int64]()
	}
	return iv.v
}

// NewIntVector builds an IntVector from values, converting each to int64.
// Integers convert directly; floats convert only when they hold an exact
// integer value. Anything else fails the whole call with ErrTypeMismatch.
func NewIntVector(values ...any) (*IntVector, error) {
	iv := emptyIntVector
	for _, x := range values {
		var err error
		iv, err = iv.Conj(x)
		if err != nil {
			return nil, err
		}
	}
	return iv, nil
}

// Len returns the number of elements.
func (iv *IntVector) Len() int {
	return iv.prim().Len()
}

// Get returns the element at index i.
func (iv *IntVector) Get(i int) (int64, error) {
	return iv.prim().get(i)
}

// Conj converts x to int64 and appends it.
func (iv *IntVector) Conj(x any) (*IntVector, error) {
	n, err := toInt64(x)
	if err != nil {
		return nil, err
	}
	return &IntVector{v: iv.prim().conj(n)}, nil
}

// Assoc converts x to int64 and replaces the element at index i.
func (iv *IntVector) Assoc(i int, x any) (*IntVector, error) {
	n, err := toInt64(x)
	if err != nil {
		return nil, err
	}
	nv, err := iv.prim().assoc(i, n)
	if err != nil {
		return nil, err
	}
	return &IntVector{v: nv}, nil
}

// Pop removes the last element.
func (iv *IntVector) Pop() (*IntVector, error) {
	nv, err := iv.prim().pop()
	if err != nil {
		return nil, err
	}
	return &IntVector{v: nv}, nil
}

// Hash returns the element-wise hash, folded with the same 31x combiner as
// the generic Vector.
func (iv *IntVector) Hash() uint64 {
	return iv.prim().hash()
}

// Equal reports whether iv and other hold the same int64s in the same
// order.
func (iv *IntVector) Equal(other *IntVector) bool {
	return iv.prim().equal(other.prim())
}

// ToSlice drains iv into a new []int64, leaving iv unchanged.
func (iv *IntVector) ToSlice() []int64 {
	return iv.prim().toSlice()
}

// Buffer returns a contiguous []int64 snapshot of iv. It's allocated on
// first call and retained for iv's lifetime; callers must not mutate it.
func (iv *IntVector) Buffer() []int64 {
	return iv.prim().buffer()
}

// IntVectorIterator yields iv's elements in index order.
type IntVectorIterator struct {
	it *primVectorIterator[int64]
}

// Iterate returns a fresh, forward-only iterator over iv.
func (iv *IntVector) Iterate() *IntVectorIterator {
	return &IntVectorIterator{it: iv.prim().iterate()}
}

// Next returns the next element and true, or (0, false) once exhausted.
func (it *IntVectorIterator) Next() (int64, bool) {
	return it.it.next()
}

// ToTransient returns a mutable builder sharing iv's current root, with a
// copy of its tail.
func (iv *IntVector) ToTransient() *IntVectorTransient {
	return &IntVectorTransient{t: toTransientPrim(iv.prim())}
}

// IntVectorTransient is a mutable builder for IntVector.
type IntVectorTransient struct {
	t *primVectorTransient[int64]
}

// Len returns the number of elements currently in the transient.
func (t *IntVectorTransient) Len() int { return t.t.count }

// Get returns the element at index i.
func (t *IntVectorTransient) Get(i int) (int64, error) { return t.t.get(i) }

// ConjMut converts x to int64 and appends it in place.
func (t *IntVectorTransient) ConjMut(x any) (*IntVectorTransient, error) {
	n, err := toInt64(x)
	if err != nil {
		return nil, err
	}
	if err := t.t.conjMut(n); err != nil {
		return nil, err
	}
	return t, nil
}

// AssocMut converts x to int64 and sets it at index i in place.
func (t *IntVectorTransient) AssocMut(i int, x any) (*IntVectorTransient, error) {
	n, err := toInt64(x)
	if err != nil {
		return nil, err
	}
	if err := t.t.assocMut(i, n); err != nil {
		return nil, err
	}
	return t, nil
}

// PopMut removes the last element in place.
func (t *IntVectorTransient) PopMut() (*IntVectorTransient, error) {
	if err := t.t.popMut(); err != nil {
		return nil, err
	}
	return t, nil
}

// Persistent freezes the transient and returns the IntVector it built.
func (t *IntVectorTransient) Persistent() (*IntVector, error) {
	v, err := t.t.persistent()
	if err != nil {
		return nil, err
	}
	return &IntVector{v: v}, nil
}
