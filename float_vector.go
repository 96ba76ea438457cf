package spork

// FloatVector is the float64 specialization of the primitive vector
// family: same trie/tail algebra as Vector, but leaves store unboxed
// float64s and a contiguous buffer can be exported (spec §4.3).
type FloatVector struct {
	v *primVector[float64]
}

var emptyFloatVector = &FloatVector{v: emptyPrimVector[float64]()}

// prim returns fv's underlying primVector, tolerating a nil receiver.
func (fv *FloatVector) prim() *primVector[float64] {
	if fv == nil {
		return emptyPrimVector[float64]()
	}
	return fv.v
}

// NewFloatVector builds a FloatVector from values, converting each to
// float64. A value that isn't numeric fails the whole call with
// ErrTypeMismatch; the partially-converted prefix is discarded.
func NewFloatVector(values ...any) (*FloatVector, error) {
	fv := emptyFloatVector
	for _, x := range values {
		var err error
		fv, err = fv.Conj(x)
		if err != nil {
			return nil, err
		}
	}
	return fv, nil
}

// Len returns the number of elements.
func (fv *FloatVector) Len() int {
	return fv.prim().Len()
}

// Get returns the element at index i.
func (fv *FloatVector) Get(i int) (float64, error) {
	return fv.prim().get(i)
}

// Conj converts x to float64 and appends it.
func (fv *FloatVector) Conj(x any) (*FloatVector, error) {
	f, err := toFloat64(x)
	if err != nil {
		return nil, err
	}
	return &FloatVector{v: fv.prim().conj(f)}, nil
}

// Assoc converts x to float64 and replaces the element at index i.
func (fv *FloatVector) Assoc(i int, x any) (*FloatVector, error) {
	f, err := toFloat64(x)
	if err != nil {
		return nil, err
	}
	nv, err := fv.prim().assoc(i, f)
	if err != nil {
		return nil, err
	}
	return &FloatVector{v: nv}, nil
}

// Pop removes the last element.
func (fv *FloatVector) Pop() (*FloatVector, error) {
	nv, err := fv.prim().pop()
	if err != nil {
		return nil, err
	}
	return &FloatVector{v: nv}, nil
}

// Hash returns the element-wise hash, folded with the same 31x combiner as
// the generic Vector, using the platform's canonical float hash (-0.0
// hashes the same as 0.0).
func (fv *FloatVector) Hash() uint64 {
	return fv.prim().hash()
}

// Equal reports whether fv and other hold the same float64s in the same
// order.
func (fv *FloatVector) Equal(other *FloatVector) bool {
	return fv.prim().equal(other.prim())
}

// ToSlice drains fv into a new []float64, leaving fv unchanged.
func (fv *FloatVector) ToSlice() []float64 {
	return fv.prim().toSlice()
}

// Buffer returns a contiguous []float64 snapshot of fv. It's allocated on
// first call and retained for fv's lifetime; callers must not mutate it.
func (fv *FloatVector) Buffer() []float64 {
	return fv.prim().buffer()
}

// FloatVectorIterator yields fv's elements in index order.
type FloatVectorIterator struct {
	it *primVectorIterator[float64]
}

// Iterate returns a fresh, forward-only iterator over fv.
func (fv *FloatVector) Iterate() *FloatVectorIterator {
	return &FloatVectorIterator{it: fv.prim().iterate()}
}

// Next returns the next element and true, or (0, false) once exhausted.
func (it *FloatVectorIterator) Next() (float64, bool) {
	return it.it.next()
}

// ToTransient returns a mutable builder sharing fv's current root, with a
// copy of its tail.
func (fv *FloatVector) ToTransient() *FloatVectorTransient {
	return &FloatVectorTransient{t: toTransientPrim(fv.prim())}
}

// FloatVectorTransient is a mutable builder for FloatVector.
type FloatVectorTransient struct {
	t *primVectorTransient[float64]
}

// Len returns the number of elements currently in the transient.
func (t *FloatVectorTransient) Len() int { return t.t.count }

// Get returns the element at index i.
func (t *FloatVectorTransient) Get(i int) (float64, error) { return t.t.get(i) }

// ConjMut converts x to float64 and appends it in place.
func (t *FloatVectorTransient) ConjMut(x any) (*FloatVectorTransient, error) {
	f, err := toFloat64(x)
	if err != nil {
		return nil, err
	}
	if err := t.t.conjMut(f); err != nil {
		return nil, err
	}
	return t, nil
}

// AssocMut converts x to float64 and sets it at index i in place.
func (t *FloatVectorTransient) AssocMut(i int, x any) (*FloatVectorTransient, error) {
	f, err := toFloat64(x)
	if err != nil {
		return nil, err
	}
	if err := t.t.assocMut(i, f); err != nil {
		return nil, err
	}
	return t, nil
}

// PopMut removes the last element in place.
func (t *FloatVectorTransient) PopMut() (*FloatVectorTransient, error) {
	if err := t.t.popMut(); err != nil {
		return nil, err
	}
	return t, nil
}

// Persistent freezes the transient and returns the FloatVector it built.
func (t *FloatVectorTransient) Persistent() (*FloatVector, error) {
	v, err := t.t.persistent()
	if err != nil {
		return nil, err
	}
	return &FloatVector{v: v}, nil
}
