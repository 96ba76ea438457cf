package spork

import "sync"

// Cons is an immutable singly-linked list cell. The empty list is the nil
// *Cons; every non-nil *Cons pairs a first element with a rest that is
// either another Cons or nil. Cons cells are created only by NewCons and
// Prepend and are never mutated after construction, so a *Cons is safe to share across
// goroutines without synchronization.
type Cons struct {
	first any
	rest  *Cons

	hashOnce sync.Once
	hashVal  uint64
	hashErr  error
}

// NewCons builds a cons cell with the given first element and rest.
func NewCons(first any, rest *Cons) *Cons {
	return &Cons{first: first, rest: rest}
}

// Prepend returns a new Cons with x as its first element and c as its rest.
// c itself, and every cell reachable from it, is left unchanged.
func (c *Cons) Prepend(x any) *Cons {
	return &Cons{first: x, rest: c}
}

// First returns the cell's first element. ok is false only when c is nil.
func (c *Cons) First() (any, bool) {
	if c == nil {
		return nil, false
	}
	return c.first, true
}

// Rest returns the cell's rest, which is nil for the last cell in a chain.
func (c *Cons) Rest() *Cons {
	if c == nil {
		return nil
	}
	return c.rest
}

// Len returns the number of cells in the chain starting at c, by linear
// traversal.
func (c *Cons) Len() int {
	n := 0
	for cur := c; cur != nil; cur = cur.rest {
		n++
	}
	return n
}

// Equal reports whether c and other have the same length and pairwise-equal
// elements, following both rest chains in lockstep.
func (c *Cons) Equal(other *Cons) (bool, error) {
	a, b := c, other
	for a != nil && b != nil {
		eq, err := valuesEqual(a.first, b.first)
		if err != nil {
			return false, err
		}
		if !eq {
			return false, nil
		}
		a, b = a.rest, b.rest
	}
	return a == nil && b == nil, nil
}

// Hash returns the ordered sequence hash h = 0; for each element e (from
// first to last): h = 31*h + hash(e). The result is memoized on first call.
func (c *Cons) Hash() (uint64, error) {
	if c == nil {
		return 0, nil
	}
	c.hashOnce.Do(func() {
		var h uint64
		for cur := c; cur != nil; cur = cur.rest {
			eh, err := hashValue(cur.first)
			if err != nil {
				c.hashErr = err
				return
			}
			h = combine31(h, eh)
		}
		c.hashVal = h
	})
	return c.hashVal, c.hashErr
}

// ConsIterator yields the elements of a Cons chain from first to last. It is
// forward-only, single-pass, and non-restartable: obtain a fresh one from
// Iterate to traverse again.
type ConsIterator struct {
	cur *Cons
}

// Iterate returns a fresh, non-restartable iterator over c's elements.
func (c *Cons) Iterate() *ConsIterator {
	return &ConsIterator{cur: c}
}

// Next returns the next element and true, or (nil, false) once exhausted.
func (it *ConsIterator) Next() (any, bool) {
	if it.cur == nil {
		return nil, false
	}
	v := it.cur.first
	it.cur = it.cur.rest
	return v, true
}

// ToSlice drains c into a new []any in order, leaving c unchanged.
func (c *Cons) ToSlice() []any {
	out := make([]any, 0, c.Len())
	it := c.Iterate()
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}
