package spork

import "fmt"

// SortedVectorTransient is a mutable builder for SortedVector. Nodes
// stamped with its edit token are mutated in place; every other node is
// cloned on first write (spec §4.6).
type SortedVectorTransient struct {
	root    *sortedNode
	count   int
	keyFn   func(any) (any, error)
	reverse bool
	edit    *editToken // nil once frozen
}

func (t *SortedVectorTransient) checkLive() error {
	if t.edit == nil {
		return ErrUseAfterFreeze
	}
	return nil
}

// Len returns the number of elements currently in the transient.
func (t *SortedVectorTransient) Len() int {
	return t.count
}

func (t *SortedVectorTransient) keyOf(value any) (any, error) {
	if t.keyFn == nil {
		return value, nil
	}
	key, err := t.keyFn(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrComparison, err)
	}
	return key, nil
}

func (t *SortedVectorTransient) cmp(a, b any) (int, error) {
	c, err := defaultCompare(a, b)
	if err != nil {
		return 0, err
	}
	if t.reverse {
		return -c, nil
	}
	return c, nil
}

// ConjMut inserts value in place and returns t for chaining.
func (t *SortedVectorTransient) ConjMut(value any) (*SortedVectorTransient, error) {
	if err := t.checkLive(); err != nil {
		return nil, err
	}
	key, err := t.keyOf(value)
	if err != nil {
		return nil, err
	}
	newRoot, err := insertNode(t.root, value, key, t.cmp, t.edit)
	if err != nil {
		return nil, err
	}
	newRoot = newRoot.editableNode(t.edit)
	newRoot.red = false
	t.root = newRoot
	t.count++
	return t, nil
}

// DisjMut removes the entry matching value's key and value in place and
// returns t for chaining.
func (t *SortedVectorTransient) DisjMut(value any) (*SortedVectorTransient, error) {
	if err := t.checkLive(); err != nil {
		return nil, err
	}
	if t.root == nil {
		return t, nil
	}
	key, err := t.keyOf(value)
	if err != nil {
		return nil, err
	}
	present, err := containsKeyValue(t.root, key, value, t.cmp)
	if err != nil {
		return nil, err
	}
	if !present {
		return t, nil
	}
	newRoot, removed, err := deleteNode(t.root, key, value, t.cmp, t.edit)
	if err != nil {
		return nil, err
	}
	if !removed {
		return t, nil
	}
	if newRoot != nil {
		newRoot = newRoot.editableNode(t.edit)
		newRoot.red = false
	}
	t.root = newRoot
	t.count--
	return t, nil
}

// Persistent freezes the transient, clearing its edit token, and returns
// the SortedVector it built.
func (t *SortedVectorTransient) Persistent() (*SortedVector, error) {
	if err := t.checkLive(); err != nil {
		return nil, err
	}
	sv := &SortedVector{root: t.root, count: t.count, keyFn: t.keyFn, reverse: t.reverse}
	t.edit = nil
	return sv, nil
}
