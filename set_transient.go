package spork

// SetTransient is a mutable builder for HashSet. Nodes stamped with its
// edit token are mutated in place; every other node is cloned on first
// write (spec §4.6).
type SetTransient struct {
	count int
	root  hamtNode
	edit  *editToken // nil once frozen
}

func (t *SetTransient) checkLive() error {
	if t.edit == nil {
		return ErrUseAfterFreeze
	}
	return nil
}

// Len returns the number of elements currently in the transient.
func (t *SetTransient) Len() int {
	return t.count
}

// Contains reports whether x is a member of the transient.
func (t *SetTransient) Contains(x any) (bool, error) {
	if t.root == nil {
		return false, nil
	}
	h, err := hashValue(x)
	if err != nil {
		return false, err
	}
	_, ok, err := t.root.find(0, h, x)
	return ok, err
}

// ConjMut adds x in place and returns t for chaining.
func (t *SetTransient) ConjMut(x any) (*SetTransient, error) {
	if err := t.checkLive(); err != nil {
		return nil, err
	}
	h, err := hashValue(x)
	if err != nil {
		return nil, err
	}
	root := t.root
	if root == nil {
		root = emptyBitmapNode
	}
	newRoot, added, err := root.assoc(0, h, x, setMember{}, t.edit)
	if err != nil {
		return nil, err
	}
	t.root = newRoot
	if added {
		t.count++
	}
	return t, nil
}

// DisjMut removes x in place and returns t for chaining.
func (t *SetTransient) DisjMut(x any) (*SetTransient, error) {
	if err := t.checkLive(); err != nil {
		return nil, err
	}
	if t.root == nil {
		return t, nil
	}
	h, err := hashValue(x)
	if err != nil {
		return nil, err
	}
	newRoot, removed, err := t.root.dissoc(0, h, x, t.edit)
	if err != nil {
		return nil, err
	}
	if removed {
		t.count--
	}
	t.root = newRoot
	return t, nil
}

// Persistent freezes the transient, clearing its edit token, and returns
// the HashSet it built.
func (t *SetTransient) Persistent() (*HashSet, error) {
	if err := t.checkLive(); err != nil {
		return nil, err
	}
	s := &HashSet{count: t.count, root: t.root}
	t.edit = nil
	if s.count == 0 {
		return emptyHashSet, nil
	}
	return s, nil
}
