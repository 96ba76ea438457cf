package spork

// sortedNode is a left-leaning red-black tree node with a subtree-size
// annotation (spec §4.5). Color is encoded as red bool; black is the
// zero value.
type sortedNode struct {
	value any
	key   any
	left  *sortedNode
	right *sortedNode
	size  int
	red   bool
	edit  *editToken
}

func sortedSize(n *sortedNode) int {
	if n == nil {
		return 0
	}
	return n.size
}

func isRed(n *sortedNode) bool {
	return n != nil && n.red
}

// editableNode returns n if it already carries edit, else a shallow clone
// stamped with edit, per the copy-on-write pattern shared with vectorNode
// and the HAMT node variants.
func (n *sortedNode) editableNode(edit *editToken) *sortedNode {
	if n != nil && edit != nil && n.edit == edit {
		return n
	}
	nn := &sortedNode{edit: edit}
	if n != nil {
		nn.value = n.value
		nn.key = n.key
		nn.left = n.left
		nn.right = n.right
		nn.size = n.size
		nn.red = n.red
	}
	return nn
}

func rotateLeft(n *sortedNode, edit *editToken) *sortedNode {
	x := n.right.editableNode(edit)
	n = n.editableNode(edit)
	n.right = x.left
	x.left = n
	x.red = n.red
	n.red = true
	x.size = n.size
	n.size = 1 + sortedSize(n.left) + sortedSize(n.right)
	return x
}

func rotateRight(n *sortedNode, edit *editToken) *sortedNode {
	x := n.left.editableNode(edit)
	n = n.editableNode(edit)
	n.left = x.right
	x.right = n
	x.red = n.red
	n.red = true
	x.size = n.size
	n.size = 1 + sortedSize(n.left) + sortedSize(n.right)
	return x
}

func flipColors(n *sortedNode, edit *editToken) *sortedNode {
	n = n.editableNode(edit)
	n.left = n.left.editableNode(edit)
	n.right = n.right.editableNode(edit)
	n.red = !n.red
	n.left.red = !n.left.red
	n.right.red = !n.right.red
	return n
}

// fixUp restores the left-leaning red-black invariants on the way back up
// from an insert or delete (spec §4.5, step 3).
func fixUp(n *sortedNode, edit *editToken) *sortedNode {
	if isRed(n.right) && !isRed(n.left) {
		n = rotateLeft(n, edit)
	}
	if isRed(n.left) && isRed(n.left.left) {
		n = rotateRight(n, edit)
	}
	if isRed(n.left) && isRed(n.right) {
		n = flipColors(n, edit)
	}
	n.size = 1 + sortedSize(n.left) + sortedSize(n.right)
	return n
}

func moveRedLeft(n *sortedNode, edit *editToken) *sortedNode {
	n = flipColors(n, edit)
	if isRed(n.right.left) {
		n.right = rotateRight(n.right, edit)
		n = rotateLeft(n, edit)
		n = flipColors(n, edit)
	}
	return n
}

func moveRedRight(n *sortedNode, edit *editToken) *sortedNode {
	n = flipColors(n, edit)
	if isRed(n.left.left) {
		n = rotateRight(n, edit)
		n = flipColors(n, edit)
	}
	return n
}

// compareFn orders two sort keys, already folding in SortedVector's
// reverse flag.
type compareFn func(a, b any) (int, error)

// insertNode performs the standard LLRB insert (spec §4.5): descend by
// key, equal keys go right, new leaf is red, balance on unwind.
func insertNode(n *sortedNode, value, key any, cmp compareFn, edit *editToken) (*sortedNode, error) {
	if n == nil {
		return &sortedNode{value: value, key: key, red: true, size: 1, edit: edit}, nil
	}
	c, err := cmp(key, n.key)
	if err != nil {
		return nil, err
	}
	n = n.editableNode(edit)
	if c < 0 {
		newLeft, err := insertNode(n.left, value, key, cmp, edit)
		if err != nil {
			return nil, err
		}
		n.left = newLeft
	} else {
		newRight, err := insertNode(n.right, value, key, cmp, edit)
		if err != nil {
			return nil, err
		}
		n.right = newRight
	}
	return fixUp(n, edit), nil
}

func minNode(n *sortedNode) *sortedNode {
	for n.left != nil {
		n = n.left
	}
	return n
}

func deleteMinNode(n *sortedNode, edit *editToken) *sortedNode {
	if n.left == nil {
		return nil
	}
	n = n.editableNode(edit)
	if !isRed(n.left) && !isRed(n.left.left) {
		n = moveRedLeft(n, edit)
	}
	n.left = deleteMinNode(n.left, edit)
	return fixUp(n, edit)
}

// deleteNode performs LLRB deletion matched by key-and-value (spec §4.5).
// Entries with equal keys form a contiguous right-hanging chain off the
// topmost node that holds that key, so a key match that isn't a value
// match simply continues the search rightward.
func deleteNode(n *sortedNode, key, value any, cmp compareFn, edit *editToken) (*sortedNode, bool, error) {
	if n == nil {
		return nil, false, nil
	}
	c, err := cmp(key, n.key)
	if err != nil {
		return nil, false, err
	}

	if c < 0 {
		if n.left == nil {
			return n, false, nil
		}
		n = n.editableNode(edit)
		if !isRed(n.left) && !isRed(n.left.left) {
			n = moveRedLeft(n, edit)
		}
		newLeft, removed, err := deleteNode(n.left, key, value, cmp, edit)
		if err != nil {
			return nil, false, err
		}
		n.left = newLeft
		return fixUp(n, edit), removed, nil
	}

	n = n.editableNode(edit)
	if isRed(n.left) {
		n = rotateRight(n, edit)
	}

	found, err := sameKeyValue(n, key, value, cmp)
	if err != nil {
		return nil, false, err
	}
	if found && n.right == nil {
		return nil, true, nil
	}
	if n.right != nil && !isRed(n.right) && !isRed(n.right.left) {
		n = moveRedRight(n, edit)
		found, err = sameKeyValue(n, key, value, cmp)
		if err != nil {
			return nil, false, err
		}
	}
	if found {
		succ := minNode(n.right)
		n.value = succ.value
		n.key = succ.key
		n.right = deleteMinNode(n.right, edit)
		return fixUp(n, edit), true, nil
	}

	newRight, removed, err := deleteNode(n.right, key, value, cmp, edit)
	if err != nil {
		return nil, false, err
	}
	n.right = newRight
	return fixUp(n, edit), removed, nil
}

func sameKeyValue(n *sortedNode, key, value any, cmp compareFn) (bool, error) {
	c, err := cmp(key, n.key)
	if err != nil || c != 0 {
		return false, err
	}
	return valuesEqual(value, n.value)
}

// containsKeyValue reports whether a node matching both key and value
// exists. The classic LLRB delete walk assumes its target is present
// (dereferencing children unconditionally along the way), so callers must
// check this first and leave the tree untouched when it's false.
func containsKeyValue(n *sortedNode, key, value any, cmp compareFn) (bool, error) {
	for n != nil {
		c, err := cmp(key, n.key)
		if err != nil {
			return false, err
		}
		if c < 0 {
			n = n.left
			continue
		}
		if c == 0 {
			eq, err := valuesEqual(value, n.value)
			if err != nil {
				return false, err
			}
			if eq {
				return true, nil
			}
		}
		n = n.right
	}
	return false, nil
}

// nthNode finds the i-th node in sorted order using subtree-size
// annotations (spec §4.5, O(log n)).
func nthNode(n *sortedNode, i int) *sortedNode {
	for n != nil {
		l := sortedSize(n.left)
		switch {
		case i < l:
			n = n.left
		case i == l:
			return n
		default:
			i -= l + 1
			n = n.right
		}
	}
	return nil
}
