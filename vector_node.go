package spork

// Vector branch width and shift constants (spec §4.2).
const (
	vecW = 32 // branch width
	vecB = 5  // shift step, log2(vecW)
	vecM = vecW - 1
)

// vectorNode is a 32-slot trie node for the generic Vector. At shift==0 its
// slots hold elements directly; above that, slots hold *vectorNode children
// or nil. An optional edit token marks nodes created under a live transient,
// which may be mutated in place by that transient only.
type vectorNode struct {
	arr  [vecW]any
	edit *editToken
}

// editableNode returns n if it already carries edit, else a shallow clone
// stamped with edit. This is the copyIfNeeded pattern: nodes from the
// committed snapshot are cloned on first write within a transient, nodes
// already owned by this transient are mutated in place.
func (n *vectorNode) editableNode(edit *editToken) *vectorNode {
	if n != nil && n.edit == edit && edit != nil {
		return n
	}
	nn := &vectorNode{edit: edit}
	if n != nil {
		nn.arr = n.arr
	}
	return nn
}

// newPath builds a spine of height level/vecB with node at the bottom,
// stamping every new node along the way with edit.
func newPath(edit *editToken, level uint, node *vectorNode) *vectorNode {
	if level == 0 {
		return node
	}
	ret := &vectorNode{edit: edit}
	ret.arr[0] = newPath(edit, level-vecB, node)
	return ret
}
