package spork

// editToken is the reference-identity handle a transient stamps on the
// nodes it owns. A node is editable in place iff its stored token is the
// same *editToken as the transient currently mutating it; every other node
// must be cloned before it can be written. Per spec design note this is the
// Go analogue of Clojure's AtomicReference<Thread> edit field or Rust's
// Arc<()>: any freshly heap-allocated value compared by pointer identity
// suffices.
type editToken struct{}

// newEditToken returns a fresh token, distinct from every other token that
// has ever existed, by virtue of being a new allocation.
func newEditToken() *editToken {
	return new(editToken)
}
