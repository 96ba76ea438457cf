package spork

import "github.com/samber/lo"

// NewHashSetFromSlice builds a HashSet from a slice that may contain
// duplicates, deduplicating up front with lo.Uniq before inserting. This
// is a convenience constructor for the common case of set-ifying a
// collected slice of results.
func NewHashSetFromSlice(elements []any) (*HashSet, error) {
	return NewHashSet(lo.Uniq(elements)...)
}

// Keys returns m's keys as a slice, in m's Range iteration order.
// Intended for caller convenience only; large maps should prefer Range.
func (m *HashMap) Keys() []any {
	out := make([]any, 0, m.Len())
	m.Range(func(k, v any) bool {
		out = append(out, k)
		return true
	})
	return out
}
