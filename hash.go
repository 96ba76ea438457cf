package spork

import (
	"fmt"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Hasher lets a caller-supplied type participate in the hashing protocol
// the HAMT and Vector families rely on. If a value implements Hasher its
// Hash method is used instead of the default host hash; an error returned
// from it is wrapped in ErrHash and propagated unchanged to the caller, per
// spec §9 ("hash/equality callbacks ... errors surfaced to the caller
// unchanged").
type Hasher interface {
	SporkHash() (uint64, error)
}

// Equaler lets a caller-supplied type participate in the equality protocol
// used for structural equality and HAMT key comparison.
type Equaler interface {
	SporkEqual(other any) (bool, error)
}

// hashValue computes the 64-bit hash used throughout the trie families. It
// defers to Hasher when implemented, and otherwise hashes the handful of
// built-in kinds the core needs to support directly (nil, bool, strings,
// byte slices, and the integer/float kinds), using xxhash as the default
// host hash function.
func hashValue(v any) (uint64, error) {
	if h, ok := v.(Hasher); ok {
		hv, err := h.SporkHash()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrHash, err)
		}
		return hv, nil
	}

	switch x := v.(type) {
	case nil:
		return 0, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		return xxhash.Sum64String(x), nil
	case []byte:
		return xxhash.Sum64(x), nil
	case int:
		return hashUint64(uint64(x)), nil
	case int8:
		return hashUint64(uint64(x)), nil
	case int16:
		return hashUint64(uint64(x)), nil
	case int32:
		return hashUint64(uint64(x)), nil
	case int64:
		return hashUint64(uint64(x)), nil
	case uint:
		return hashUint64(uint64(x)), nil
	case uint8:
		return hashUint64(uint64(x)), nil
	case uint16:
		return hashUint64(uint64(x)), nil
	case uint32:
		return hashUint64(uint64(x)), nil
	case uint64:
		return hashUint64(x), nil
	case float32:
		return hashFloat64(float64(x)), nil
	case float64:
		return hashFloat64(x), nil
	}

	return 0, fmt.Errorf("%w: type %T has no SporkHash and is not a supported built-in kind", ErrHash, v)
}

// hashUint64 mixes a raw integer value through xxhash so that small ints
// spread across the trie's 5-bit slots instead of colliding at shift 0.
func hashUint64(x uint64) uint64 {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(x >> (8 * i))
	}
	return xxhash.Sum64(buf[:])
}

// hashFloat64 canonicalizes -0.0 to 0.0 before hashing so that, per spec
// §4.3, two zero values of either sign hash identically.
func hashFloat64(f float64) uint64 {
	if f == 0 {
		f = 0
	}
	return hashUint64(math.Float64bits(f))
}

// combine31 folds a running hash with the next element's hash using the
// same 31x combiner the spec mandates for Cons and Vector: h = 31*h + e.
func combine31(h, elem uint64) uint64 {
	return 31*h + elem
}

// valuesEqual implements the equality protocol used for key comparison and
// structural equality: Equaler when implemented, else built-in comparison
// for supported kinds, else reflect.DeepEqual as the host-level fallback.
func valuesEqual(a, b any) (bool, error) {
	if e, ok := a.(Equaler); ok {
		eq, err := e.SporkEqual(b)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrComparison, err)
		}
		return eq, nil
	}
	if e, ok := b.(Equaler); ok {
		eq, err := e.SporkEqual(a)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrComparison, err)
		}
		return eq, nil
	}

	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv, nil
		}
		return false, nil
	case float32:
		if bv, ok := b.(float32); ok {
			return av == bv, nil
		}
		return false, nil
	}

	if isComparable(a) && isComparable(b) {
		return a == b, nil
	}
	return reflect.DeepEqual(a, b), nil
}

func isComparable(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Comparable()
}
