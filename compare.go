package spork

import "fmt"

// Comparer lets a caller-supplied type participate in the ordering
// protocol SortedVector relies on for its sort key. If a value implements
// Comparer its method is used instead of the default host ordering; an
// error returned from it is wrapped in ErrComparison and propagated
// unchanged to the caller (spec §9, "hash/equality callbacks").
type Comparer interface {
	SporkCompare(other any) (int, error)
}

// defaultCompare orders the handful of built-in kinds SortedVector needs
// to support directly when no key function supplies a Comparer: numeric
// kinds (compared as float64) and strings. Anything else, or a type
// mismatch between a and b, fails with ErrComparison.
func defaultCompare(a, b any) (int, error) {
	if c, ok := a.(Comparer); ok {
		r, err := c.SporkCompare(b)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrComparison, err)
		}
		return r, nil
	}

	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		if !ok {
			return 0, fmt.Errorf("%w: cannot compare %T with %T", ErrComparison, a, b)
		}
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		default:
			return 0, nil
		}
	}

	af, aok := numericValue(a)
	bf, bok := numericValue(b)
	if !aok || !bok {
		return 0, fmt.Errorf("%w: cannot compare %T with %T", ErrComparison, a, b)
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	default:
		return 0, nil
	}
}

func numericValue(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
