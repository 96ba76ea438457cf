package spork

import "errors"

// Sentinel error kinds. Most are returned wrapped with additional context via
// fmt.Errorf("%w: ...", ...); ErrEmpty and ErrUseAfterFreeze are returned
// bare. Either way callers can match with errors.Is.
var (
	// ErrOutOfRange is returned when an index falls outside [0, count) (or
	// [0, count] for assoc/insert-at-end operations).
	ErrOutOfRange = errors.New("spork: index out of range")

	// ErrEmpty is returned by Pop/First/Last on an empty structure.
	ErrEmpty = errors.New("spork: operation on empty structure")

	// ErrKeyMissing is returned by the subscript form of map lookup when no
	// default is supplied and the key isn't present.
	ErrKeyMissing = errors.New("spork: key not found")

	// ErrTypeMismatch is returned when a primitive vector is given a value
	// that can't be converted to its element type without losing information.
	ErrTypeMismatch = errors.New("spork: value not convertible to element type")

	// ErrArityError is returned by hash_map-style constructors given an odd
	// number of key/value arguments.
	ErrArityError = errors.New("spork: odd number of key/value arguments")

	// ErrUseAfterFreeze is returned by any mutating call on a transient after
	// Persistent has been called on it.
	ErrUseAfterFreeze = errors.New("spork: transient used after Persistent()")

	// ErrHash wraps a failure from a user-supplied hash callback.
	ErrHash = errors.New("spork: hash callback failed")

	// ErrComparison wraps a failure from a user-supplied comparison or key
	// callback.
	ErrComparison = errors.New("spork: comparison callback failed")
)
