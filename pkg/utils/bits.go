package utils

import (
	"golang.org/x/exp/constraints"
)

// Returns an all ones bitmask of n bits of the given unsigned integer type
func AllOnes[T constraints.Unsigned](bits int) T {
	return (T(1) << bits) - T(1)
}

// Implements a write view over an unsigned integer, allowing manipulating individual bits easily
type BitView[T constraints.Unsigned] struct {
	Bits *T
}

// Copies a value into a range of bits, given the start and width of the range.
// All most significant bits of the value not fitting into the destination range are ignored.
func (v BitView[T]) Write(value T, bit int, width int) {
	mask := AllOnes[T](width)
	*v.Bits = (*v.Bits &^ (mask << bit)) | ((value & mask) << bit)
}

// Sets a bit to 1 if set is true, to 0 otherwise
func (v BitView[T]) SetBitTo(bit int, set bool) {
	if set {
		v.Write(1, bit, 1)
	} else {
		v.Write(0, bit, 1)
	}
}

// Creates a bit view out of an unsigned int
func CreateBitView[T constraints.Unsigned](value *T) BitView[T] {
	return BitView[T]{
		Bits: value,
	}
}
