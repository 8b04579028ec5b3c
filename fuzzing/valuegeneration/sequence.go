package valuegeneration

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// steppedCount returns how many elements the half-open stepped sequence start, start+step, ... < end contains.
// The arithmetic is done on uint64 so that the full range of any integer type can be covered without overflow.
func steppedCount[T constraints.Integer](start T, end T, step uint64) uint64 {
	if step == 0 || start >= end {
		return 0
	}
	distance := uint64(end) - uint64(start)
	return (distance-1)/step + 1
}

// SteppedSequence returns the half-open stepped sequence start, start+step, start+2*step, ... strictly less than end.
// The sequence is empty if start >= end or step is zero.
func SteppedSequence[T constraints.Integer](start T, end T, step uint64) iter.Seq[T] {
	return func(yield func(T) bool) {
		count := steppedCount(start, end, step)
		for i := uint64(0); i < count; i++ {
			if !yield(T(uint64(start) + i*step)) {
				return
			}
		}
	}
}

// ReversedSteppedSequence returns the elements of SteppedSequence(start, end, step) in reverse order: it begins at the
// largest stepped value below end and finishes at start. This is not the same as counting down from end by step.
func ReversedSteppedSequence[T constraints.Integer](start T, end T, step uint64) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := steppedCount(start, end, step); i > 0; i-- {
			if !yield(T(uint64(start) + (i-1)*step)) {
				return
			}
		}
	}
}

// DescendingSequence returns start, start-step, start-2*step, ... strictly greater than end.
// The sequence is empty if start <= end or step is zero.
func DescendingSequence[T constraints.Integer](start T, end T, step uint64) iter.Seq[T] {
	return func(yield func(T) bool) {
		count := steppedCount(end, start, step)
		for i := uint64(0); i < count; i++ {
			if !yield(T(uint64(start) - i*step)) {
				return
			}
		}
	}
}
