package valuegeneration

import (
	"iter"
	"strconv"
)

// NumberRangeSource is a ValueSource producing base-10 integers from a Range.
//
// For an ascending range (Start <= End) it yields Start, Start+increment, ... strictly below End. For a descending
// range it yields the ascending stepped sequence over [End, Start) in reverse, unless stepwiseDescent is set, in which
// case it counts down from Start by increment while staying above End.
type NumberRangeSource struct {
	bounds          Range[int64]
	increment       uint64
	stepwiseDescent bool
}

// NewNumberRangeSource creates a NumberRangeSource. An increment of zero is treated as one.
func NewNumberRangeSource(bounds Range[int64], increment uint64, stepwiseDescent bool) *NumberRangeSource {
	if increment == 0 {
		increment = 1
	}
	return &NumberRangeSource{
		bounds:          bounds,
		increment:       increment,
		stepwiseDescent: stepwiseDescent,
	}
}

// Numbers returns the integer sequence before it is rendered to strings.
func (s *NumberRangeSource) Numbers() iter.Seq[int64] {
	if s.bounds.Start <= s.bounds.End {
		return SteppedSequence(s.bounds.Start, s.bounds.End, s.increment)
	}
	if s.stepwiseDescent {
		return DescendingSequence(s.bounds.Start, s.bounds.End, s.increment)
	}
	return ReversedSteppedSequence(s.bounds.End, s.bounds.Start, s.increment)
}

// Values returns the numbers of the range rendered as base-10 strings.
func (s *NumberRangeSource) Values() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for n := range s.Numbers() {
			if !yield(strconv.FormatInt(n, 10), nil) {
				return
			}
		}
	}
}

// String describes the source.
func (s *NumberRangeSource) String() string {
	return "number range " + s.bounds.String() + " (increment " + strconv.FormatUint(s.increment, 10) + ")"
}
