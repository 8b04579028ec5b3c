package valuegeneration

import (
	"iter"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// StringRangeFill is the character repeated to build string range candidates.
const StringRangeFill = "A"

// ErrStringTooLong is yielded when a string range candidate would be longer than the platform can represent.
var ErrStringTooLong = errors.New("string range candidate length overflows")

// StringRangeSource is a ValueSource producing strings of repeated StringRangeFill characters. For every n in the
// stepped sequence over [Start, End) it yields a string of length Start+n.
type StringRangeSource struct {
	bounds    Range[uint64]
	increment uint64
}

// NewStringRangeSource creates a StringRangeSource. An increment of zero is treated as one.
func NewStringRangeSource(bounds Range[uint64], increment uint64) *StringRangeSource {
	if increment == 0 {
		increment = 1
	}
	return &StringRangeSource{
		bounds:    bounds,
		increment: increment,
	}
}

// Lengths returns the lengths of the strings the source yields.
func (s *StringRangeSource) Lengths() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for n := range SteppedSequence(s.bounds.Start, s.bounds.End, s.increment) {
			if !yield(s.bounds.Start + n) {
				return
			}
		}
	}
}

// Values returns the repeated-character strings of the range.
func (s *StringRangeSource) Values() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for n := range SteppedSequence(s.bounds.Start, s.bounds.End, s.increment) {
			if s.bounds.Start > math.MaxInt || n > math.MaxInt-s.bounds.Start {
				yield("", errors.Wrapf(ErrStringTooLong, "start %d + %d", s.bounds.Start, n))
				return
			}
			if !yield(strings.Repeat(StringRangeFill, int(s.bounds.Start+n)), nil) {
				return
			}
		}
	}
}

// String describes the source.
func (s *StringRangeSource) String() string {
	return "string range " + s.bounds.String() + " (increment " + strconv.FormatUint(s.increment, 10) + ")"
}
