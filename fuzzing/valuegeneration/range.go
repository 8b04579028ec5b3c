package valuegeneration

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// RangeSeparator separates the two bounds of a range string such as "1..10".
const RangeSeparator = ".."

// ErrInvalidRange is returned when a range string does not consist of exactly two parts separated by RangeSeparator.
var ErrInvalidRange = errors.New("not a range")

// Range describes a pair of integer bounds as provided by the user. Start may be greater than End.
type Range[T constraints.Integer] struct {
	Start T
	End   T
}

// String returns the range in its "start..end" form.
func (r Range[T]) String() string {
	return fmt.Sprintf("%d%s%d", r.Start, RangeSeparator, r.End)
}

// ParseNumberRange parses a "<int>..<int>" string into a signed Range.
func ParseNumberRange(s string) (Range[int64], error) {
	return parseRange(s, func(part string) (int64, error) {
		return strconv.ParseInt(part, 10, 64)
	})
}

// ParseStringRange parses a "<uint>..<uint>" string into an unsigned Range.
func ParseStringRange(s string) (Range[uint64], error) {
	return parseRange(s, func(part string) (uint64, error) {
		return strconv.ParseUint(part, 10, 64)
	})
}

func parseRange[T constraints.Integer](s string, parse func(string) (T, error)) (Range[T], error) {
	parts := strings.Split(s, RangeSeparator)
	if len(parts) != 2 {
		return Range[T]{}, errors.Wrapf(ErrInvalidRange, "unable to parse the following value: %q", s)
	}

	start, err := parse(parts[0])
	if err != nil {
		return Range[T]{}, errors.Wrapf(err, "unable to parse the start of range %q", s)
	}
	end, err := parse(parts[1])
	if err != nil {
		return Range[T]{}, errors.Wrapf(err, "unable to parse the end of range %q", s)
	}
	return Range[T]{Start: start, End: end}, nil
}
