package valuegeneration

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSteppedSequence checks the half-open stepped sequence and its length against ceil((end-start)/step).
func TestSteppedSequence(t *testing.T) {
	testCases := []struct {
		start, end int64
		step       uint64
		expected   []int64
	}{
		{0, 5, 1, []int64{0, 1, 2, 3, 4}},
		{0, 10, 3, []int64{0, 3, 6, 9}},
		{-5, 5, 4, []int64{-5, -1, 3}},
		{1, 2, 100, []int64{1}},
		{3, 3, 1, nil},
		{5, 3, 1, nil},
		{0, 5, 0, nil},
	}

	for _, tc := range testCases {
		got := slices.Collect(SteppedSequence(tc.start, tc.end, tc.step))
		assert.Equal(t, tc.expected, got, "start=%d end=%d step=%d", tc.start, tc.end, tc.step)
		if tc.step > 0 && tc.start < tc.end {
			expectedLen := int(math.Ceil(float64(tc.end-tc.start) / float64(tc.step)))
			assert.Len(t, got, expectedLen)
		}
	}
}

// TestSteppedSequenceBounds ensures stepping near the limits of the integer type does not wrap around.
func TestSteppedSequenceBounds(t *testing.T) {
	got := slices.Collect(SteppedSequence[int64](math.MaxInt64-3, math.MaxInt64, 2))
	assert.Equal(t, []int64{math.MaxInt64 - 3, math.MaxInt64 - 1}, got)

	got = slices.Collect(SteppedSequence[int64](math.MinInt64, math.MaxInt64, math.MaxUint64))
	assert.Equal(t, []int64{math.MinInt64}, got)

	gotSmall := slices.Collect(SteppedSequence[int8](120, 127, 5))
	assert.Equal(t, []int8{120, 125}, gotSmall)
}

// TestReversedSteppedSequence verifies the reversed sequence is built from the ascending one, not by stepping down
// from the upper bound.
func TestReversedSteppedSequence(t *testing.T) {
	// [2, 10) by 3 is 2, 5, 8, so the reverse starts at 8 and not at 9
	got := slices.Collect(ReversedSteppedSequence[int64](2, 10, 3))
	assert.Equal(t, []int64{8, 5, 2}, got)

	ascending := slices.Collect(SteppedSequence[int64](-7, 13, 4))
	slices.Reverse(ascending)
	assert.Equal(t, ascending, slices.Collect(ReversedSteppedSequence[int64](-7, 13, 4)))

	assert.Empty(t, slices.Collect(ReversedSteppedSequence[int64](4, 4, 1)))
}

// TestDescendingSequence checks the stepwise countdown used by the corrected descending mode.
func TestDescendingSequence(t *testing.T) {
	assert.Equal(t, []int64{10, 7, 4}, slices.Collect(DescendingSequence[int64](10, 2, 3)))
	assert.Equal(t, []int64{3, 2, 1, 0, -1}, slices.Collect(DescendingSequence[int64](3, -2, 1)))
	assert.Empty(t, slices.Collect(DescendingSequence[int64](2, 10, 1)))
}

// TestSequenceEarlyStop makes sure the sequences honor a consumer that stops iterating.
func TestSequenceEarlyStop(t *testing.T) {
	var seen []int64
	for v := range SteppedSequence[int64](0, 100, 1) {
		if v == 3 {
			break
		}
		seen = append(seen, v)
	}
	assert.Equal(t, []int64{0, 1, 2}, seen)
}
