package valuegeneration

import "iter"

// ValueSource represents a provider of fuzzing candidates. Every candidate is handed to the invocation engine as a
// string, whatever the source generates it from.
type ValueSource interface {
	// Values returns a lazy, finite sequence of candidates. The sequence is meant to be consumed once. A non-nil error
	// is yielded at most once and is always the last element of the sequence.
	Values() iter.Seq2[string, error]

	// String describes the source for logging purposes.
	String() string
}

// EmptySource is a ValueSource which produces no candidates.
type EmptySource struct{}

// Values returns an empty sequence.
func (EmptySource) Values() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {}
}

// String describes the source.
func (EmptySource) String() string {
	return "empty"
}
