package valuegeneration

import (
	"bufio"
	"io"
	"iter"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/crytic/clif/utils"
	"github.com/pkg/errors"
)

var (
	// ErrWordlistNotFound is returned when the wordlist path does not exist or is not a regular file.
	ErrWordlistNotFound = errors.New("wordlist not found")

	// ErrInvalidWordlistEncoding is yielded when a wordlist line is not valid UTF-8.
	ErrInvalidWordlistEncoding = errors.New("wordlist line is not valid UTF-8")
)

// WordlistSource is a ValueSource yielding the lines of a file, in file order, without their line terminators.
// Lines are streamed: the file is never loaded in memory as a whole.
type WordlistSource struct {
	path string
}

// NewWordlistSource creates a WordlistSource for the file at path. Returns ErrWordlistNotFound if the path does not
// refer to a regular file.
func NewWordlistSource(path string) (*WordlistSource, error) {
	if !utils.IsRegularFile(path) {
		return nil, errors.Wrapf(ErrWordlistNotFound, "file %q", path)
	}
	return &WordlistSource{path: path}, nil
}

// Values opens the wordlist and yields its lines. The file is closed once the sequence is exhausted, an error is
// yielded, or the consumer stops iterating.
func (s *WordlistSource) Values() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		file, err := os.Open(s.path)
		if err != nil {
			yield("", errors.WithStack(err))
			return
		}
		defer file.Close()

		reader := bufio.NewReader(file)
		for lineNumber := 1; ; lineNumber++ {
			line, err := reader.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				yield("", errors.Wrapf(err, "failed to read line %d of %q", lineNumber, s.path))
				return
			}

			// A trailing newline does not start an extra, empty line
			if line == "" && err != nil {
				return
			}

			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			if !utf8.ValidString(line) {
				yield("", errors.Wrapf(ErrInvalidWordlistEncoding, "line %d of %q", lineNumber, s.path))
				return
			}
			if !yield(line, nil) {
				return
			}

			if err != nil {
				return
			}
		}
	}
}

// String describes the source.
func (s *WordlistSource) String() string {
	return "wordlist " + s.path
}
