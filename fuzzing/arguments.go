package fuzzing

import (
	"fmt"
	"strings"

	"github.com/crytic/clif/fuzzing/config"
	"github.com/kballard/go-shellquote"
)

// ArgumentSplitError describes an argument template which could not be split into words after the candidate was
// substituted into it, typically because of unbalanced quotes or a trailing escape.
type ArgumentSplitError struct {
	// Arguments holds the substituted argument string which failed to split.
	Arguments string

	// Err holds the underlying shell word splitting error.
	Err error
}

// Error returns the error message string, implementing the `error` interface.
func (e *ArgumentSplitError) Error() string {
	return fmt.Sprintf("unable to split arguments %q: %v", e.Arguments, e.Err)
}

// Unwrap returns the underlying splitting error.
func (e *ArgumentSplitError) Unwrap() error {
	return e.Err
}

// BuildArgumentList builds the argument list for one invocation of the target.
//
// If template contains config.PlaceholderToken, every occurrence is replaced by candidate and the result is split
// using POSIX shell word rules (quotes and escapes are honored, nothing is expanded). Otherwise, including when
// template is empty, the candidate is the only argument.
//
// If splitting fails, an empty, non-nil list is returned alongside an *ArgumentSplitError so that callers can tell a
// failed split from an intentionally empty list.
func BuildArgumentList(template string, candidate string) ([]string, error) {
	if !strings.Contains(template, config.PlaceholderToken) {
		return []string{candidate}, nil
	}

	substituted := strings.ReplaceAll(template, config.PlaceholderToken, candidate)
	args, err := shellquote.Split(substituted)
	if err != nil {
		return []string{}, &ArgumentSplitError{Arguments: substituted, Err: err}
	}
	if args == nil {
		args = []string{}
	}
	return args, nil
}
