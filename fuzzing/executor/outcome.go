package executor

import (
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// OutcomeKind describes how a single invocation of the target ended.
type OutcomeKind int

const (
	// OutcomeSuccess indicates the target started and exited with a success status.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeFailure indicates the target started and exited with a non-success status or was killed by a signal.
	OutcomeFailure
	// OutcomeSpawnError indicates the target could not be started or its output could not be decoded as text.
	OutcomeSpawnError
)

// String returns the name of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeSpawnError:
		return "spawn error"
	default:
		return "unknown"
	}
}

// ErrInvalidOutputEncoding is used when the captured output of the target is not valid UTF-8.
var ErrInvalidOutputEncoding = errors.New("captured output is not valid UTF-8")

// InvocationOutcome describes the classified result of one invocation. It is reported and then discarded.
type InvocationOutcome struct {
	// Kind describes how the invocation ended.
	Kind OutcomeKind

	// Payload holds the decoded standard output for OutcomeSuccess, the decoded standard error for OutcomeFailure,
	// and the failure description for OutcomeSpawnError.
	Payload string

	// Status describes the process exit status, such as "exit status 1" or "signal: segmentation fault". It is empty
	// if the process never started.
	Status string

	// ExitCode holds the exit code of the process, or -1 if it did not exit normally or never started.
	ExitCode int

	// Duration describes how long the process ran.
	Duration time.Duration
}

// Succeeded reports whether the outcome is an OutcomeSuccess.
func (o InvocationOutcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess
}

// Classify turns the result of a ProcessRunner into an InvocationOutcome. A non-nil runErr means the process could not
// be started. Output that is not valid UTF-8 makes the invocation an OutcomeSpawnError, unless lossy is set, in which
// case invalid sequences are replaced by the Unicode replacement character.
func Classify(result *ProcessResult, runErr error, lossy bool) InvocationOutcome {
	if runErr != nil || result == nil {
		if runErr == nil {
			runErr = errors.New("process runner returned no result")
		}
		return InvocationOutcome{
			Kind:     OutcomeSpawnError,
			Payload:  runErr.Error(),
			ExitCode: -1,
		}
	}

	outcome := InvocationOutcome{
		Kind:     OutcomeSuccess,
		Status:   result.Status,
		ExitCode: result.ExitCode,
		Duration: result.Duration,
	}
	captured := result.Stdout
	if !result.Success() {
		outcome.Kind = OutcomeFailure
		captured = result.Stderr
	}

	payload, err := decodeOutput(captured, lossy)
	if err != nil {
		outcome.Kind = OutcomeSpawnError
		outcome.Payload = err.Error()
		return outcome
	}
	outcome.Payload = payload
	return outcome
}

// decodeOutput converts captured process output to a string.
func decodeOutput(b []byte, lossy bool) (string, error) {
	if utf8.Valid(b) {
		return string(b), nil
	}
	if lossy {
		return string([]rune(string(b))), nil
	}
	return "", errors.Wrapf(ErrInvalidOutputEncoding, "invalid byte sequence in %d bytes of output", len(b))
}
