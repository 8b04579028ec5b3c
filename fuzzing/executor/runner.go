package executor

import (
	"os/exec"
	"time"

	"github.com/crytic/clif/utils"
	"github.com/pkg/errors"
)

// ProcessResult describes a process that was started and ran to completion.
type ProcessResult struct {
	// Stdout and Stderr hold the captured output streams.
	Stdout []byte
	Stderr []byte

	// ExitCode holds the exit code of the process, or -1 if it was terminated by a signal.
	ExitCode int

	// Status describes the exit status in human-readable form.
	Status string

	// Duration describes how long the process ran.
	Duration time.Duration
}

// Success reports whether the process exited with a success status.
func (r *ProcessResult) Success() bool {
	return r.ExitCode == 0
}

// ProcessRunner describes a capability to run an executable with a list of arguments and wait for it to finish.
// Run returns an error only if the process could not be started; a process exiting with a non-success status is
// described by the returned ProcessResult.
type ProcessRunner interface {
	Run(executable string, args []string) (*ProcessResult, error)
}

// ExecRunner is a ProcessRunner which spawns real processes. Arguments are passed as-is, without a shell. The
// environment is inherited from the current process. Run blocks until the process exits; there is no timeout.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run spawns executable with args, capturing standard output and standard error separately.
func (r *ExecRunner) Run(executable string, args []string) (*ProcessResult, error) {
	command := exec.Command(executable, args...)

	output, err := utils.RunCommandWithOutput(command)
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, errors.WithStack(err)
		}
	}

	return &ProcessResult{
		Stdout:   output.Stdout,
		Stderr:   output.Stderr,
		ExitCode: command.ProcessState.ExitCode(),
		Status:   command.ProcessState.String(),
		Duration: output.Duration,
	}, nil
}
