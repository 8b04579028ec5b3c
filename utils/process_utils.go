package utils

import (
	"bytes"
	"os/exec"
	"runtime"
	"time"
)

// CommandOutput describes the output captured from a command which ran to completion.
type CommandOutput struct {
	// Stdout and Stderr hold each stream separately.
	Stdout []byte
	Stderr []byte

	// Duration describes the wall-clock time between starting the command and it exiting.
	Duration time.Duration
}

// RunCommandWithOutput runs command and captures its standard output and standard error. The returned error is the
// one from exec.Cmd.Run: an *exec.ExitError still comes with the captured output, any other error means the command
// could not be started.
func RunCommandWithOutput(command *exec.Cmd) (*CommandOutput, error) {
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	start := time.Now()
	err := command.Run()
	output := &CommandOutput{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}
	return output, err
}

// IsWindowsEnvironment returns a boolean indicating whether the current execution environment is a Windows platform.
func IsWindowsEnvironment() bool {
	return runtime.GOOS == "windows"
}
