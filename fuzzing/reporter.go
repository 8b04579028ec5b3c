package fuzzing

import (
	"fmt"
	"io"
	"strings"

	"github.com/crytic/clif/logging/colors"
	"github.com/pkg/errors"
)

// ConsoleReporter prints the human-facing progress and result lines of a Fuzzer run. The lines are written as-is and
// are not log events.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a ConsoleReporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// Attach subscribes the reporter to the execution events of fuzzer.
func (r *ConsoleReporter) Attach(fuzzer *Fuzzer) {
	fuzzer.Events.ExecutionStarting.Subscribe(r.onExecutionStarting)
	fuzzer.Events.ExecutionFinished.Subscribe(r.onExecutionFinished)
}

// onExecutionStarting prints the command about to run.
func (r *ConsoleReporter) onExecutionStarting(event ExecutionStartingEvent) error {
	_, err := fmt.Fprintf(r.out, "[+] Executing: \"%s %s\"\n", event.Executable, strings.Join(event.Args, " "))
	return errors.WithStack(err)
}

// onExecutionFinished prints the outcome marker followed by the captured payload.
func (r *ConsoleReporter) onExecutionFinished(event ExecutionFinishedEvent) error {
	marker := colors.Red("[ERR]")
	if event.Outcome.Succeeded() {
		marker = colors.Green("[OK]")
	}
	_, err := fmt.Fprintf(r.out, "%s %s\n", marker, event.Outcome.Payload)
	return errors.WithStack(err)
}
