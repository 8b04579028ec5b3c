package fuzzing

import (
	"github.com/crytic/clif/events"
	"github.com/crytic/clif/fuzzing/executor"
)

// FuzzerEvents defines event emitters for a Fuzzer.
type FuzzerEvents struct {
	// FuzzerStarting emits events when the Fuzzer is about to consume its value source.
	FuzzerStarting events.EventEmitter[FuzzerStartingEvent]

	// FuzzerStopping emits events when the Fuzzer has exited its main loop, whether it finished or failed.
	FuzzerStopping events.EventEmitter[FuzzerStoppingEvent]

	// ExecutionStarting emits events right before the target is spawned for a candidate.
	ExecutionStarting events.EventEmitter[ExecutionStartingEvent]

	// ExecutionFinished emits events once the outcome of an invocation has been classified.
	ExecutionFinished events.EventEmitter[ExecutionFinishedEvent]
}

// FuzzerStartingEvent describes an event where a Fuzzer is about to begin invoking the target.
type FuzzerStartingEvent struct {
	// Fuzzer represents the instance of the Fuzzer for which the event occurred.
	Fuzzer *Fuzzer
}

// FuzzerStoppingEvent describes an event where a Fuzzer is exiting its main loop.
type FuzzerStoppingEvent struct {
	// Fuzzer represents the instance of the Fuzzer for which the event occurred.
	Fuzzer *Fuzzer

	// Err describes the error which stopped the fuzzer early, if any.
	Err error
}

// ExecutionStartingEvent describes an event where the target is about to be spawned.
type ExecutionStartingEvent struct {
	// Executable describes the target program.
	Executable string

	// Candidate describes the value the arguments were built from.
	Candidate string

	// Args describes the argument list the target is spawned with.
	Args []string
}

// ExecutionFinishedEvent describes an event where an invocation of the target has completed.
type ExecutionFinishedEvent struct {
	ExecutionStartingEvent

	// Outcome describes the classified result of the invocation.
	Outcome executor.InvocationOutcome
}
